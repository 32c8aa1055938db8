package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is the application DDL, applied at boot. River's own tables are
// migrated separately by rivermigrate in main.
const schema = `
CREATE EXTENSION IF NOT EXISTS pgcrypto;

CREATE TABLE IF NOT EXISTS accounts (
	id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	email         text NOT NULL UNIQUE,
	name          text NOT NULL,
	password_hash text NOT NULL,
	created_at    timestamptz NOT NULL DEFAULT now(),
	updated_at    timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS mining_logs (
	id         uuid PRIMARY KEY,
	owner_id   uuid NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
	date       text NOT NULL,
	amount     double precision NOT NULL CHECK (amount >= 0),
	status     text NOT NULL,
	ts         bigint NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS mining_logs_owner_ts_idx ON mining_logs (owner_id, ts DESC);

CREATE TABLE IF NOT EXISTS investors (
	id           uuid PRIMARY KEY,
	owner_id     uuid NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
	name         text NOT NULL,
	contribution double precision NOT NULL CHECK (contribution >= 0),
	joined_at    bigint NOT NULL,
	created_at   timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS investors_owner_idx ON investors (owner_id);

CREATE TABLE IF NOT EXISTS withdrawals (
	id          uuid PRIMARY KEY,
	owner_id    uuid NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
	date        text NOT NULL,
	amount      double precision NOT NULL CHECK (amount >= 0),
	description text NOT NULL DEFAULT '',
	ts          bigint NOT NULL,
	created_at  timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS withdrawals_owner_ts_idx ON withdrawals (owner_id, ts DESC);
`

// Bootstrap applies the application schema. Idempotent.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
