package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minedash/backend/internal/models"
)

type MiningLogRepo struct {
	pool *pgxpool.Pool
}

func NewMiningLogRepo(pool *pgxpool.Pool) *MiningLogRepo {
	return &MiningLogRepo{pool: pool}
}

func (r *MiningLogRepo) Create(ctx context.Context, l *models.MiningLog) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO mining_logs (id, owner_id, date, amount, status, ts)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, l.ID, l.OwnerID, l.Date, l.Amount, l.Status, l.Timestamp).Scan(&l.CreatedAt)
}

// ListByOwner returns the owner's logs, newest first.
func (r *MiningLogRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.MiningLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, date, amount, status, ts, created_at
		FROM mining_logs WHERE owner_id = $1 ORDER BY ts DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.MiningLog
	for rows.Next() {
		var l models.MiningLog
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.Date, &l.Amount, &l.Status, &l.Timestamp, &l.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Delete removes the log only if it belongs to ownerID. Returns the number of
// rows removed so callers can distinguish "not found" from success.
func (r *MiningLogRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM mining_logs WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
