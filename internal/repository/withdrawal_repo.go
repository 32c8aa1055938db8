package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minedash/backend/internal/models"
)

type WithdrawalRepo struct {
	pool *pgxpool.Pool
}

func NewWithdrawalRepo(pool *pgxpool.Pool) *WithdrawalRepo {
	return &WithdrawalRepo{pool: pool}
}

func (r *WithdrawalRepo) Create(ctx context.Context, w *models.Withdrawal) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO withdrawals (id, owner_id, date, amount, description, ts)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, w.ID, w.OwnerID, w.Date, w.Amount, w.Description, w.Timestamp).Scan(&w.CreatedAt)
}

// ListByOwner returns the owner's withdrawals, newest first.
func (r *WithdrawalRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Withdrawal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, date, amount, description, ts, created_at
		FROM withdrawals WHERE owner_id = $1 ORDER BY ts DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.Withdrawal
	for rows.Next() {
		var w models.Withdrawal
		if err := rows.Scan(&w.ID, &w.OwnerID, &w.Date, &w.Amount, &w.Description, &w.Timestamp, &w.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

func (r *WithdrawalRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM withdrawals WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
