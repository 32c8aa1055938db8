package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minedash/backend/internal/models"
)

type InvestorRepo struct {
	pool *pgxpool.Pool
}

func NewInvestorRepo(pool *pgxpool.Pool) *InvestorRepo {
	return &InvestorRepo{pool: pool}
}

func (r *InvestorRepo) Create(ctx context.Context, inv *models.Investor) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO investors (id, owner_id, name, contribution, joined_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, inv.ID, inv.OwnerID, inv.Name, inv.Contribution, inv.JoinedAt).Scan(&inv.CreatedAt)
}

// ListByOwner returns the owner's investors, oldest first, so the roster
// order stays stable as investors come and go.
func (r *InvestorRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Investor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, name, contribution, joined_at, created_at
		FROM investors WHERE owner_id = $1 ORDER BY joined_at
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.Investor
	for rows.Next() {
		var inv models.Investor
		if err := rows.Scan(&inv.ID, &inv.OwnerID, &inv.Name, &inv.Contribution, &inv.JoinedAt, &inv.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

func (r *InvestorRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM investors WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
