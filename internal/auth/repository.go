package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new account and returns its Identity.
func (r *Repository) Create(ctx context.Context, email, passwordHash, name string) (*Identity, error) {
	var id Identity
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (email, name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, name
	`, email, name, passwordHash)
	if err := row.Scan(&id.ID, &id.Email, &id.Name); err != nil {
		return nil, err
	}
	return &id, nil
}

// GetByEmail returns the identity and password hash for login. Returns nil if not found.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*Identity, string, error) {
	var id Identity
	var passwordHash string
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, name, password_hash
		FROM accounts WHERE email = $1
	`, email)
	if err := row.Scan(&id.ID, &id.Email, &id.Name, &passwordHash); err != nil {
		if err.Error() == "no rows in result set" {
			return nil, "", nil
		}
		return nil, "", err
	}
	return &id, passwordHash, nil
}
