package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is the owning identity for all ledger records. Every collection
// query is scoped to an account id; records of other accounts are invisible.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
