package models

import (
	"time"

	"github.com/google/uuid"
)

// RecordKind names one of the three ledger collections.
type RecordKind string

const (
	KindMiningLog  RecordKind = "mining_logs"
	KindInvestor   RecordKind = "investors"
	KindWithdrawal RecordKind = "withdrawals"
)

// Mining log status values. New logs are always stamped archived.
const (
	StatusArchived = "archived"
	StatusPending  = "pending"
)

// MiningLog is one day's mined production, in BTC.
type MiningLog struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"-"`
	Date      string    `json:"date"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	Timestamp int64     `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
}

// Investor is a capital contribution from a named party, in BRL.
// Contribution is never mutated in place; corrections are delete+recreate.
type Investor struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"-"`
	Name         string    `json:"name"`
	Contribution float64   `json:"contribution"`
	JoinedAt     int64     `json:"joined_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// Withdrawal is an outflow of funds by the operating team, in BRL.
type Withdrawal struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"-"`
	Date        string    `json:"date"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Timestamp   int64     `json:"timestamp"`
	CreatedAt   time.Time `json:"created_at"`
}
