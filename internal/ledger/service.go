package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minedash/backend/internal/models"
)

// ErrNotFound is returned when removing a record that does not exist for the
// owner. Cross-owner deletes surface as not-found, never as another owner's
// data.
var ErrNotFound = errors.New("record not found")

// MiningLogStore is the minimal mining-log repository interface.
type MiningLogStore interface {
	Create(ctx context.Context, l *models.MiningLog) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.MiningLog, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (int64, error)
}

// InvestorStore is the minimal investor repository interface.
type InvestorStore interface {
	Create(ctx context.Context, inv *models.Investor) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Investor, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (int64, error)
}

// WithdrawalStore is the minimal withdrawal repository interface.
type WithdrawalStore interface {
	Create(ctx context.Context, w *models.Withdrawal) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Withdrawal, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (int64, error)
}

type Service interface {
	AddMiningLog(ctx context.Context, ownerID uuid.UUID, date string, amount float64) (*models.MiningLog, error)
	AddInvestor(ctx context.Context, ownerID uuid.UUID, name string, contribution float64) (*models.Investor, error)
	AddWithdrawal(ctx context.Context, ownerID uuid.UUID, date string, amount float64, description string) (*models.Withdrawal, error)
	RemoveRecord(ctx context.Context, ownerID uuid.UUID, kind models.RecordKind, id uuid.UUID) error

	MiningLogs(ctx context.Context, ownerID uuid.UUID) ([]*models.MiningLog, error)
	Investors(ctx context.Context, ownerID uuid.UUID) ([]*models.Investor, error)
	Withdrawals(ctx context.Context, ownerID uuid.UUID) ([]*models.Withdrawal, error)
}

type service struct {
	logs        MiningLogStore
	investors   InvestorStore
	withdrawals WithdrawalStore
	hub         *Hub
	now         func() time.Time
}

func NewService(logs MiningLogStore, investors InvestorStore, withdrawals WithdrawalStore, hub *Hub) *service {
	return &service{logs: logs, investors: investors, withdrawals: withdrawals, hub: hub, now: time.Now}
}

var _ Service = (*service)(nil)

// AddMiningLog stamps the owner, status, and timestamp; the caller supplies
// only date and amount.
func (s *service) AddMiningLog(ctx context.Context, ownerID uuid.UUID, date string, amount float64) (*models.MiningLog, error) {
	ts, err := dateMillis(date)
	if err != nil {
		return nil, err
	}
	l := &models.MiningLog{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Date:      date,
		Amount:    amount,
		Status:    models.StatusArchived,
		Timestamp: ts,
	}
	if err := s.logs.Create(ctx, l); err != nil {
		return nil, err
	}
	s.hub.Notify(ownerID, TopicMiningLogs)
	return l, nil
}

func (s *service) AddInvestor(ctx context.Context, ownerID uuid.UUID, name string, contribution float64) (*models.Investor, error) {
	inv := &models.Investor{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Name:         name,
		Contribution: contribution,
		JoinedAt:     s.now().UnixMilli(),
	}
	if err := s.investors.Create(ctx, inv); err != nil {
		return nil, err
	}
	s.hub.Notify(ownerID, TopicInvestors)
	return inv, nil
}

func (s *service) AddWithdrawal(ctx context.Context, ownerID uuid.UUID, date string, amount float64, description string) (*models.Withdrawal, error) {
	ts, err := dateMillis(date)
	if err != nil {
		return nil, err
	}
	w := &models.Withdrawal{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Date:        date,
		Amount:      amount,
		Description: description,
		Timestamp:   ts,
	}
	if err := s.withdrawals.Create(ctx, w); err != nil {
		return nil, err
	}
	s.hub.Notify(ownerID, TopicWithdrawals)
	return w, nil
}

// RemoveRecord is an unconditional delete-by-id, scoped to the owner.
// Immediately irreversible; there is no undo.
func (s *service) RemoveRecord(ctx context.Context, ownerID uuid.UUID, kind models.RecordKind, id uuid.UUID) error {
	var (
		n     int64
		err   error
		topic Topic
	)
	switch kind {
	case models.KindMiningLog:
		n, err = s.logs.Delete(ctx, ownerID, id)
		topic = TopicMiningLogs
	case models.KindInvestor:
		n, err = s.investors.Delete(ctx, ownerID, id)
		topic = TopicInvestors
	case models.KindWithdrawal:
		n, err = s.withdrawals.Delete(ctx, ownerID, id)
		topic = TopicWithdrawals
	default:
		return fmt.Errorf("unknown record kind %q", kind)
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	s.hub.Notify(ownerID, topic)
	return nil
}

func (s *service) MiningLogs(ctx context.Context, ownerID uuid.UUID) ([]*models.MiningLog, error) {
	return s.logs.ListByOwner(ctx, ownerID)
}

func (s *service) Investors(ctx context.Context, ownerID uuid.UUID) ([]*models.Investor, error) {
	return s.investors.ListByOwner(ctx, ownerID)
}

func (s *service) Withdrawals(ctx context.Context, ownerID uuid.UUID) ([]*models.Withdrawal, error) {
	return s.withdrawals.ListByOwner(ctx, ownerID)
}

// dateMillis converts a YYYY-MM-DD form date to Unix milliseconds at UTC
// midnight, the timestamp layout the original records carry.
func dateMillis(date string) (int64, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.UnixMilli(), nil
}
