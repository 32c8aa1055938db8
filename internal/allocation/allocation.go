package allocation

import (
	"github.com/google/uuid"

	"github.com/minedash/backend/internal/models"
)

// Totals are the operation-wide aggregates derived from the three ledger
// collections and the current price pair.
type Totals struct {
	TotalMined         float64 `json:"total_mined"`
	TotalContributions float64 `json:"total_contributions"`
	TotalWithdrawals   float64 `json:"total_withdrawals"`
	MiningValue        float64 `json:"mining_value"`
	TotalBankroll      float64 `json:"total_bankroll"`
}

// Position is one investor's computed stake. Share is proportional to the
// contribution relative to the current total pool, recomputed live — not a
// cap-table snapshot. Adding or removing an investor changes every other
// investor's share on the next recompute, and historical withdrawals are
// redistributed by the current share. Documented simplification, not a
// per-period cost-basis ledger.
type Position struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Contribution   float64   `json:"contribution"`
	JoinedAt       int64     `json:"joined_at"`
	Share          float64   `json:"share"`
	CurrentBalance float64   `json:"current_balance"`
	IsProfit       bool      `json:"is_profit"`
	ROIPercent     float64   `json:"roi_percent"`
}

// Snapshot is the full computed financial state delivered to the dashboard.
type Snapshot struct {
	Price     models.PricePair `json:"price"`
	Totals    Totals           `json:"totals"`
	Positions []Position       `json:"investors"`
}

// Compute derives the operation's total position and every investor's
// individual position. Pure and deterministic: same inputs, same output.
// Empty collections are valid and total zero; no error paths exist.
func Compute(logs []*models.MiningLog, investors []*models.Investor, withdrawals []*models.Withdrawal, price models.PricePair) Snapshot {
	var t Totals
	for _, l := range logs {
		t.TotalMined += l.Amount
	}
	for _, inv := range investors {
		t.TotalContributions += inv.Contribution
	}
	for _, w := range withdrawals {
		t.TotalWithdrawals += w.Amount
	}
	t.MiningValue = t.TotalMined * price.BRL
	t.TotalBankroll = t.TotalContributions + t.MiningValue - t.TotalWithdrawals

	positions := make([]Position, 0, len(investors))
	for _, inv := range investors {
		var share float64
		if t.TotalContributions > 0 {
			share = inv.Contribution / t.TotalContributions
		}
		balance := inv.Contribution + t.MiningValue*share - t.TotalWithdrawals*share
		// ROI of a zero contribution is clamped to 0 so the quantity stays
		// displayable; it is not a financial statement.
		var roi float64
		if inv.Contribution > 0 {
			roi = (balance/inv.Contribution - 1) * 100
		}
		positions = append(positions, Position{
			ID:             inv.ID,
			Name:           inv.Name,
			Contribution:   inv.Contribution,
			JoinedAt:       inv.JoinedAt,
			Share:          share,
			CurrentBalance: balance,
			IsProfit:       balance > inv.Contribution,
			ROIPercent:     roi,
		})
	}

	return Snapshot{Price: price, Totals: t, Positions: positions}
}
