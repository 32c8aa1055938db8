package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Rhymond/go-money"

	"github.com/minedash/backend/internal/allocation"
	"github.com/minedash/backend/internal/ledger"
	"github.com/minedash/backend/internal/middleware"
	"github.com/minedash/backend/internal/models"
	"github.com/minedash/backend/internal/session"
)

// DashboardResponse is the computed snapshot plus pre-formatted display
// strings, so clients do not reimplement currency formatting.
type DashboardResponse struct {
	allocation.Snapshot
	Display DisplayTotals `json:"display"`
}

type DisplayTotals struct {
	MiningValue   string `json:"mining_value"`
	TotalBankroll string `json:"total_bankroll"`
	PriceUSD      string `json:"price_usd"`
	PriceBRL      string `json:"price_brl"`
}

type Handler struct {
	svc   ledger.Service
	price ledger.PriceSource
	hub   *ledger.Hub
	gate  *session.Gate
	log   *slog.Logger
}

func NewHandler(svc ledger.Service, price ledger.PriceSource, hub *ledger.Hub, gate *session.Gate, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, price: price, hub: hub, gate: gate, log: log}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// GET /api/v1/account/me
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	acc := middleware.IdentityFromCtx(r.Context())
	if acc == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":           acc.ID,
		"email":        acc.Email,
		"display_name": acc.Name,
		"created_at":   acc.CreatedAt,
	})
}

// GET /api/v1/price
func (h *Handler) GetPrice(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.price.Current())
}

// GET /api/v1/dashboard
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	acc := middleware.IdentityFromCtx(r.Context())
	if acc == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	resp, err := h.snapshot(r.Context(), acc)
	if err != nil {
		h.log.Error("dashboard snapshot failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /api/v1/stream
//
// Server-sent events. Every event carries a full recomputed snapshot, so a
// client that misses one is healed by the next. The stream is registered with
// the session gate: sign-out cancels it server-side.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	acc := middleware.IdentityFromCtx(r.Context())
	if acc == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sess := h.gate.Begin(acc.ID, cancel)
	defer h.gate.End(sess)

	topics, unsubscribe := h.hub.Subscribe(acc.ID)
	defer unsubscribe()
	sess.MarkAuthenticated()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := h.sendSnapshot(ctx, w, flusher, acc); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-topics:
			// Drain anything queued behind it; one recompute covers them all.
			for drained := false; !drained; {
				select {
				case <-topics:
				default:
					drained = true
				}
			}
			if err := h.sendSnapshot(ctx, w, flusher, acc); err != nil {
				h.log.Debug("stream ended", "account_id", acc.ID, "error", err)
				return
			}
		}
	}
}

func (h *Handler) sendSnapshot(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, acc *models.Account) error {
	resp, err := h.snapshot(ctx, acc)
	if err != nil {
		return err
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

func (h *Handler) snapshot(ctx context.Context, acc *models.Account) (*DashboardResponse, error) {
	logs, err := h.svc.MiningLogs(ctx, acc.ID)
	if err != nil {
		return nil, fmt.Errorf("load mining logs: %w", err)
	}
	investors, err := h.svc.Investors(ctx, acc.ID)
	if err != nil {
		return nil, fmt.Errorf("load investors: %w", err)
	}
	withdrawals, err := h.svc.Withdrawals(ctx, acc.ID)
	if err != nil {
		return nil, fmt.Errorf("load withdrawals: %w", err)
	}

	price := h.price.Current()
	snap := allocation.Compute(logs, investors, withdrawals, price)
	return &DashboardResponse{
		Snapshot: snap,
		Display: DisplayTotals{
			MiningValue:   money.NewFromFloat(snap.Totals.MiningValue, money.BRL).Display(),
			TotalBankroll: money.NewFromFloat(snap.Totals.TotalBankroll, money.BRL).Display(),
			PriceUSD:      money.NewFromFloat(price.USD, money.USD).Display(),
			PriceBRL:      money.NewFromFloat(price.BRL, money.BRL).Display(),
		},
	}, nil
}
