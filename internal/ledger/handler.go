package ledger

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/minedash/backend/internal/middleware"
	"github.com/minedash/backend/internal/models"
)

// Request/response structs use snake_case JSON, matching the dashboard client.

type AddMiningLogRequest struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type AddInvestorRequest struct {
	Name         string  `json:"name"`
	Contribution float64 `json:"contribution"`
}

type AddWithdrawalRequest struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type MiningLogResponse struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	Timestamp int64   `json:"timestamp"`
	ValueBRL  float64 `json:"value_brl"`
}

type InvestorResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Initial      string  `json:"initial"`
	Contribution float64 `json:"contribution"`
	JoinedAt     int64   `json:"joined_at"`
}

type WithdrawalResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Timestamp   int64   `json:"timestamp"`
}

// PriceSource supplies the last good price pair for the per-log conversion column.
type PriceSource interface {
	Current() models.PricePair
}

type Handler struct {
	svc   Service
	price PriceSource
	log   *slog.Logger
}

func NewHandler(svc Service, price PriceSource, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, price: price, log: log}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// GET /api/v1/mining-logs
func (h *Handler) ListMiningLogs(w http.ResponseWriter, r *http.Request) {
	acc := middleware.IdentityFromCtx(r.Context())
	if acc == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	logs, err := h.svc.MiningLogs(r.Context(), acc.ID)
	if err != nil {
		h.log.Error("list mining logs failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	price := h.price.Current()
	resp := make([]MiningLogResponse, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, miningLogToResponse(l, price))
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /api/v1/mining-logs
func (h *Handler) CreateMiningLog(w http.ResponseWriter, r *http.Request) {
	acc := middleware.IdentityFromCtx(r.Context())
	if acc == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req AddMiningLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	l, err := h.svc.AddMiningLog(r.Context(), acc.ID, req.Date, req.Amount)
	if err != nil {
		h.log.Error("add mining log failed", "error", err)
		http.Error(w, "add failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, miningLogToResponse(l, h.price.Current()))
}

// GET /api/v1/investors
func (h *Handler) ListInvestors(w http.ResponseWriter, r *http.Request) {
	acc := middleware.IdentityFromCtx(r.Context())
	if acc == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	investors, err := h.svc.Investors(r.Context(), acc.ID)
	if err != nil {
		h.log.Error("list investors failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	resp := make([]InvestorResponse, 0, len(investors))
	for _, inv := range investors {
		resp = append(resp, investorToResponse(inv))
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /api/v1/investors
func (h *Handler) CreateInvestor(w http.ResponseWriter, r *http.Request) {
	acc := middleware.IdentityFromCtx(r.Context())
	if acc == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req AddInvestorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	inv, err := h.svc.AddInvestor(r.Context(), acc.ID, req.Name, req.Contribution)
	if err != nil {
		h.log.Error("add investor failed", "error", err)
		http.Error(w, "add failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, investorToResponse(inv))
}

// GET /api/v1/withdrawals
func (h *Handler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	acc := middleware.IdentityFromCtx(r.Context())
	if acc == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	withdrawals, err := h.svc.Withdrawals(r.Context(), acc.ID)
	if err != nil {
		h.log.Error("list withdrawals failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	resp := make([]WithdrawalResponse, 0, len(withdrawals))
	for _, wd := range withdrawals {
		resp = append(resp, withdrawalToResponse(wd))
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /api/v1/withdrawals
func (h *Handler) CreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	acc := middleware.IdentityFromCtx(r.Context())
	if acc == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req AddWithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	wd, err := h.svc.AddWithdrawal(r.Context(), acc.ID, req.Date, req.Amount, req.Description)
	if err != nil {
		h.log.Error("add withdrawal failed", "error", err)
		http.Error(w, "add failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, withdrawalToResponse(wd))
}

// DeleteRecord returns a DELETE handler for one collection kind
// (/api/v1/{kind}/{id}).
func (h *Handler) DeleteRecord(kind models.RecordKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc := middleware.IdentityFromCtx(r.Context())
		if acc == nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			http.Error(w, "invalid record ID", http.StatusBadRequest)
			return
		}
		if err := h.svc.RemoveRecord(r.Context(), acc.ID, kind, id); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "record not found", http.StatusNotFound)
				return
			}
			h.log.Error("remove record failed", "kind", kind, "id", id, "error", err)
			http.Error(w, "delete failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func miningLogToResponse(l *models.MiningLog, price models.PricePair) MiningLogResponse {
	return MiningLogResponse{
		ID:        l.ID.String(),
		Date:      l.Date,
		Amount:    l.Amount,
		Status:    l.Status,
		Timestamp: l.Timestamp,
		ValueBRL:  l.Amount * price.BRL,
	}
}

func investorToResponse(inv *models.Investor) InvestorResponse {
	return InvestorResponse{
		ID:           inv.ID.String(),
		Name:         inv.Name,
		Initial:      nameInitial(inv.Name),
		Contribution: inv.Contribution,
		JoinedAt:     inv.JoinedAt,
	}
}

// nameInitial is the roster avatar letter: first rune, uppercased.
func nameInitial(name string) string {
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return ""
}

func withdrawalToResponse(wd *models.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		ID:          wd.ID.String(),
		Date:        wd.Date,
		Amount:      wd.Amount,
		Description: wd.Description,
		Timestamp:   wd.Timestamp,
	}
}
