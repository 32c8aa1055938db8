package main

import (
	"net/http"

	"github.com/minedash/backend/internal/ledger"
	"github.com/minedash/backend/internal/middleware"
	"github.com/minedash/backend/internal/models"
	"github.com/minedash/backend/internal/services"
)

// RegisterLedgerRoutes adds the /api/v1 collection endpoints to the given mux.
// Middleware chain: BearerAuth -> (ValidateRecord on POST only) -> handler.
func RegisterLedgerRoutes(
	mux *http.ServeMux,
	lh *ledger.Handler,
	validator *services.Validator,
	requireAuth func(http.Handler) http.Handler,
) {
	type collection struct {
		path string
		kind models.RecordKind
		list http.HandlerFunc
		add  http.HandlerFunc
	}
	collections := []collection{
		{"/api/v1/mining-logs", models.KindMiningLog, lh.ListMiningLogs, lh.CreateMiningLog},
		{"/api/v1/investors", models.KindInvestor, lh.ListInvestors, lh.CreateInvestor},
		{"/api/v1/withdrawals", models.KindWithdrawal, lh.ListWithdrawals, lh.CreateWithdrawal},
	}

	for _, c := range collections {
		validate := middleware.ValidateRecord(validator, c.kind)
		mux.Handle("GET "+c.path, requireAuth(c.list))
		mux.Handle("POST "+c.path, requireAuth(validate(c.add)))
		mux.Handle("DELETE "+c.path+"/{id}", requireAuth(lh.DeleteRecord(c.kind)))
	}
}
