package router

import (
	"net/http"

	"github.com/minedash/backend/internal/auth"
	"github.com/minedash/backend/internal/dashboard"
)

// Middleware wraps a handler, typically with authentication.
type Middleware func(http.Handler) http.Handler

// New returns an http.Handler serving the auth and dashboard API under
// /api/v1. The ledger collection routes are registered separately; see
// RegisterLedgerRoutes in cmd/api.
func New(authHandler *auth.Handler, dashHandler *dashboard.Handler, requireAuth Middleware) http.Handler {
	mux := http.NewServeMux()
	base := "/api/v1"

	mux.HandleFunc(base+"/auth/register", authHandler.Register)
	mux.HandleFunc(base+"/auth/login", authHandler.Login)
	mux.HandleFunc(base+"/auth/logout", authHandler.Logout)

	mux.HandleFunc(base+"/price", methodGET(dashHandler.GetPrice))

	mux.Handle(base+"/account/me", requireAuth(methodGET(dashHandler.GetMe)))
	mux.Handle(base+"/dashboard", requireAuth(methodGET(dashHandler.GetDashboard)))
	mux.Handle(base+"/stream", requireAuth(methodGET(dashHandler.Stream)))

	return mux
}

func methodGET(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}
