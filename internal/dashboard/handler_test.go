package dashboard

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/minedash/backend/internal/ledger"
	"github.com/minedash/backend/internal/middleware"
	"github.com/minedash/backend/internal/models"
	"github.com/minedash/backend/internal/session"
)

type stubLedger struct {
	logs        []*models.MiningLog
	investors   []*models.Investor
	withdrawals []*models.Withdrawal
}

func (s *stubLedger) AddMiningLog(context.Context, uuid.UUID, string, float64) (*models.MiningLog, error) {
	panic("not used")
}
func (s *stubLedger) AddInvestor(context.Context, uuid.UUID, string, float64) (*models.Investor, error) {
	panic("not used")
}
func (s *stubLedger) AddWithdrawal(context.Context, uuid.UUID, string, float64, string) (*models.Withdrawal, error) {
	panic("not used")
}
func (s *stubLedger) RemoveRecord(context.Context, uuid.UUID, models.RecordKind, uuid.UUID) error {
	panic("not used")
}
func (s *stubLedger) MiningLogs(context.Context, uuid.UUID) ([]*models.MiningLog, error) {
	return s.logs, nil
}
func (s *stubLedger) Investors(context.Context, uuid.UUID) ([]*models.Investor, error) {
	return s.investors, nil
}
func (s *stubLedger) Withdrawals(context.Context, uuid.UUID) ([]*models.Withdrawal, error) {
	return s.withdrawals, nil
}

type stubPrice struct{ pair models.PricePair }

func (s stubPrice) Current() models.PricePair { return s.pair }

func testAccount() *models.Account {
	return &models.Account{ID: uuid.New(), Email: "op@minedash.dev", Name: "Operator"}
}

func withIdentity(acc *models.Account, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next(w, r.WithContext(middleware.WithIdentity(r.Context(), acc)))
	}
}

func TestGetDashboard(t *testing.T) {
	acc := testAccount()
	svc := &stubLedger{
		logs:      []*models.MiningLog{{ID: uuid.New(), OwnerID: acc.ID, Amount: 0.1}},
		investors: []*models.Investor{{ID: uuid.New(), OwnerID: acc.ID, Name: "Davi", Contribution: 1000}},
	}
	price := stubPrice{models.PricePair{USD: 60000, BRL: 300000}}
	h := NewHandler(svc, price, ledger.NewHub(), session.NewGate(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	withIdentity(acc, h.GetDashboard)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var resp DashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Totals.MiningValue != 30000 {
		t.Errorf("mining value: got %v, want 30000", resp.Totals.MiningValue)
	}
	if resp.Totals.TotalBankroll != 31000 {
		t.Errorf("bankroll: got %v, want 31000", resp.Totals.TotalBankroll)
	}
	if len(resp.Positions) != 1 || resp.Positions[0].Share != 1 {
		t.Errorf("positions: got %+v", resp.Positions)
	}
	if resp.Display.TotalBankroll == "" {
		t.Error("display strings missing")
	}
}

func TestGetDashboardUnauthorized(t *testing.T) {
	h := NewHandler(&stubLedger{}, stubPrice{}, ledger.NewHub(), session.NewGate(), nil)
	rec := httptest.NewRecorder()
	h.GetDashboard(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestGetPrice(t *testing.T) {
	price := stubPrice{models.PricePair{USD: 67000, BRL: 350000, LastUpdated: time.Now()}}
	h := NewHandler(&stubLedger{}, price, ledger.NewHub(), session.NewGate(), nil)

	rec := httptest.NewRecorder()
	h.GetPrice(rec, httptest.NewRequest(http.MethodGet, "/api/v1/price", nil))

	var pair models.PricePair
	if err := json.Unmarshal(rec.Body.Bytes(), &pair); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pair.USD != 67000 || pair.BRL != 350000 {
		t.Errorf("pair: got %+v", pair)
	}
}

// Sign-out must tear the stream down server-side.
func TestStreamEndsOnSignOut(t *testing.T) {
	acc := testAccount()
	gate := session.NewGate()
	h := NewHandler(&stubLedger{}, stubPrice{models.PricePair{USD: 1, BRL: 1}}, ledger.NewHub(), gate, nil)

	srv := httptest.NewServer(withIdentity(acc, h.Stream))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("read initial event: %v", err)
	}
	if !strings.HasPrefix(line, "event: snapshot") {
		t.Fatalf("initial line: got %q", line)
	}

	deadline := time.After(5 * time.Second)
	for gate.Active(acc.ID) == 0 {
		select {
		case <-deadline:
			t.Fatal("session never registered")
		case <-time.After(10 * time.Millisecond):
		}
	}

	if ended := gate.SignOut(acc.ID); ended != 1 {
		t.Fatalf("SignOut ended %d sessions, want 1", ended)
	}

	done := make(chan struct{})
	go func() {
		for {
			if _, err := reader.ReadString('\n'); err != nil {
				close(done)
				return
			}
		}
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("stream still open after sign-out")
	}
}
