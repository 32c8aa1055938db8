package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

type stubService struct {
	identity    *Identity
	registerErr error
	loginErr    error
	validateErr error
}

func (s *stubService) Register(context.Context, string, string, string) (*Identity, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.identity, nil
}

func (s *stubService) Login(context.Context, string, string) (string, *Identity, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return "tok-123", s.identity, nil
}

func (s *stubService) ValidateToken(context.Context, string) (uuid.UUID, error) {
	if s.validateErr != nil {
		return uuid.Nil, s.validateErr
	}
	return s.identity.ID, nil
}

type stubGate struct {
	signedOut []uuid.UUID
}

func (g *stubGate) SignOut(accountID uuid.UUID) int {
	g.signedOut = append(g.signedOut, accountID)
	return 1
}

func newStubService() *stubService {
	return &stubService{identity: &Identity{ID: uuid.New(), Email: "op@minedash.dev", Name: "Operator"}}
}

func TestRegister(t *testing.T) {
	svc := newStubService()
	h := NewHandler(svc, &stubGate{}, nil)

	body := `{"email":"op@minedash.dev","password":"hunter22","name":"Operator"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var resp IdentityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Email != "op@minedash.dev" {
		t.Errorf("email: got %q", resp.Email)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newStubService()
	svc.registerErr = ErrDuplicateEmail
	h := NewHandler(svc, &stubGate{}, nil)

	body := `{"email":"op@minedash.dev","password":"hunter22","name":"Operator"}`
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body)))

	if rec.Code != http.StatusConflict {
		t.Errorf("status: got %d, want 409", rec.Code)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	h := NewHandler(newStubService(), &stubGate{}, nil)
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"email":"x@y.z"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	h := NewHandler(newStubService(), &stubGate{}, nil)

	body := `{"email":"op@minedash.dev","password":"hunter22"}`
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var resp LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token != "tok-123" {
		t.Errorf("token: got %q", resp.Token)
	}
	if resp.Identity.Name != "Operator" {
		t.Errorf("identity: got %+v", resp.Identity)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := newStubService()
	svc.loginErr = ErrInvalidCredentials
	h := NewHandler(svc, &stubGate{}, nil)

	body := `{"email":"op@minedash.dev","password":"wrong"}`
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body)))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestLogoutEndsSessions(t *testing.T) {
	svc := newStubService()
	gate := &stubGate{}
	h := NewHandler(svc, gate, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want 204", rec.Code)
	}
	if len(gate.signedOut) != 1 || gate.signedOut[0] != svc.identity.ID {
		t.Errorf("signed out: got %v", gate.signedOut)
	}
}

func TestLogoutWithoutToken(t *testing.T) {
	gate := &stubGate{}
	h := NewHandler(newStubService(), gate, nil)

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
	if len(gate.signedOut) != 0 {
		t.Error("no session should have been ended")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService(nil)
	id := &Identity{ID: uuid.New(), Email: "op@minedash.dev", Name: "Operator"}

	token, err := svc.issueToken(id)
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}
	got, err := svc.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if got != id.ID {
		t.Errorf("subject: got %s, want %s", got, id.ID)
	}

	if _, err := svc.ValidateToken(context.Background(), token+"tampered"); err == nil {
		t.Error("tampered token accepted")
	}
}
