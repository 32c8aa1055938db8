package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// State of a live session. A session begins Loading while its subscriptions
// are being established, becomes Authenticated once they are live, and ends
// Unauthenticated after sign-out or disconnect. While Loading, no ledger
// access happens on the session's behalf.
type State int

const (
	StateLoading State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Session is one live dashboard stream bound to an account. Cancelling its
// context tears down the stream's collection subscriptions.
type Session struct {
	ID        uuid.UUID
	AccountID uuid.UUID

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// MarkAuthenticated records that the session's subscriptions are live.
func (s *Session) MarkAuthenticated() {
	s.mu.Lock()
	s.state = StateAuthenticated
	s.mu.Unlock()
}

// Gate tracks live sessions per account and owns their teardown. Explicit
// sign-out cancels every session of that account so no stale-identity
// subscription outlives the login it was scoped to.
type Gate struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]map[*Session]struct{}
}

func NewGate() *Gate {
	return &Gate{sessions: make(map[uuid.UUID]map[*Session]struct{})}
}

// Begin registers a new session for the account. The returned session starts
// in the loading state; cancel is invoked when the account signs out.
func (g *Gate) Begin(accountID uuid.UUID, cancel context.CancelFunc) *Session {
	s := &Session{ID: uuid.New(), AccountID: accountID, state: StateLoading, cancel: cancel}
	g.mu.Lock()
	set, ok := g.sessions[accountID]
	if !ok {
		set = make(map[*Session]struct{})
		g.sessions[accountID] = set
	}
	set[s] = struct{}{}
	g.mu.Unlock()
	return s
}

// End deregisters a session (client disconnect). Idempotent.
func (g *Gate) End(s *Session) {
	g.mu.Lock()
	if set, ok := g.sessions[s.AccountID]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(g.sessions, s.AccountID)
		}
	}
	g.mu.Unlock()
	s.mu.Lock()
	s.state = StateUnauthenticated
	s.mu.Unlock()
}

// SignOut cancels and deregisters every live session for the account and
// returns how many were ended.
func (g *Gate) SignOut(accountID uuid.UUID) int {
	g.mu.Lock()
	set := g.sessions[accountID]
	delete(g.sessions, accountID)
	g.mu.Unlock()

	for s := range set {
		s.mu.Lock()
		s.state = StateUnauthenticated
		cancel := s.cancel
		s.mu.Unlock()
		if cancel != nil {
			cancel()
		}
	}
	return len(set)
}

// Active returns the number of live sessions for the account.
func (g *Gate) Active(accountID uuid.UUID) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.sessions[accountID])
}
