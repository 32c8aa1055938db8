package pricefeed

import (
	"sync"

	"github.com/minedash/backend/internal/models"
)

// Store holds the last good price pair. Reads never observe a torn pair, and
// a failed poll never clobbers a good one.
type Store struct {
	mu   sync.RWMutex
	pair models.PricePair
}

// NewStore seeds the store with an initial pair. A zero pair is a valid seed:
// dashboards computed before the first successful poll simply value mined BTC
// at zero, the same as a client that has not loaded a quote yet.
func NewStore(seed models.PricePair) *Store {
	return &Store{pair: seed}
}

// Current returns the last good pair.
func (s *Store) Current() models.PricePair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair
}

// Update replaces the stored pair. Invalid pairs are rejected so the store
// only ever moves from one good quote to another.
func (s *Store) Update(pair models.PricePair) bool {
	if !pair.Valid() {
		return false
	}
	s.mu.Lock()
	s.pair = pair
	s.mu.Unlock()
	return true
}
