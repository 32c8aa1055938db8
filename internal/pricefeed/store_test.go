package pricefeed

import (
	"testing"
	"time"

	"github.com/minedash/backend/internal/models"
)

func TestStoreKeepsLastGood(t *testing.T) {
	seed := models.PricePair{USD: 65000, BRL: 340000, LastUpdated: time.Now()}
	s := NewStore(seed)

	if got := s.Current(); got.USD != 65000 {
		t.Fatalf("seed: got %+v", got)
	}

	good := models.PricePair{USD: 67000, BRL: 350000, LastUpdated: time.Now()}
	if !s.Update(good) {
		t.Fatal("valid update rejected")
	}
	if got := s.Current(); got.BRL != 350000 {
		t.Errorf("after update: got %+v", got)
	}

	// A bad pair must not clobber the good one.
	if s.Update(models.PricePair{USD: 0, BRL: 0}) {
		t.Error("invalid update accepted")
	}
	if got := s.Current(); got.USD != 67000 || got.BRL != 350000 {
		t.Errorf("last good lost: got %+v", got)
	}
}
