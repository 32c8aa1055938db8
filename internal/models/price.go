package models

import "time"

// PricePair holds the current BTC quote in USD and BRL. Transient: replaced
// on every successful poll, never persisted.
type PricePair struct {
	USD         float64   `json:"usd"`
	BRL         float64   `json:"brl"`
	LastUpdated time.Time `json:"last_updated"`
}

// Valid reports whether the pair carries usable quotes. A zero or negative
// quote must never overwrite a previously held good pair.
func (p PricePair) Valid() bool {
	return p.USD > 0 && p.BRL > 0
}
