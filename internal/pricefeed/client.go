package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/minedash/backend/internal/models"
)

// DefaultQuoteURL is the CoinGecko simple-price endpoint for BTC in USD and BRL.
const DefaultQuoteURL = "https://api.coingecko.com/api/v3/simple/price?ids=bitcoin&vs_currencies=usd,brl"

// Client fetches the current BTC quote from an external price API.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	if url == "" {
		url = DefaultQuoteURL
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch retrieves one quote. Any failure — transport, status, shape, or a
// non-positive rate — is returned as an error; the caller keeps its last good
// pair.
func (c *Client) Fetch(ctx context.Context) (models.PricePair, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return models.PricePair{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.PricePair{}, fmt.Errorf("network error fetching quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.PricePair{}, fmt.Errorf("quote API returned status %d", resp.StatusCode)
	}

	var body struct {
		Bitcoin struct {
			USD float64 `json:"usd"`
			BRL float64 `json:"brl"`
		} `json:"bitcoin"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.PricePair{}, fmt.Errorf("quote API returned invalid JSON: %w", err)
	}

	pair := models.PricePair{
		USD:         body.Bitcoin.USD,
		BRL:         body.Bitcoin.BRL,
		LastUpdated: time.Now().UTC(),
	}
	if !pair.Valid() {
		return models.PricePair{}, fmt.Errorf("quote API returned non-positive rates (usd=%v brl=%v)", pair.USD, pair.BRL)
	}
	return pair, nil
}
