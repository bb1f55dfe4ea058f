// Package polymarket implements the core.Feeder interface on top of the
// public Polymarket data API.
package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/raykavin/polywatch/core"
)

const (
	// DefaultBaseURL is the Polymarket data API endpoint
	DefaultBaseURL = "https://data-api.polymarket.com"
	// DefaultTimeout bounds a single activity request
	DefaultTimeout = 30 * time.Second

	// activityTypeTrade marks activity entries that are trade fills; other
	// entries (redeems, splits, merges) are not trades and are skipped
	activityTypeTrade = "TRADE"
)

// Config holds configuration options for the data API client
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Client overrides the HTTP client, used by tests
	Client *http.Client
}

// Polymarket fetches wallet activity from the data API. It is the only
// component aware of the provider schema; everything downstream sees
// core.Trade values.
type Polymarket struct {
	baseURL string
	client  *http.Client
	log     core.Logger
}

// New creates a data API feeder
func New(log core.Logger, config Config) *Polymarket {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Client == nil {
		config.Client = &http.Client{Timeout: config.Timeout}
	}

	return &Polymarket{
		baseURL: config.BaseURL,
		client:  config.Client,
		log:     log,
	}
}

// activityEntry is the provider wire format of one activity item
type activityEntry struct {
	Type            string  `json:"type"`
	Side            string  `json:"side"`
	Title           string  `json:"title"`
	Outcome         string  `json:"outcome"`
	Size            float64 `json:"size"`
	Price           float64 `json:"price"`
	USDCSize        float64 `json:"usdcSize"`
	Timestamp       int64   `json:"timestamp"`
	TransactionHash string  `json:"transactionHash"`
}

// FetchRecentTrades implements core.Feeder. Trades are returned in the
// provider order, most recent first. Any transport, status or decode
// failure yields a *core.FetchError so the caller can never mistake a
// broken fetch for an empty trade history.
func (p *Polymarket) FetchRecentTrades(ctx context.Context, wallet string, limit int) ([]core.Trade, error) {
	endpoint := fmt.Sprintf("%s/activity?%s", p.baseURL, url.Values{
		"user":  {wallet},
		"limit": {strconv.Itoa(limit)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &core.FetchError{URL: endpoint, Err: err}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &core.FetchError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &core.FetchError{URL: endpoint, Status: resp.StatusCode}
	}

	var entries []activityEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, &core.FetchError{URL: endpoint, Err: fmt.Errorf("decode activity: %w", err)}
	}

	return p.convertEntries(entries), nil
}

// convertEntries maps activity items to trades, keeping provider order.
// One transaction can carry several fills; the first fill keeps the bare
// hash as ID and later ones get an index suffix so IDs stay unique.
func (p *Polymarket) convertEntries(entries []activityEntry) []core.Trade {
	trades := make([]core.Trade, 0, len(entries))
	perHash := make(map[string]int, len(entries))

	for _, entry := range entries {
		if entry.Type != activityTypeTrade {
			continue
		}

		if entry.TransactionHash == "" {
			p.log.Debug("polymarket: skipping trade with empty transaction hash")
			continue
		}

		id := entry.TransactionHash
		if n := perHash[entry.TransactionHash]; n > 0 {
			id = fmt.Sprintf("%s:%d", entry.TransactionHash, n)
		}
		perHash[entry.TransactionHash]++

		trades = append(trades, convertEntry(entry, id))
	}

	return trades
}

func convertEntry(entry activityEntry, id string) core.Trade {
	value := entry.USDCSize
	if value == 0 {
		value = entry.Size * entry.Price
	}

	return core.Trade{
		ID:      id,
		Side:    core.SideType(entry.Side),
		Market:  entry.Title,
		Outcome: entry.Outcome,
		Shares:  entry.Size,
		Price:   entry.Price,
		Value:   value,
		Time:    time.Unix(entry.Timestamp, 0).UTC(),
	}
}
