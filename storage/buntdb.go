package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/buntdb"

	"github.com/raykavin/polywatch/core"
)

const (
	// timeIndexName orders journal scans by trade time
	timeIndexName = "time_index"
)

// BuntJournal implements core.TradeJournal using BuntDB, keyed by trade
// ID with a time-ordered index for queries
type BuntJournal struct {
	db *buntdb.DB
}

// NewFromMemory creates an in-memory journal, used mostly by tests
func NewFromMemory() (*BuntJournal, error) {
	return NewBuntJournal(":memory:")
}

// NewFromFile creates a file-backed journal
func NewFromFile(file string) (*BuntJournal, error) {
	return NewBuntJournal(file)
}

// NewBuntJournal opens a BuntDB journal at the given source
func NewBuntJournal(sourceFile string) (*BuntJournal, error) {
	db, err := buntdb.Open(sourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open buntdb: %w", err)
	}

	if err := db.SetConfig(buntdb.Config{SyncPolicy: buntdb.EverySecond}); err != nil {
		return nil, fmt.Errorf("failed to configure buntdb: %w", err)
	}

	if err := db.CreateIndex(timeIndexName, "*", buntdb.IndexJSON("time")); err != nil {
		return nil, fmt.Errorf("failed to create time index: %w", err)
	}

	return &BuntJournal{db: db}, nil
}

// Append implements core.TradeJournal
func (b *BuntJournal) Append(_ context.Context, trade *core.Trade) error {
	return b.db.Update(func(tx *buntdb.Tx) error {
		content, err := json.Marshal(trade)
		if err != nil {
			return fmt.Errorf("failed to marshal trade: %w", err)
		}

		if _, _, err := tx.Set(trade.ID, string(content), nil); err != nil {
			return fmt.Errorf("failed to store trade: %w", err)
		}
		return nil
	})
}

// Trades retrieves journaled trades in time order, applying the given
// filters
func (b *BuntJournal) Trades(_ context.Context, filters ...core.TradeFilter) ([]*core.Trade, error) {
	trades := make([]*core.Trade, 0)

	err := b.db.View(func(tx *buntdb.Tx) error {
		return tx.Ascend(timeIndexName, func(key, value string) bool {
			var trade core.Trade
			if err := json.Unmarshal([]byte(value), &trade); err != nil {
				return true // skip unreadable records, keep scanning
			}

			for _, filter := range filters {
				if !filter(trade) {
					return true
				}
			}

			trades = append(trades, &trade)
			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}

	return trades, nil
}

// Close implements core.TradeJournal
func (b *BuntJournal) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}
