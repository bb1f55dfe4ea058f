// Package storage provides the trade journal implementations: a plain
// append-only log file, BuntDB and SQLite via GORM.
package storage

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/raykavin/polywatch/core"
)

// FileJournal appends one formatted line per dispatched trade to a text
// file. It is the default journal and mirrors a classic trades.log.
type FileJournal struct {
	mu   sync.Mutex
	file *os.File
}

// NewFileJournal opens (or creates) the journal file in append mode
func NewFileJournal(path string) (*FileJournal, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open trade journal %s: %w", path, err)
	}
	return &FileJournal{file: file}, nil
}

// Append implements core.TradeJournal
func (f *FileJournal) Append(_ context.Context, trade *core.Trade) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := fmt.Fprintln(f.file, trade.String()); err != nil {
		return fmt.Errorf("failed to append trade %s: %w", trade.ID, err)
	}
	return nil
}

// Close implements core.TradeJournal
func (f *FileJournal) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.file.Close()
}
