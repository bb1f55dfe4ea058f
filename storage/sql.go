package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/raykavin/polywatch/core"
)

// SQLJournal implements core.TradeJournal using a SQL database via GORM
type SQLJournal struct {
	db *gorm.DB
}

// SQLConfig holds the connection pool configuration
type SQLConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// DefaultSQLConfig returns a default configuration for SQL connections
func DefaultSQLConfig() SQLConfig {
	return SQLConfig{
		MaxIdleConns:    5,
		MaxOpenConns:    10,
		ConnMaxLifetime: time.Hour,
	}
}

// NewFromSQLite creates a new SQLite journal
func NewFromSQLite(dbPath string, config SQLConfig, opts ...gorm.Option) (*SQLJournal, error) {
	return newFromSQL(sqlite.Open(dbPath), config, opts...)
}

func newFromSQL(dialect gorm.Dialector, config SQLConfig, opts ...gorm.Option) (*SQLJournal, error) {
	db, err := gorm.Open(dialect, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)

	if err := db.AutoMigrate(&core.Trade{}); err != nil {
		return nil, fmt.Errorf("failed to migrate trade model: %w", err)
	}

	return &SQLJournal{db: db}, nil
}

// Append implements core.TradeJournal
func (s *SQLJournal) Append(ctx context.Context, trade *core.Trade) error {
	if result := s.db.WithContext(ctx).Create(trade); result.Error != nil {
		return fmt.Errorf("failed to store trade %s: %w", trade.ID, result.Error)
	}
	return nil
}

// Trades retrieves journaled trades in time order, applying the given
// filters
func (s *SQLJournal) Trades(ctx context.Context, filters ...core.TradeFilter) ([]*core.Trade, error) {
	var trades []*core.Trade
	if result := s.db.WithContext(ctx).Order("time").Find(&trades); result.Error != nil {
		return nil, fmt.Errorf("failed to query trades: %w", result.Error)
	}

	return lo.Filter(trades, func(trade *core.Trade, _ int) bool {
		for _, filter := range filters {
			if !filter(*trade) {
				return false
			}
		}
		return true
	}), nil
}

// Close implements core.TradeJournal
func (s *SQLJournal) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
