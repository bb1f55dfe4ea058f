package core

import (
	"context"
)

// Feeder fetches the recent trade activity of a wallet from an upstream
// data provider. Implementations must return a *FetchError on any failure
// (transport, non-2xx status, malformed payload) and never a partial
// result; an empty slice with a nil error means the wallet simply has no
// recent trades.
type Feeder interface {
	FetchRecentTrades(ctx context.Context, wallet string, limit int) ([]Trade, error)
}

// Notifier is a delivery target for trade alerts. Errors are returned to
// the dispatcher, which logs and swallows them; a failing sink never
// blocks the other sinks or the poll loop.
type Notifier interface {
	// Name identifies the sink in logs.
	Name() string
	// Notify delivers a plain text message.
	Notify(text string) error
	// OnTrade renders and delivers an alert for a new trade.
	OnTrade(trade Trade) error
}

// NotifierWithStart is a notifier that runs its own receive loop.
type NotifierWithStart interface {
	Notifier
	Start()
}

// TradeJournal persists every dispatched trade, independent of whether any
// notification sink accepted it.
type TradeJournal interface {
	Append(ctx context.Context, trade *Trade) error
	Close() error
}
