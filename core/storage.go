package core

import (
	"time"
)

// TradeFilter selects trades when querying a journal
type TradeFilter func(trade Trade) bool

func WithSide(side SideType) TradeFilter {
	return func(trade Trade) bool {
		return trade.Side == side
	}
}

func WithMarket(market string) TradeFilter {
	return func(trade Trade) bool {
		return trade.Market == market
	}
}

func WithTimeAfter(t time.Time) TradeFilter {
	return func(trade Trade) bool {
		return trade.Time.After(t)
	}
}
