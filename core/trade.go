package core

import (
	"fmt"
	"time"
)

// SideType is the direction of a trade
type SideType string

const (
	SideTypeBuy  SideType = "BUY"
	SideTypeSell SideType = "SELL"
)

// Trade represents a single observed wallet trade on a prediction market.
// Instances are ephemeral: they are built from one fetch response, pass
// through the tracker and dispatcher once, and are discarded. Only the ID
// survives, inside the seen set.
type Trade struct {
	// ID is the provider transaction hash, suffixed with ":n" when a
	// single transaction carries more than one fill.
	ID      string    `json:"id" gorm:"primaryKey"`
	Side    SideType  `json:"side"`
	Market  string    `json:"market"`
	Outcome string    `json:"outcome"`
	Shares  float64   `json:"shares"`
	Price   float64   `json:"price"`
	Value   float64   `json:"value"`
	Time    time.Time `json:"time"`
}

// IsBuy returns true when the trade is a buy
func (t Trade) IsBuy() bool {
	return t.Side == SideTypeBuy
}

func (t Trade) String() string {
	return fmt.Sprintf("[%s] %s %s (%s) | %.2f shares @ $%.4f | $%.2f USDC",
		t.Time.UTC().Format("2006-01-02 15:04:05"),
		t.Side, t.Market, t.Outcome, t.Shares, t.Price, t.Value)
}
