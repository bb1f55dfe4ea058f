package monitor

import (
	"github.com/StudioSol/set"

	"github.com/raykavin/polywatch/core"
)

// Tracker owns the seen set: the identifiers of every trade already
// alerted on (or seeded) during this process lifetime. The set only
// grows, and only the poll loop touches it.
type Tracker struct {
	seen *set.LinkedHashSetString
}

func NewTracker() *Tracker {
	return &Tracker{seen: set.NewLinkedHashSetString()}
}

// FilterNew returns the trades whose IDs have not been seen before, in
// input order, and marks each returned trade as seen. Calling it twice
// with the same input yields the full list, then nothing.
func (t *Tracker) FilterNew(trades []core.Trade) []core.Trade {
	fresh := make([]core.Trade, 0, len(trades))
	for _, trade := range trades {
		if t.seen.InArray(trade.ID) {
			continue
		}
		t.seen.Add(trade.ID)
		fresh = append(fresh, trade)
	}
	return fresh
}

// Seed marks trades as seen without reporting them as new. Used on the
// first successful fetch so the history present at startup never turns
// into an alert storm.
func (t *Tracker) Seed(trades []core.Trade) int {
	for _, trade := range trades {
		t.seen.Add(trade.ID)
	}
	return t.seen.Length()
}

// Contains reports whether the trade ID was already observed
func (t *Tracker) Contains(id string) bool {
	return t.seen.InArray(id)
}

// Len returns the number of observed trade IDs
func (t *Tracker) Len() int {
	return t.seen.Length()
}
