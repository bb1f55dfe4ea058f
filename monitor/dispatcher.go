package monitor

import (
	"context"

	"github.com/samber/lo"

	"github.com/raykavin/polywatch/core"
)

// Dispatcher fans a new trade out to the journal and to every configured
// notification sink. Sink failures are isolated: each one is logged with
// the sink name and swallowed, so a broken chat API never silences the
// terminal nor aborts the poll cycle.
type Dispatcher struct {
	journal   core.TradeJournal
	notifiers []core.Notifier
	log       core.Logger
}

func NewDispatcher(log core.Logger, journal core.TradeJournal, notifiers ...core.Notifier) *Dispatcher {
	return &Dispatcher{
		journal:   journal,
		notifiers: notifiers,
		log:       log,
	}
}

// AddNotifier attaches another sink. Only valid before the poll loop
// starts; the sink list is immutable afterwards.
func (d *Dispatcher) AddNotifier(notifier core.Notifier) {
	d.notifiers = append(d.notifiers, notifier)
}

// Dispatch journals the trade and delivers it to all sinks. The journal
// write happens first and its failure does not block delivery.
func (d *Dispatcher) Dispatch(ctx context.Context, trade core.Trade) {
	if d.journal != nil {
		if err := d.journal.Append(ctx, &trade); err != nil {
			d.log.WithError(err).Error("dispatcher: failed to journal trade ", trade.ID)
		}
	}

	for _, notifier := range d.notifiers {
		if err := notifier.OnTrade(trade); err != nil {
			d.log.WithError(err).Errorf("dispatcher: %s sink failed for trade %s", notifier.Name(), trade.ID)
		}
	}
}

// Announce sends a plain message to all sinks, with the same isolation
// rules as Dispatch
func (d *Dispatcher) Announce(text string) {
	for _, notifier := range d.notifiers {
		if err := notifier.Notify(text); err != nil {
			d.log.WithError(err).Errorf("dispatcher: %s sink failed", notifier.Name())
		}
	}
}

// SinkNames lists the configured sinks, for the startup summary
func (d *Dispatcher) SinkNames() []string {
	return lo.Map(d.notifiers, func(n core.Notifier, _ int) string {
		return n.Name()
	})
}
