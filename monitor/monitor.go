// Package monitor implements the polling core: fetch the wallet's recent
// trades, filter the genuinely new ones against the seen set, and dispatch
// alerts, with exponential backoff while the upstream is failing.
package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jpillora/backoff"
	"github.com/samber/lo"

	"github.com/raykavin/polywatch/core"
)

// state is the health of the poll loop
type state int

const (
	// stateHealthy: last fetch succeeded, polling at the base interval
	stateHealthy state = iota
	// stateDegraded: last fetch failed, waiting out a backoff interval
	stateDegraded
	// stateRecovering: a fetch succeeded while degraded; backoff is being
	// reset on the same tick before returning to healthy
	stateRecovering
)

func (s state) String() string {
	switch s {
	case stateDegraded:
		return "degraded"
	case stateRecovering:
		return "recovering"
	default:
		return "healthy"
	}
}

// Status is a read-only snapshot of the loop, served to the telegram
// /status command from outside the loop goroutine
type Status struct {
	State               string
	ConsecutiveFailures int
	SeenTrades          int
	DispatchedTrades    int
	LastTradeAt         time.Time
	StartedAt           time.Time
}

// Monitor owns all mutable polling state: the seen-set tracker, the
// failure count and the current backoff interval. One cycle runs fully
// (fetch, filter, dispatch) before the next sleep begins; nothing here
// overlaps.
type Monitor struct {
	settings   core.Settings
	feeder     core.Feeder
	tracker    *Tracker
	dispatcher *Dispatcher
	log        core.Logger

	backoff  *backoff.Backoff
	state    state
	failures int
	seeded   bool

	mu     sync.RWMutex
	status Status
}

func New(settings core.Settings, feeder core.Feeder, tracker *Tracker, dispatcher *Dispatcher, log core.Logger) *Monitor {
	return &Monitor{
		settings:   settings,
		feeder:     feeder,
		tracker:    tracker,
		dispatcher: dispatcher,
		log:        log,
		backoff: &backoff.Backoff{
			Min:    settings.PollInterval,
			Max:    settings.MaxBackoff,
			Factor: 2,
		},
	}
}

// Run executes poll cycles until ctx is cancelled, then returns nil. The
// first successful fetch only seeds the seen set; alerts start on the
// cycle after it. Fetch errors never terminate the loop.
func (m *Monitor) Run(ctx context.Context) error {
	m.mu.Lock()
	m.status.StartedAt = time.Now()
	m.mu.Unlock()
	m.publishStatus()

	for {
		delay := m.cycle(ctx)

		if !m.sleep(ctx, delay) {
			m.log.Info("monitor: stopping")
			return nil
		}
	}
}

// Status implements notification.StatusProvider
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// cycle runs one fetch-filter-dispatch pass and returns how long to sleep
// before the next one
func (m *Monitor) cycle(ctx context.Context) time.Duration {
	limit := m.settings.FetchLimit
	if !m.seeded {
		limit = m.settings.SeedLimit
	}

	trades, err := m.feeder.FetchRecentTrades(ctx, m.settings.Wallet, limit)
	if err != nil {
		return m.onFetchFailure(err)
	}

	return m.onFetchSuccess(ctx, trades)
}

func (m *Monitor) onFetchFailure(err error) time.Duration {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return 0
	}

	m.state = stateDegraded
	m.failures++
	delay := m.backoff.Duration()

	m.log.WithError(err).Errorf("monitor: fetch failed, retrying in %s", delay)
	m.publishStatus()

	return delay
}

func (m *Monitor) onFetchSuccess(ctx context.Context, trades []core.Trade) time.Duration {
	if m.state == stateDegraded {
		m.state = stateRecovering
		m.log.Infof("monitor: upstream recovered after %d failed attempts", m.failures)
		m.backoff.Reset()
		m.failures = 0
	}
	m.state = stateHealthy

	if !m.seeded {
		seeded := m.tracker.Seed(trades)
		m.seeded = true
		m.log.Infof("monitor: seeded %d existing trades, alerting from now on", seeded)
		m.publishStatus()
		return m.settings.PollInterval
	}

	// the provider returns most recent first; alerts go out oldest first
	fresh := m.tracker.FilterNew(lo.Reverse(trades))
	for _, trade := range fresh {
		m.dispatcher.Dispatch(ctx, trade)
		m.log.Info(trade.String())

		m.mu.Lock()
		m.status.DispatchedTrades++
		m.status.LastTradeAt = trade.Time
		m.mu.Unlock()
	}

	m.publishStatus()
	return m.settings.PollInterval
}

// publishStatus refreshes the snapshot read by Status
func (m *Monitor) publishStatus() {
	m.mu.Lock()
	m.status.State = m.state.String()
	m.status.ConsecutiveFailures = m.failures
	m.status.SeenTrades = m.tracker.Len()
	m.mu.Unlock()
}

// sleep waits for the given delay and reports false when ctx was
// cancelled instead
func (m *Monitor) sleep(ctx context.Context, delay time.Duration) bool {
	if delay <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
