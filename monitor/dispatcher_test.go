package monitor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/raykavin/polywatch/core"
	"github.com/raykavin/polywatch/logger/zerolog"
)

type recordingNotifier struct {
	name   string
	trades []core.Trade
	texts  []string
	err    error
}

func (r *recordingNotifier) Name() string { return r.name }

func (r *recordingNotifier) Notify(text string) error {
	if r.err != nil {
		return r.err
	}
	r.texts = append(r.texts, text)
	return nil
}

func (r *recordingNotifier) OnTrade(trade core.Trade) error {
	if r.err != nil {
		return r.err
	}
	r.trades = append(r.trades, trade)
	return nil
}

type recordingJournal struct {
	trades []core.Trade
	err    error
}

func (r *recordingJournal) Append(_ context.Context, trade *core.Trade) error {
	if r.err != nil {
		return r.err
	}
	r.trades = append(r.trades, *trade)
	return nil
}

func (r *recordingJournal) Close() error { return nil }

func testLogger(t *testing.T) core.Logger {
	t.Helper()
	log, err := zerolog.New("error", "15:04:05", false, true)
	require.NoError(t, err)
	return zerolog.NewAdapter(log.Logger)
}

func TestDispatcher_FanOut(t *testing.T) {
	sinkA := &recordingNotifier{name: "a"}
	sinkB := &recordingNotifier{name: "b"}
	journal := &recordingJournal{}

	dispatcher := NewDispatcher(testLogger(t), journal, sinkA, sinkB)
	trade := core.Trade{ID: "0x1", Side: core.SideTypeBuy, Market: "Will it rain?"}

	dispatcher.Dispatch(context.Background(), trade)

	require.Len(t, sinkA.trades, 1)
	require.Len(t, sinkB.trades, 1)
	require.Len(t, journal.trades, 1)
	require.Equal(t, "0x1", journal.trades[0].ID)
}

func TestDispatcher_FailingSinkIsIsolated(t *testing.T) {
	broken := &recordingNotifier{name: "chat", err: errors.New("unauthorized")}
	healthy := &recordingNotifier{name: "terminal"}

	dispatcher := NewDispatcher(testLogger(t), &recordingJournal{}, broken, healthy)

	for i := 0; i < 3; i++ {
		dispatcher.Dispatch(context.Background(), core.Trade{ID: "0x1"})
	}

	require.Empty(t, broken.trades)
	require.Len(t, healthy.trades, 3)
}

func TestDispatcher_JournalFailureDoesNotBlockSinks(t *testing.T) {
	sink := &recordingNotifier{name: "terminal"}
	journal := &recordingJournal{err: errors.New("disk full")}

	dispatcher := NewDispatcher(testLogger(t), journal, sink)
	dispatcher.Dispatch(context.Background(), core.Trade{ID: "0x1"})

	require.Len(t, sink.trades, 1)
}

func TestDispatcher_NilJournal(t *testing.T) {
	sink := &recordingNotifier{name: "terminal"}

	dispatcher := NewDispatcher(testLogger(t), nil, sink)
	dispatcher.Dispatch(context.Background(), core.Trade{ID: "0x1"})

	require.Len(t, sink.trades, 1)
}

func TestDispatcher_Announce(t *testing.T) {
	broken := &recordingNotifier{name: "chat", err: errors.New("unreachable")}
	healthy := &recordingNotifier{name: "terminal"}

	dispatcher := NewDispatcher(testLogger(t), nil, broken, healthy)
	dispatcher.Announce("started")

	require.Equal(t, []string{"started"}, healthy.texts)
	require.Equal(t, []string{"chat", "terminal"}, dispatcher.SinkNames())
}
