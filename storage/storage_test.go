package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/raykavin/polywatch/core"
)

func sampleTrade(id string, side core.SideType, at time.Time) *core.Trade {
	return &core.Trade{
		ID:      id,
		Side:    side,
		Market:  "Will it rain tomorrow?",
		Outcome: "Yes",
		Shares:  10,
		Price:   0.65,
		Value:   6.5,
		Time:    at,
	}
}

func TestFileJournal_AppendsOneLinePerTrade(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.log")

	journal, err := NewFileJournal(path)
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, journal.Append(context.Background(), sampleTrade("0x1", core.SideTypeBuy, now)))
	require.NoError(t, journal.Append(context.Background(), sampleTrade("0x2", core.SideTypeSell, now)))
	require.NoError(t, journal.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "BUY")
	require.Contains(t, lines[1], "SELL")
}

func TestFileJournal_AppendsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.log")
	now := time.Now().UTC()

	journal, err := NewFileJournal(path)
	require.NoError(t, err)
	require.NoError(t, journal.Append(context.Background(), sampleTrade("0x1", core.SideTypeBuy, now)))
	require.NoError(t, journal.Close())

	journal, err = NewFileJournal(path)
	require.NoError(t, err)
	require.NoError(t, journal.Append(context.Background(), sampleTrade("0x2", core.SideTypeBuy, now)))
	require.NoError(t, journal.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimSpace(string(content)), "\n"), 2)
}

func TestBuntJournal_AppendAndQuery(t *testing.T) {
	journal, err := NewFromMemory()
	require.NoError(t, err)
	defer journal.Close()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, journal.Append(context.Background(), sampleTrade("0x1", core.SideTypeBuy, base)))
	require.NoError(t, journal.Append(context.Background(), sampleTrade("0x2", core.SideTypeSell, base.Add(time.Minute))))

	trades, err := journal.Trades(context.Background())
	require.NoError(t, err)
	require.Len(t, trades, 2)

	sells, err := journal.Trades(context.Background(), core.WithSide(core.SideTypeSell))
	require.NoError(t, err)
	require.Len(t, sells, 1)
	require.Equal(t, "0x2", sells[0].ID)

	recent, err := journal.Trades(context.Background(), core.WithTimeAfter(base))
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, "0x2", recent[0].ID)
}

func TestSQLJournal_AppendAndQuery(t *testing.T) {
	journal, err := NewFromSQLite(filepath.Join(t.TempDir(), "trades.db"), DefaultSQLConfig())
	require.NoError(t, err)
	defer journal.Close()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, journal.Append(context.Background(), sampleTrade("0x1", core.SideTypeBuy, base)))
	require.NoError(t, journal.Append(context.Background(), sampleTrade("0x2", core.SideTypeSell, base.Add(time.Minute))))

	trades, err := journal.Trades(context.Background())
	require.NoError(t, err)
	require.Len(t, trades, 2)
	require.Equal(t, "0x1", trades[0].ID)

	buys, err := journal.Trades(context.Background(), core.WithSide(core.SideTypeBuy), core.WithMarket("Will it rain tomorrow?"))
	require.NoError(t, err)
	require.Len(t, buys, 1)
	require.Equal(t, "0x1", buys[0].ID)
}
