package notification

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/raykavin/polywatch/core"
)

func TestTerminal_OnTrade(t *testing.T) {
	var out bytes.Buffer
	terminal := NewTerminal(WithWriter(&out), WithColor(false))

	err := terminal.OnTrade(core.Trade{
		ID:      "0x1",
		Side:    core.SideTypeBuy,
		Market:  "Will it rain tomorrow?",
		Outcome: "Yes",
		Shares:  150.5,
		Price:   0.65,
		Value:   97.83,
		Time:    time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	rendered := out.String()
	require.Contains(t, rendered, "📈 BUY")
	require.Contains(t, rendered, "Will it rain tomorrow?")
	require.Contains(t, rendered, "Yes")
	require.Contains(t, rendered, "$0.6500")
	require.Contains(t, rendered, "$97.83 USDC")
	require.Contains(t, rendered, "2026-01-01 12:00:00")
}

func TestTerminal_OnTradeSellOmitsEmptyOutcome(t *testing.T) {
	var out bytes.Buffer
	terminal := NewTerminal(WithWriter(&out), WithColor(false))

	err := terminal.OnTrade(core.Trade{ID: "0x2", Side: core.SideTypeSell, Market: "m"})
	require.NoError(t, err)

	require.Contains(t, out.String(), "📉 SELL")
	require.NotContains(t, out.String(), "Outcome")
}

func TestTerminal_Notify(t *testing.T) {
	var out bytes.Buffer
	terminal := NewTerminal(WithWriter(&out))

	require.NoError(t, terminal.Notify("watching wallet"))
	require.Equal(t, "watching wallet\n", out.String())
}

func TestFormatTradeMessage(t *testing.T) {
	message := formatTradeMessage(core.Trade{
		ID:      "0x1",
		Side:    core.SideTypeSell,
		Market:  "Underscored_market *title*",
		Outcome: "No",
		Shares:  20,
		Price:   0.4,
		Value:   8,
		Time:    time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	})

	require.Contains(t, message, "📉 SELL")
	require.Contains(t, message, `Underscored\_market \*title\*`)
	require.Contains(t, message, "*Shares:* 20.00")
	require.Contains(t, message, "*Price:* $0.4000")
	require.Contains(t, message, "*Total:* $8.00 USDC")
	require.Contains(t, message, "_2026-01-01 12:00:00_")
}
