// Package notification provides the alert sinks: terminal output and
// Telegram chats.
package notification

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/goterm/term"

	"github.com/raykavin/polywatch/core"
)

// Terminal writes colored trade alerts to a writer, stdout by default.
// It is the always-available sink: short of a broken writer it cannot
// fail.
type Terminal struct {
	out     io.Writer
	colored bool
}

// TerminalOption configures a terminal sink
type TerminalOption func(*Terminal)

// WithWriter redirects the sink output, used by tests
func WithWriter(w io.Writer) TerminalOption {
	return func(t *Terminal) {
		t.out = w
	}
}

// WithColor toggles ANSI colors
func WithColor(colored bool) TerminalOption {
	return func(t *Terminal) {
		t.colored = colored
	}
}

func NewTerminal(options ...TerminalOption) *Terminal {
	terminal := &Terminal{out: os.Stdout, colored: true}
	for _, option := range options {
		option(terminal)
	}
	return terminal
}

// Name implements core.Notifier
func (t *Terminal) Name() string {
	return "terminal"
}

// Notify implements core.Notifier
func (t *Terminal) Notify(text string) error {
	_, err := fmt.Fprintln(t.out, text)
	return err
}

// OnTrade implements core.Notifier, rendering the trade as a bordered
// panel with the side colored green for buys and red for sells
func (t *Terminal) OnTrade(trade core.Trade) error {
	direction := "📈 BUY"
	paint := term.Greenf
	if !trade.IsBuy() {
		direction = "📉 SELL"
		paint = term.Redf
	}
	if !t.colored {
		paint = fmt.Sprintf
	}

	var b strings.Builder
	b.WriteString(paint("──── Trade Alert ") + strings.Repeat("─", 30) + "\n")
	b.WriteString(paint("%s", direction) + "\n")
	fmt.Fprintf(&b, "Market:  %s\n", trade.Market)
	if trade.Outcome != "" {
		fmt.Fprintf(&b, "Outcome: %s\n", trade.Outcome)
	}
	fmt.Fprintf(&b, "Shares:  %.2f\n", trade.Shares)
	fmt.Fprintf(&b, "Price:   $%.4f\n", trade.Price)
	b.WriteString(paint("Total:   $%.2f USDC", trade.Value) + "\n")
	fmt.Fprintf(&b, "──── %s %s\n",
		trade.Time.UTC().Format("2006-01-02 15:04:05"),
		strings.Repeat("─", 22))

	_, err := fmt.Fprint(t.out, b.String())
	return err
}
