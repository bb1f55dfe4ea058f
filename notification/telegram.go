package notification

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"slices"

	tb "gopkg.in/tucnak/telebot.v2"

	"github.com/raykavin/polywatch/core"
	"github.com/raykavin/polywatch/monitor"
)

const pollingTimeout = 10 * time.Second

// StatusProvider serves loop health to the /status command
type StatusProvider interface {
	Status() monitor.Status
}

// Telegram implements the core.NotifierWithStart interface. Alerts are
// pushed to every configured chat; each chat failure is independent of
// the others. The bot also answers /status and /help from those same
// chats.
type Telegram struct {
	settings core.Settings
	status   StatusProvider
	client   *tb.Bot
	log      core.Logger
}

// NewTelegram creates and initializes a new Telegram sink
func NewTelegram(settings core.Settings, status StatusProvider, log core.Logger) (core.NotifierWithStart, error) {
	poller := &tb.LongPoller{Timeout: pollingTimeout}
	middleware := newAuthMiddleware(poller, settings, log)

	client, err := tb.NewBot(tb.Settings{
		ParseMode: tb.ModeMarkdown,
		Token:     settings.Telegram.Token,
		Poller:    middleware,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	if err := client.SetCommands([]tb.Command{
		{Text: "/help", Description: "Display help instructions"},
		{Text: "/status", Description: "Check monitor status"},
	}); err != nil {
		return nil, fmt.Errorf("failed to set commands: %w", err)
	}

	telegram := &Telegram{
		settings: settings,
		status:   status,
		client:   client,
		log:      log,
	}

	client.Handle("/help", telegram.HelpHandle)
	client.Handle("/status", telegram.StatusHandle)

	return telegram, nil
}

// newAuthMiddleware drops updates from chats outside the configured list
func newAuthMiddleware(poller *tb.LongPoller, settings core.Settings, log core.Logger) *tb.MiddlewarePoller {
	return tb.NewMiddlewarePoller(poller, func(u *tb.Update) bool {
		if u.Message == nil || u.Message.Sender == nil {
			return false
		}

		if slices.Contains(settings.Telegram.ChatIDs, u.Message.Sender.ID) {
			return true
		}

		log.Warn("telegram: ignoring message from unauthorized chat ", u.Message.Sender.ID)
		return false
	})
}

// Start begins the telegram receive loop and announces the watched wallet
func (t *Telegram) Start() {
	go t.client.Start()

	if err := t.Notify(fmt.Sprintf("👀 Watching wallet `%s`", t.settings.Wallet)); err != nil {
		t.log.WithError(err).Error("telegram: failed to send startup message")
	}
}

// Name implements core.Notifier
func (t *Telegram) Name() string {
	return "telegram"
}

// Notify implements core.Notifier, sending to every configured chat. All
// chats are attempted; the returned error joins the individual failures.
func (t *Telegram) Notify(text string) error {
	var errs []error
	for _, chatID := range t.settings.Telegram.ChatIDs {
		if _, err := t.client.Send(&tb.User{ID: chatID}, text); err != nil {
			errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
		}
	}
	return errors.Join(errs...)
}

// OnTrade implements core.Notifier
func (t *Telegram) OnTrade(trade core.Trade) error {
	return t.Notify(formatTradeMessage(trade))
}

// HelpHandle answers /help
func (t *Telegram) HelpHandle(m *tb.Message) {
	help := strings.Join([]string{
		"*polywatch commands*",
		"/status - monitor health and trade counters",
		"/help - this message",
	}, "\n")
	t.sendMessage(m.Sender, help)
}

// StatusHandle answers /status with a loop health snapshot
func (t *Telegram) StatusHandle(m *tb.Message) {
	status := t.status.Status()

	lines := []string{
		fmt.Sprintf("*State:* %s", status.State),
		fmt.Sprintf("*Wallet:* `%s`", t.settings.Wallet),
		fmt.Sprintf("*Seen trades:* %d", status.SeenTrades),
		fmt.Sprintf("*Alerts sent:* %d", status.DispatchedTrades),
		fmt.Sprintf("*Uptime:* %s", time.Since(status.StartedAt).Round(time.Second)),
	}
	if status.ConsecutiveFailures > 0 {
		lines = append(lines, fmt.Sprintf("*Consecutive failures:* %d", status.ConsecutiveFailures))
	}
	if !status.LastTradeAt.IsZero() {
		lines = append(lines, fmt.Sprintf("*Last trade:* %s", status.LastTradeAt.UTC().Format("2006-01-02 15:04:05")))
	}

	t.sendMessage(m.Sender, strings.Join(lines, "\n"))
}

// sendMessage replies to a specific chat
func (t *Telegram) sendMessage(to *tb.User, text string) {
	if _, err := t.client.Send(to, text); err != nil {
		t.log.WithError(err).Error("telegram: failed to send message")
	}
}

// formatTradeMessage renders a trade as a markdown alert
func formatTradeMessage(trade core.Trade) string {
	direction := "📈 BUY"
	if !trade.IsBuy() {
		direction = "📉 SELL"
	}

	lines := []string{
		fmt.Sprintf("*%s*", direction),
		"",
		fmt.Sprintf("*Market:* %s", escapeMarkdown(trade.Market)),
	}

	if trade.Outcome != "" {
		lines = append(lines, fmt.Sprintf("*Outcome:* %s", escapeMarkdown(trade.Outcome)))
	}

	lines = append(lines,
		fmt.Sprintf("*Shares:* %.2f", trade.Shares),
		fmt.Sprintf("*Price:* $%.4f", trade.Price),
		fmt.Sprintf("*Total:* $%.2f USDC", trade.Value),
		"",
		fmt.Sprintf("_%s_", trade.Time.UTC().Format("2006-01-02 15:04:05")),
	)

	return strings.Join(lines, "\n")
}

// escapeMarkdown neutralizes the markdown control characters that market
// titles may contain
func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"`", "\\`",
		"[", "\\[",
	)
	return replacer.Replace(text)
}
