// Package polywatch wires the wallet monitor together: the Polymarket
// feeder, the seen-trade tracker, the alert dispatcher with its sinks and
// the trade journal.
package polywatch

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/raykavin/polywatch/core"
	"github.com/raykavin/polywatch/exchange/polymarket"
	"github.com/raykavin/polywatch/monitor"
	"github.com/raykavin/polywatch/notification"
	"github.com/raykavin/polywatch/storage"
)

// Bot is the long-lived owner of all monitoring state. It is constructed
// once at process start; collaborators receive it by reference and no
// state lives in package globals.
type Bot struct {
	settings core.Settings
	feeder   core.Feeder
	journal  core.TradeJournal
	logger   core.Logger

	notifiers []core.Notifier
	starters  []core.NotifierWithStart

	tracker    *monitor.Tracker
	dispatcher *monitor.Dispatcher
	monitor    *monitor.Monitor
}

// NewBot creates a wallet monitor bot from validated settings. The
// terminal sink is always attached; the telegram sink is attached when
// configured. A nil feeder defaults to the Polymarket data API.
func NewBot(settings core.Settings, feeder core.Feeder, options ...Option) (*Bot, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	bot := &Bot{
		settings: settings,
		feeder:   feeder,
		logger:   DefaultLog,
		tracker:  monitor.NewTracker(),
	}

	for _, option := range options {
		option(bot)
	}

	if bot.feeder == nil {
		bot.feeder = polymarket.New(bot.logger, polymarket.Config{})
	}

	if err := initializeJournal(bot); err != nil {
		return nil, err
	}

	// the terminal sink is always available
	bot.notifiers = append([]core.Notifier{notification.NewTerminal()}, bot.notifiers...)

	bot.dispatcher = monitor.NewDispatcher(bot.logger, bot.journal, bot.notifiers...)
	bot.monitor = monitor.New(settings, bot.feeder, bot.tracker, bot.dispatcher, bot.logger)

	// telegram needs the monitor for /status, so it attaches last
	if err := initializeTelegram(bot); err != nil {
		return nil, err
	}

	return bot, nil
}

// initializeJournal sets up the trade journal from settings unless one
// was injected through WithJournal
func initializeJournal(bot *Bot) error {
	if bot.journal != nil {
		return nil
	}

	var err error
	switch bot.settings.Journal.Driver {
	case core.JournalBunt:
		bot.journal, err = storage.NewFromFile(bot.settings.Journal.Path)
	case core.JournalSQLite:
		bot.journal, err = storage.NewFromSQLite(bot.settings.Journal.Path, storage.DefaultSQLConfig())
	case core.JournalFile:
		bot.journal, err = storage.NewFileJournal(bot.settings.Journal.Path)
	default:
		err = fmt.Errorf("unknown journal driver: %s", bot.settings.Journal.Driver)
	}
	return err
}

// initializeTelegram attaches the telegram sink when a token and chat IDs
// are configured. It needs the monitor for /status, which is why it joins
// the dispatcher after construction.
func initializeTelegram(bot *Bot) error {
	if !bot.settings.Telegram.IsEnabled() {
		return nil
	}

	telegram, err := notification.NewTelegram(bot.settings, bot.monitor, bot.logger)
	if err != nil {
		return err
	}

	bot.notifiers = append(bot.notifiers, telegram)
	bot.starters = append(bot.starters, telegram)
	bot.dispatcher.AddNotifier(telegram)

	return nil
}

// Run prints the startup summary, starts the sinks that need their own
// loop and polls until ctx is cancelled
func (b *Bot) Run(ctx context.Context) error {
	b.printSummary()

	for _, starter := range b.starters {
		starter.Start()
	}

	defer func() {
		if err := b.journal.Close(); err != nil {
			b.logger.WithError(err).Error("failed to close trade journal")
		}
	}()

	return b.monitor.Run(ctx)
}

// printSummary renders the effective configuration as a table
func (b *Bot) printSummary() {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Setting", "Value"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	table.Append([]string{"Wallet", b.settings.Wallet})
	table.Append([]string{"Poll interval", b.settings.PollInterval.String()})
	table.Append([]string{"Backoff ceiling", b.settings.MaxBackoff.String()})
	table.Append([]string{"Fetch limit", fmt.Sprint(b.settings.FetchLimit)})
	table.Append([]string{"Journal", fmt.Sprintf("%s (%s)", b.settings.Journal.Driver, b.settings.Journal.Path)})
	for _, name := range b.dispatcher.SinkNames() {
		table.Append([]string{"Sink", name})
	}

	table.Render()
}
