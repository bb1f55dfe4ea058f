package polywatch

import (
	"github.com/raykavin/polywatch/core"
)

// Option customizes a Bot during construction
type Option func(*Bot)

// WithLogger replaces the default logger
func WithLogger(logger core.Logger) Option {
	return func(bot *Bot) {
		bot.logger = logger
	}
}

// WithLogLevel sets the log level on the bot logger
func WithLogLevel(level core.Level) Option {
	return func(bot *Bot) {
		bot.logger.SetLevel(level)
	}
}

// WithJournal injects a trade journal, overriding the settings-selected
// backend
func WithJournal(journal core.TradeJournal) Option {
	return func(bot *Bot) {
		bot.journal = journal
	}
}

// WithNotifier attaches an additional notification sink
func WithNotifier(notifier core.Notifier) Option {
	return func(bot *Bot) {
		bot.notifiers = append(bot.notifiers, notifier)
		if starter, ok := notifier.(core.NotifierWithStart); ok {
			bot.starters = append(bot.starters, starter)
		}
	}
}
