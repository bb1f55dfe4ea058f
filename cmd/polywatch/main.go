package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/raykavin/polywatch"
	"github.com/raykavin/polywatch/core"
)

// Command line flags, overriding the environment when set
var (
	wallet      string
	interval    time.Duration
	maxBackoff  time.Duration
	fetchLimit  int
	journal     string
	journalPath string
	chatIDs     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "polywatch",
		Short:   "Polymarket wallet trade alerts",
		Long:    "Watches a Polymarket wallet and alerts on new BUY/SELL trades via terminal and Telegram.",
		Version: "1.0.0",
		RunE:    runWatch,
	}

	rootCmd.Flags().StringVarP(&wallet, "wallet", "w", "", "Wallet address to watch (env POLYMARKET_WALLET)")
	rootCmd.Flags().DurationVarP(&interval, "interval", "i", 0, "Poll interval (env POLL_INTERVAL)")
	rootCmd.Flags().DurationVar(&maxBackoff, "max-backoff", 0, "Backoff ceiling on repeated fetch failures (env MAX_BACKOFF)")
	rootCmd.Flags().IntVarP(&fetchLimit, "limit", "l", 0, "Trades fetched per poll (env FETCH_LIMIT)")
	rootCmd.Flags().StringVarP(&journal, "journal", "j", "", "Trade journal driver: file, bunt or sqlite (env TRADE_JOURNAL)")
	rootCmd.Flags().StringVar(&journalPath, "journal-path", "", "Trade journal path (env TRADE_JOURNAL_PATH)")
	rootCmd.Flags().StringVar(&chatIDs, "chat-ids", "", "Comma-separated Telegram chat IDs (env TELEGRAM_CHAT_IDS)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runWatch(cmd *cobra.Command, _ []string) error {
	settings, err := buildSettings()
	if err != nil {
		return err
	}

	bot, err := polywatch.NewBot(settings, nil)
	if err != nil {
		return err
	}

	// run until interrupted, then exit cleanly
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return bot.Run(ctx)
}

// buildSettings loads the environment and applies flag overrides
func buildSettings() (core.Settings, error) {
	settings, err := core.LoadSettings()
	if err != nil {
		return settings, err
	}

	if wallet != "" {
		settings.Wallet = strings.ToLower(wallet)
	}
	if interval > 0 {
		settings.PollInterval = interval
	}
	if maxBackoff > 0 {
		settings.MaxBackoff = maxBackoff
	}
	if fetchLimit > 0 {
		settings.FetchLimit = fetchLimit
	}
	if journal != "" {
		settings.Journal.Driver = journal
	}
	if journalPath != "" {
		settings.Journal.Path = journalPath
	}
	if chatIDs != "" {
		if settings.Telegram.ChatIDs, err = core.ParseChatIDs(chatIDs); err != nil {
			return settings, err
		}
	}

	return settings, settings.Validate()
}
