package core

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	str2duration "github.com/xhit/go-str2duration/v2"
)

// Journal drivers
const (
	JournalFile   = "file"
	JournalBunt   = "bunt"
	JournalSQLite = "sqlite"
)

// Default configuration values
const (
	DefaultPollInterval = 5 * time.Second
	DefaultMaxBackoff   = 60 * time.Second
	DefaultFetchLimit   = 20
	DefaultSeedLimit    = 50
	DefaultJournalPath  = "trades.log"
)

// TelegramSettings configures the chat notification sink. The sink is
// disabled when Token is empty or no chat IDs are configured.
type TelegramSettings struct {
	Token   string
	ChatIDs []int64
}

// IsEnabled returns true when the telegram sink should be created
func (t TelegramSettings) IsEnabled() bool {
	return t.Token != "" && len(t.ChatIDs) > 0
}

// JournalSettings selects the trade journal backend
type JournalSettings struct {
	Driver string
	Path   string
}

// Settings holds the full process configuration. It is immutable after
// startup; the monitor and sinks only ever read from it.
type Settings struct {
	Wallet       string
	PollInterval time.Duration
	MaxBackoff   time.Duration
	FetchLimit   int
	SeedLimit    int
	Telegram     TelegramSettings
	Journal      JournalSettings
}

// Validate checks the settings before the poll loop is allowed to start
func (s Settings) Validate() error {
	if s.Wallet == "" {
		return ErrWalletRequired
	}
	if s.PollInterval <= 0 {
		return ErrInvalidInterval
	}
	if s.MaxBackoff < s.PollInterval {
		return ErrInvalidBackoff
	}
	return nil
}

// Environment variable names
const (
	envWallet       = "POLYMARKET_WALLET"
	envPollInterval = "POLL_INTERVAL"
	envMaxBackoff   = "MAX_BACKOFF"
	envFetchLimit   = "FETCH_LIMIT"
	envBotToken     = "TELEGRAM_BOT_TOKEN"
	envChatIDs      = "TELEGRAM_CHAT_IDS"
	envJournal      = "TRADE_JOURNAL"
	envJournalPath  = "TRADE_JOURNAL_PATH"
)

// LoadSettings builds Settings from the environment, reading a .env file
// first when one is present. Values are defaulted, not validated; call
// Validate before use.
func LoadSettings() (Settings, error) {
	_ = godotenv.Load()

	settings := Settings{
		Wallet:    strings.ToLower(strings.TrimSpace(os.Getenv(envWallet))),
		SeedLimit: DefaultSeedLimit,
		Journal: JournalSettings{
			Driver: getEnvWithDefault(envJournal, JournalFile),
			Path:   getEnvWithDefault(envJournalPath, DefaultJournalPath),
		},
	}

	var err error
	if settings.PollInterval, err = parseDurationEnv(envPollInterval, DefaultPollInterval); err != nil {
		return settings, err
	}
	if settings.MaxBackoff, err = parseDurationEnv(envMaxBackoff, DefaultMaxBackoff); err != nil {
		return settings, err
	}
	if settings.FetchLimit, err = parseIntEnv(envFetchLimit, DefaultFetchLimit); err != nil {
		return settings, err
	}

	settings.Telegram.Token = strings.TrimSpace(os.Getenv(envBotToken))
	if settings.Telegram.ChatIDs, err = ParseChatIDs(os.Getenv(envChatIDs)); err != nil {
		return settings, err
	}

	return settings, nil
}

// ParseChatIDs parses a comma-separated list of telegram chat IDs
func ParseChatIDs(value string) ([]int64, error) {
	var ids []int64
	for _, raw := range strings.Split(value, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidChatID, raw)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseDurationEnv reads a duration environment variable. Plain integers
// are accepted as seconds, anything else goes through str2duration so
// values like "90s" or "1m30s" work too.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}

	duration, err := str2duration.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return duration, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
