package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validSettings() Settings {
	return Settings{
		Wallet:       "0xwallet",
		PollInterval: 5 * time.Second,
		MaxBackoff:   60 * time.Second,
		FetchLimit:   20,
		SeedLimit:    50,
	}
}

func TestSettings_Validate(t *testing.T) {
	require.NoError(t, validSettings().Validate())

	missing := validSettings()
	missing.Wallet = ""
	require.ErrorIs(t, missing.Validate(), ErrWalletRequired)

	negative := validSettings()
	negative.PollInterval = 0
	require.ErrorIs(t, negative.Validate(), ErrInvalidInterval)

	backoff := validSettings()
	backoff.MaxBackoff = time.Second
	require.ErrorIs(t, backoff.Validate(), ErrInvalidBackoff)
}

func TestLoadSettings_Defaults(t *testing.T) {
	t.Setenv(envWallet, "0xABCDEF")

	settings, err := LoadSettings()
	require.NoError(t, err)

	require.Equal(t, "0xabcdef", settings.Wallet)
	require.Equal(t, DefaultPollInterval, settings.PollInterval)
	require.Equal(t, DefaultMaxBackoff, settings.MaxBackoff)
	require.Equal(t, DefaultFetchLimit, settings.FetchLimit)
	require.Equal(t, JournalFile, settings.Journal.Driver)
	require.Equal(t, DefaultJournalPath, settings.Journal.Path)
	require.False(t, settings.Telegram.IsEnabled())
}

func TestLoadSettings_PlainSecondsInterval(t *testing.T) {
	t.Setenv(envWallet, "0xabc")
	t.Setenv(envPollInterval, "10")

	settings, err := LoadSettings()
	require.NoError(t, err)
	require.Equal(t, 10*time.Second, settings.PollInterval)
}

func TestLoadSettings_DurationStringInterval(t *testing.T) {
	t.Setenv(envWallet, "0xabc")
	t.Setenv(envPollInterval, "1m30s")

	settings, err := LoadSettings()
	require.NoError(t, err)
	require.Equal(t, 90*time.Second, settings.PollInterval)
}

func TestLoadSettings_Telegram(t *testing.T) {
	t.Setenv(envWallet, "0xabc")
	t.Setenv(envBotToken, "123:token")
	t.Setenv(envChatIDs, "111, 222,333")

	settings, err := LoadSettings()
	require.NoError(t, err)
	require.True(t, settings.Telegram.IsEnabled())
	require.Equal(t, []int64{111, 222, 333}, settings.Telegram.ChatIDs)
}

func TestParseChatIDs(t *testing.T) {
	ids, err := ParseChatIDs("1,2")
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2}, ids)

	ids, err = ParseChatIDs("")
	require.NoError(t, err)
	require.Empty(t, ids)

	_, err = ParseChatIDs("1,abc")
	require.ErrorIs(t, err, ErrInvalidChatID)
}

func TestTelegramSettings_IsEnabled(t *testing.T) {
	require.False(t, TelegramSettings{Token: "t"}.IsEnabled())
	require.False(t, TelegramSettings{ChatIDs: []int64{1}}.IsEnabled())
	require.True(t, TelegramSettings{Token: "t", ChatIDs: []int64{1}}.IsEnabled())
}
