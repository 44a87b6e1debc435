package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "yahoo", cfg.DataSource.Provider)
	assert.Equal(t, "6mo", cfg.DataSource.Lookback)
	assert.Equal(t, "1d", cfg.DataSource.Interval)
	assert.Equal(t, 2, cfg.DataSource.Retries)
	assert.Equal(t, 2.0, cfg.DataSource.RequestsPerSecond)
	assert.Equal(t, 20, cfg.Indicators.EMAFast)
	assert.Equal(t, 50, cfg.Indicators.EMASlow)
	assert.Equal(t, 200, cfg.Indicators.SMALong)
	assert.Equal(t, 14, cfg.Indicators.RSI)
	assert.Equal(t, 26, cfg.Indicators.MACD.Slow)
	assert.Equal(t, 7, cfg.Indicators.TableRows)
	assert.Equal(t, "data/watchlist.json", cfg.Watchlist.File)
	assert.Equal(t, "0 30 22 * * 1-5", cfg.Schedule.ReportCron)
	assert.False(t, cfg.TelegramEnabled())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
data_source:
  provider: rest
  base_url: http://file
  timeout: 5s
  cache_ttl: 10m
indicators:
  ema_fast: 10
  macd:
    fast: 5
    slow: 35
    signal: 5
  table_rows: 10
telegram:
  bot_token: file-token
  chat_id: 1
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	t.Setenv("DATA_SOURCE_BASE_URL", "http://env")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "rest", cfg.DataSource.Provider)
	assert.Equal(t, "http://env", cfg.DataSource.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.DataSource.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.DataSource.CacheTTL)
	assert.Equal(t, 10, cfg.Indicators.EMAFast)
	assert.Equal(t, 50, cfg.Indicators.EMASlow)
	assert.Equal(t, 5, cfg.Indicators.MACD.Fast)
	assert.Equal(t, 35, cfg.Indicators.MACD.Slow)
	assert.Equal(t, 10, cfg.Indicators.TableRows)
	assert.Equal(t, int64(-100123), cfg.Telegram.ChatID)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, cfg.TelegramEnabled())
}

func TestLoad_ZeroTurnsOffRetriesAndThrottle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := "data_source:\n  retries: 0\n  requests_per_second: 0\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0, cfg.DataSource.Retries)
	assert.Equal(t, 0.0, cfg.DataSource.RequestsPerSecond)

	cfg.DataSource.RequestsPerSecond = -1
	assert.ErrorContains(t, cfg.Validate(), "requests_per_second")
}

func TestLoad_BadChatID(t *testing.T) {
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	cfg.DataSource.Provider = "ftp"
	assert.ErrorContains(t, cfg.Validate(), "data_source.provider")

	cfg.DataSource.Provider = "rest"
	cfg.DataSource.BaseURL = ""
	assert.ErrorContains(t, cfg.Validate(), "base_url")

	cfg.DataSource.Provider = "mock"
	cfg.Indicators.MACD.Fast = 30
	assert.ErrorContains(t, cfg.Validate(), "shorter")

	cfg.Indicators.MACD.Fast = 12
	require.NoError(t, cfg.Validate())
	assert.ErrorContains(t, cfg.ValidateTelegram(), "bot_token")
}
