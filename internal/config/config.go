package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"StockSignal/internal/calculator"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider          string        `yaml:"provider"` // yahoo, rest or mock
		BaseURL           string        `yaml:"base_url"`
		APIKey            string        `yaml:"api_key"`
		Lookback          string        `yaml:"lookback"`
		Interval          string        `yaml:"interval"`
		Timeout           time.Duration `yaml:"timeout"`
		Retries           int           `yaml:"retries"`
		RequestsPerSecond float64       `yaml:"requests_per_second"`
		CacheTTL          time.Duration `yaml:"cache_ttl"`
	} `yaml:"data_source"`
	Indicators struct {
		calculator.Params `yaml:",inline"`
		TableRows         int `yaml:"table_rows"`
	} `yaml:"indicators"`
	Watchlist struct {
		File string `yaml:"file"`
	} `yaml:"watchlist"`
	Report struct {
		Concurrency int    `yaml:"concurrency"`
		ChartDir    string `yaml:"chart_dir"`
	} `yaml:"report"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		ReportCron string `yaml:"report_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Logger struct {
		Level    string `yaml:"level"`
		Encoding string `yaml:"encoding"`
	} `yaml:"logger"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	// Set before parsing so an explicit 0 in the file turns them off.
	cfg.DataSource.Retries = 2
	cfg.DataSource.RequestsPerSecond = 2

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DATA_SOURCE_PROVIDER"); v != "" {
		c.DataSource.Provider = v
	}
	if v := os.Getenv("DATA_SOURCE_BASE_URL"); v != "" {
		c.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_SOURCE_API_KEY"); v != "" {
		c.DataSource.APIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
		}
		c.Telegram.ChatID = id
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("WATCHLIST_FILE"); v != "" {
		c.Watchlist.File = v
	}
	if v := os.Getenv("REPORT_CRON"); v != "" {
		c.Schedule.ReportCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logger.Level = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	ds := &c.DataSource
	if ds.Provider == "" {
		if ds.BaseURL != "" {
			ds.Provider = "rest"
		} else {
			ds.Provider = "yahoo"
		}
	}
	if ds.Lookback == "" {
		ds.Lookback = "6mo"
	}
	if ds.Interval == "" {
		ds.Interval = "1d"
	}
	if ds.Timeout == 0 {
		ds.Timeout = 30 * time.Second
	}

	def := calculator.DefaultParams()
	p := &c.Indicators.Params
	if p.EMAFast == 0 {
		p.EMAFast = def.EMAFast
	}
	if p.EMASlow == 0 {
		p.EMASlow = def.EMASlow
	}
	if p.SMALong == 0 {
		p.SMALong = def.SMALong
	}
	if p.RSI == 0 {
		p.RSI = def.RSI
	}
	if p.MACD.Fast == 0 {
		p.MACD.Fast = def.MACD.Fast
	}
	if p.MACD.Slow == 0 {
		p.MACD.Slow = def.MACD.Slow
	}
	if p.MACD.Signal == 0 {
		p.MACD.Signal = def.MACD.Signal
	}
	if c.Indicators.TableRows == 0 {
		c.Indicators.TableRows = 7
	}

	if c.Watchlist.File == "" {
		c.Watchlist.File = "data/watchlist.json"
	}
	if c.Report.Concurrency == 0 {
		c.Report.Concurrency = 4
	}
	if c.Schedule.ReportCron == "" {
		c.Schedule.ReportCron = "0 30 22 * * 1-5"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/stocksignal.db"
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Encoding == "" {
		c.Logger.Encoding = "console"
	}
}

// Validate checks the fields every command needs.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	case "rest":
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the rest provider")
		}
	default:
		return fmt.Errorf("data_source.provider %q is not one of yahoo, rest, mock", c.DataSource.Provider)
	}
	if c.DataSource.Timeout < 0 {
		return fmt.Errorf("data_source.timeout must not be negative")
	}
	if c.DataSource.Retries < 0 {
		return fmt.Errorf("data_source.retries must not be negative")
	}
	if c.DataSource.RequestsPerSecond < 0 {
		return fmt.Errorf("data_source.requests_per_second must not be negative")
	}
	if err := c.Indicators.Params.Validate(); err != nil {
		return err
	}
	if c.Indicators.TableRows < 0 {
		return fmt.Errorf("indicators.table_rows must be positive")
	}
	if c.Report.Concurrency < 0 {
		return fmt.Errorf("report.concurrency must be positive")
	}
	return nil
}

// ValidateTelegram checks the fields the long-running service needs to talk
// to Telegram.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}

// TelegramEnabled reports whether a bot token and chat are configured.
func (c *Config) TelegramEnabled() bool {
	return c.ValidateTelegram() == nil
}
