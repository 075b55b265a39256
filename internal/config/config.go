package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"CryptoSentinel/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Sources  []model.NewsSource `yaml:"sources"`
	Schedule struct {
		NewsCheckCron   string `yaml:"news_check_cron"`
		DailyReportCron string `yaml:"daily_report_cron"`
	} `yaml:"schedule"`
	Risk struct {
		PortfolioValue       float64          `yaml:"portfolio_value"`
		EmergencyStopLossPct float64          `yaml:"emergency_stop_loss_pct"`
		Limits               model.RiskConfig `yaml:"limits"`
	} `yaml:"risk"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Metrics struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"metrics"`
	NewsAPIKey string `yaml:"news_api_key"`
	Proxy      string `yaml:"proxy"`
}

// DefaultSources are the built-in feeds, used when the config names none.
func DefaultSources() []model.NewsSource {
	return []model.NewsSource{
		{Name: "CoinDesk", URL: "https://www.coindesk.com/arc/outboundfeeds/rss/", Type: model.SourceRSS, Enabled: true, Priority: 9},
		{Name: "CoinTelegraph", URL: "https://cointelegraph.com/rss", Type: model.SourceRSS, Enabled: true, Priority: 8},
		{Name: "Decrypt", URL: "https://decrypt.co/feed", Type: model.SourceRSS, Enabled: true, Priority: 7},
		{Name: "The Block", URL: "https://www.theblock.co/rss.xml", Type: model.SourceRSS, Enabled: true, Priority: 8},
	}
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		cfg.NewsAPIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("PORTFOLIO_VALUE"); v != "" {
		if pv, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Risk.PortfolioValue = pv
		}
	}
	if v := os.Getenv("CRON_NEWS_CHECK"); v != "" {
		cfg.Schedule.NewsCheckCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if len(cfg.Sources) == 0 {
		cfg.Sources = DefaultSources()
	}
	if cfg.Schedule.NewsCheckCron == "" {
		cfg.Schedule.NewsCheckCron = "0 */5 * * * *" // every 5 minutes
	}
	if cfg.Schedule.DailyReportCron == "" {
		cfg.Schedule.DailyReportCron = "0 0 8 * * *"
	}
	if cfg.Risk.PortfolioValue == 0 {
		cfg.Risk.PortfolioValue = 10000
	}
	if cfg.Risk.EmergencyStopLossPct == 0 {
		cfg.Risk.EmergencyStopLossPct = 25
	}
	if cfg.Risk.Limits == (model.RiskConfig{}) {
		cfg.Risk.Limits = model.DefaultRiskConfig()
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/crypto_sentinel.db"
	}
	if cfg.Metrics.ListenAddr == "" {
		cfg.Metrics.ListenAddr = ":9180"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and percentages are in range.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.Risk.PortfolioValue <= 0 {
		return fmt.Errorf("risk.portfolio_value must be positive")
	}
	if c.Risk.EmergencyStopLossPct <= 0 || c.Risk.EmergencyStopLossPct > 100 {
		return fmt.Errorf("risk.emergency_stop_loss_pct must be in (0,100]")
	}
	limits := c.Risk.Limits
	if limits.MaxPositionSizePct <= 0 || limits.MaxPositionSizePct > 100 {
		return fmt.Errorf("risk.limits.max_position_size_pct must be in (0,100]")
	}
	if limits.MaxDailyLossPct <= 0 || limits.MaxDailyLossPct > 100 {
		return fmt.Errorf("risk.limits.max_daily_loss_pct must be in (0,100]")
	}
	if limits.MaxConcurrentTrades <= 0 {
		return fmt.Errorf("risk.limits.max_concurrent_trades must be positive")
	}
	for i, src := range c.Sources {
		if src.Name == "" || src.URL == "" {
			return fmt.Errorf("sources[%d]: name and url are required", i)
		}
		switch src.Type {
		case model.SourceRSS, model.SourceAPI, model.SourceWebSocket:
		default:
			return fmt.Errorf("sources[%d]: unknown type %q", i, src.Type)
		}
	}
	return nil
}
