package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL  string `yaml:"base_url"` // self-hosted bar API; empty means Yahoo
		APIKey   string `yaml:"api_key"`
		Exchange string `yaml:"exchange"`
	} `yaml:"data_source"`
	Scraper struct {
		FundamentalsURL string `yaml:"fundamentals_url"`
		NewsURL         string `yaml:"news_url"`
		UserAgent       string `yaml:"user_agent"`
	} `yaml:"scraper"`
	GenAI struct {
		APIKey             string `yaml:"api_key"`
		Model              string `yaml:"model"`
		BaseURL            string `yaml:"base_url"`
		RequestIntervalSec int    `yaml:"request_interval_sec"`
		RetryCooldownSec   int    `yaml:"retry_cooldown_sec"`
	} `yaml:"genai"`
	Reports struct {
		Dir string `yaml:"dir"`
	} `yaml:"reports"`
	Suggestions struct {
		CSVPath string `yaml:"csv_path"`
	} `yaml:"suggestions"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		WatchCron string   `yaml:"watch_cron"`
		Watchlist []string `yaml:"watchlist"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
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
	if v := os.Getenv("GENAI_API_KEY"); v != "" {
		cfg.GenAI.APIKey = v
	}
	if v := os.Getenv("GENAI_MODEL"); v != "" {
		cfg.GenAI.Model = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("STOCK_EXCHANGE"); v != "" {
		cfg.DataSource.Exchange = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REPORTS_DIR"); v != "" {
		cfg.Reports.Dir = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		cfg.Schedule.Watchlist = strings.Split(v, ",")
	}
	if v := os.Getenv("GENAI_REQUEST_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.GenAI.RequestIntervalSec = n
		}
	}

	// Defaults
	if cfg.DataSource.Exchange == "" {
		cfg.DataSource.Exchange = "NSE"
	}
	if cfg.Scraper.FundamentalsURL == "" {
		cfg.Scraper.FundamentalsURL = "https://www.screener.in/company"
	}
	if cfg.Scraper.NewsURL == "" {
		cfg.Scraper.NewsURL = "https://www.google.com/finance/quote"
	}
	if cfg.GenAI.Model == "" {
		cfg.GenAI.Model = "gemini-1.5-pro"
	}
	if cfg.GenAI.RequestIntervalSec == 0 {
		cfg.GenAI.RequestIntervalSec = 40
	}
	if cfg.GenAI.RetryCooldownSec == 0 {
		cfg.GenAI.RetryCooldownSec = 60
	}
	if cfg.Reports.Dir == "" {
		cfg.Reports.Dir = "reports"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stocksage.db"
	}
	if cfg.Schedule.WatchCron == "" {
		cfg.Schedule.WatchCron = "0 0 18 * * 1-5"
	}

	return cfg, nil
}

// Validate checks the fields every mode needs.
func (c *Config) Validate() error {
	if c.GenAI.APIKey == "" {
		return fmt.Errorf("genai.api_key is required")
	}
	if c.GenAI.RequestIntervalSec < 0 || c.GenAI.RetryCooldownSec < 0 {
		return fmt.Errorf("genai intervals must not be negative")
	}
	return nil
}

// ValidateWatch additionally checks the fields watch mode needs.
func (c *Config) ValidateWatch() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required in watch mode")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required in watch mode")
	}
	if len(c.Schedule.Watchlist) == 0 {
		return fmt.Errorf("schedule.watchlist must not be empty in watch mode")
	}
	return nil
}
