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
	Tickers       []string `yaml:"tickers"`
	LookbackDays  int      `yaml:"lookback_days"`
	RSIPeriod     int      `yaml:"rsi_period"`
	ToleranceDays int      `yaml:"tolerance_days"`
	PriceSource   struct {
		BaseURL string `yaml:"base_url"` // empty means Yahoo Finance
		APIKey  string `yaml:"api_key"`
	} `yaml:"price_source"`
	News struct {
		Source        string `yaml:"source"` // "finnhub" or "yahoo"
		FinnhubAPIKey string `yaml:"finnhub_api_key"`
		MaxArticles   int    `yaml:"max_articles"`
	} `yaml:"news"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	StateFile string `yaml:"state_file"`
	Schedule  struct {
		Cron string `yaml:"cron"` // empty disables watch mode
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
	if v := os.Getenv("TICKERS"); v != "" {
		cfg.Tickers = nil
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				cfg.Tickers = append(cfg.Tickers, t)
			}
		}
	}
	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		cfg.News.FinnhubAPIKey = v
	}
	if v := os.Getenv("NEWS_SOURCE"); v != "" {
		cfg.News.Source = v
	}
	if v := os.Getenv("BARS_BASE_URL"); v != "" {
		cfg.PriceSource.BaseURL = v
	}
	if v := os.Getenv("BARS_API_KEY"); v != "" {
		cfg.PriceSource.APIKey = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOOKBACK_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LookbackDays = n
		}
	}

	// Defaults
	if len(cfg.Tickers) == 0 {
		cfg.Tickers = []string{"AAPL"}
	}
	if cfg.LookbackDays == 0 {
		cfg.LookbackDays = 30
	}
	if cfg.RSIPeriod == 0 {
		cfg.RSIPeriod = 14
	}
	if cfg.ToleranceDays == 0 {
		cfg.ToleranceDays = 1
	}
	if cfg.News.Source == "" {
		cfg.News.Source = "finnhub"
	}
	if cfg.News.MaxArticles == 0 {
		cfg.News.MaxArticles = 50
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "data/out"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/equitypulse.db"
	}
	if cfg.StateFile == "" {
		cfg.StateFile = "data/run_state.json"
	}

	return cfg, nil
}

// Validate checks that the configuration is usable before any work starts.
func (c *Config) Validate() error {
	if len(c.Tickers) == 0 {
		return fmt.Errorf("tickers must not be empty")
	}
	if c.LookbackDays <= 0 {
		return fmt.Errorf("lookback_days must be positive")
	}
	if c.RSIPeriod <= 0 {
		return fmt.Errorf("rsi_period must be positive")
	}
	if c.ToleranceDays < 0 {
		return fmt.Errorf("tolerance_days must not be negative")
	}
	switch c.News.Source {
	case "finnhub":
		if c.News.FinnhubAPIKey == "" {
			return fmt.Errorf("news.finnhub_api_key is required for the finnhub source")
		}
	case "yahoo", "none":
	default:
		return fmt.Errorf("news.source must be finnhub, yahoo, or none")
	}
	return nil
}
