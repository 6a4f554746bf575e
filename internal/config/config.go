package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"CryptoSentinel/internal/calculator"
	"CryptoSentinel/internal/collector"
)

// Config holds all application configuration.
type Config struct {
	CoinGecko struct {
		BaseURL     string `yaml:"base_url"`
		APIKey      string `yaml:"api_key"`
		HistoryDays int    `yaml:"history_days"`
		Mock        bool   `yaml:"mock"`
	} `yaml:"coingecko"`
	Scan struct {
		Watchlist []string `yaml:"watchlist"`
		RSIPeriod int      `yaml:"rsi_period"`
		Workers   int      `yaml:"workers"`
	} `yaml:"scan"`
	Schedule struct {
		ScanCron string `yaml:"scan_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Redis struct {
		Addr        string        `yaml:"addr"`
		Password    string        `yaml:"password"`
		DB          int           `yaml:"db"`
		CoinListTTL time.Duration `yaml:"coin_list_ttl"`
	} `yaml:"redis"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
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
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		cfg.CoinGecko.BaseURL = v
	}
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		cfg.CoinGecko.APIKey = v
	}
	if v := os.Getenv("COINGECKO_MOCK"); v != "" {
		cfg.CoinGecko.Mock = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SCAN_WATCHLIST"); v != "" {
		cfg.Scan.Watchlist = collector.ParseSymbols(v)
	}
	if v := os.Getenv("SCAN_RSI_PERIOD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scan.RSIPeriod = n
		}
	}
	if v := os.Getenv("CRON_SCAN"); v != "" {
		cfg.Schedule.ScanCron = v
	}

	// Defaults
	if cfg.CoinGecko.BaseURL == "" {
		cfg.CoinGecko.BaseURL = collector.DefaultCoinGeckoURL
	}
	if cfg.CoinGecko.HistoryDays == 0 {
		cfg.CoinGecko.HistoryDays = collector.DefaultHistoryDays
	}
	if len(cfg.Scan.Watchlist) == 0 {
		cfg.Scan.Watchlist = append([]string(nil), collector.PopularSymbols...)
	}
	cfg.Scan.Watchlist = collector.NormalizeSymbols(cfg.Scan.Watchlist)
	if cfg.Scan.RSIPeriod == 0 {
		cfg.Scan.RSIPeriod = calculator.DefaultRSIPeriod
	}
	if cfg.Scan.Workers == 0 {
		cfg.Scan.Workers = collector.DefaultWorkers
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 0 */4 * * *"
	}
	if cfg.Redis.CoinListTTL == 0 {
		cfg.Redis.CoinListTTL = 6 * time.Hour
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/crypto_sentinel.db"
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":5000"
	}

	return cfg, nil
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	if c.Scan.RSIPeriod < 2 {
		return fmt.Errorf("scan.rsi_period must be at least 2")
	}
	if c.Scan.Workers < 1 {
		return fmt.Errorf("scan.workers must be positive")
	}
	if c.CoinGecko.HistoryDays < collector.MinPricePoints {
		return fmt.Errorf("coingecko.history_days must be at least %d", collector.MinPricePoints)
	}
	if len(c.Scan.Watchlist) == 0 {
		return fmt.Errorf("scan.watchlist must not be empty")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}
