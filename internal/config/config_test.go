package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"CryptoSentinel/internal/calculator"
	"CryptoSentinel/internal/collector"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"COINGECKO_BASE_URL", "COINGECKO_API_KEY", "COINGECKO_MOCK", "TELEGRAM_BOT_TOKEN",
		"TELEGRAM_CHAT_ID", "REDIS_ADDR", "SQLITE_PATH", "HTTP_ADDR", "HTTPS_PROXY",
		"SCAN_WATCHLIST", "SCAN_RSI_PERIOD", "CRON_SCAN",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Scan.RSIPeriod != 14 || cfg.Scan.Workers != 4 || cfg.CoinGecko.HistoryDays != 100 {
		t.Errorf("unexpected scan defaults %+v / %d", cfg.Scan, cfg.CoinGecko.HistoryDays)
	}
	if len(cfg.Scan.Watchlist) != 5 || cfg.Scan.Watchlist[0] != "BTC" {
		t.Errorf("unexpected default watchlist %v", cfg.Scan.Watchlist)
	}
	if cfg.Redis.CoinListTTL != 6*time.Hour || cfg.HTTP.Addr != ":5000" {
		t.Errorf("unexpected defaults ttl=%v addr=%s", cfg.Redis.CoinListTTL, cfg.HTTP.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
coingecko:
  api_key: file-key
  history_days: 200
scan:
  watchlist: [doge, " ada "]
  rsi_period: 21
redis:
  addr: localhost:6379
  coin_list_ttl: 30m
telegram:
  bot_token: tok
  chat_id: "123"
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COINGECKO_API_KEY", "env-key")
	t.Setenv("SCAN_RSI_PERIOD", "9")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CoinGecko.APIKey != "env-key" {
		t.Errorf("expected env override, got %s", cfg.CoinGecko.APIKey)
	}
	if cfg.Scan.RSIPeriod != 9 || cfg.CoinGecko.HistoryDays != 200 {
		t.Errorf("unexpected values period=%d days=%d", cfg.Scan.RSIPeriod, cfg.CoinGecko.HistoryDays)
	}
	if len(cfg.Scan.Watchlist) != 2 || cfg.Scan.Watchlist[1] != "ADA" {
		t.Errorf("unexpected watchlist %v", cfg.Scan.Watchlist)
	}
	if cfg.Redis.CoinListTTL != 30*time.Minute {
		t.Errorf("unexpected ttl %v", cfg.Redis.CoinListTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestLoad_WatchlistEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SCAN_WATCHLIST", "btc, eth")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Scan.Watchlist) != 2 || cfg.Scan.Watchlist[1] != "ETH" {
		t.Errorf("unexpected watchlist %v", cfg.Scan.Watchlist)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("scan: [unclosed"), 0o644)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	base, _ := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"rsi period", func(c *Config) { c.Scan.RSIPeriod = 1 }},
		{"workers", func(c *Config) { c.Scan.Workers = -1 }},
		{"history days", func(c *Config) { c.CoinGecko.HistoryDays = 10 }},
		{"telegram half set", func(c *Config) { c.Telegram.BotToken = "tok" }},
	}
	for _, tt := range tests {
		cfg := *base
		tt.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestLoad_DefaultsShareCollectorValues(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scan.RSIPeriod != calculator.DefaultRSIPeriod || cfg.Scan.Workers != collector.DefaultWorkers {
		t.Errorf("unexpected defaults period=%d workers=%d", cfg.Scan.RSIPeriod, cfg.Scan.Workers)
	}
	if len(cfg.Scan.Watchlist) != len(collector.PopularSymbols) {
		t.Fatalf("expected watchlist %v, got %v", collector.PopularSymbols, cfg.Scan.Watchlist)
	}
	for i, sym := range collector.PopularSymbols {
		if cfg.Scan.Watchlist[i] != sym {
			t.Errorf("index %d: expected %s, got %s", i, sym, cfg.Scan.Watchlist[i])
		}
	}

	cfg.Scan.Watchlist[0] = "DOGE"
	if collector.PopularSymbols[0] != "BTC" {
		t.Errorf("default watchlist must be a copy, popular list now starts with %s", collector.PopularSymbols[0])
	}
}
