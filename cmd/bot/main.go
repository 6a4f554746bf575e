package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CryptoSentinel/internal/cache"
	"CryptoSentinel/internal/collector"
	"CryptoSentinel/internal/config"
	"CryptoSentinel/internal/notifier"
	"CryptoSentinel/internal/recorder"
	"CryptoSentinel/internal/scheduler"
	"CryptoSentinel/internal/server"
)

type coinCache interface {
	collector.CoinCache
	Close() error
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] CryptoSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init coin list cache
	var cc coinCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Printf("[WARN] init redis cache failed, using memory: %v", err)
			cc = cache.NewMemoryCache()
		} else {
			cc = rc
		}
	} else {
		cc = cache.NewMemoryCache()
	}
	defer cc.Close()

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.CoinGecko.Mock {
		fetcher = &collector.MockFetcher{}
	} else {
		fetcher = collector.NewCoinGeckoFetcher(cfg.CoinGecko.BaseURL, cfg.CoinGecko.APIKey, cfg.Proxy, cc, cfg.Redis.CoinListTTL)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init scanner
	sc := collector.NewScanner(fetcher, collector.LogSink{})
	sc.HistoryDays = cfg.CoinGecko.HistoryDays
	sc.Workers = cfg.Scan.Workers

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	var n scheduler.Notifier
	if tn.Enabled() {
		n = tn
	} else {
		log.Println("[WARN] telegram not configured, reports will only be logged")
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, sc, n, rec, cfg.Scan.Watchlist, cfg.Scan.RSIPeriod)
	if err := sched.Register(cfg.Schedule.ScanCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	if tn.Enabled() {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Start HTTP API
	h := server.New(sc, rec, fetcher.Name(), collector.PopularSymbols)
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           h.NewEngine(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("[INFO] HTTP API listening on %s", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[ERROR] http server: %v", err)
			cancel()
		}
	}()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing watchlist scan now")
		go sched.RunScanNow()
	}

	log.Println("[INFO] CryptoSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case <-ctx.Done():
		log.Println("[INFO] context cancelled, stopping...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] http shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] CryptoSentinel stopped")
}
