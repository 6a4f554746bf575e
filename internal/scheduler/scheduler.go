package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"CryptoSentinel/internal/collector"
	"CryptoSentinel/internal/model"
	"CryptoSentinel/internal/notifier"
	"CryptoSentinel/internal/recorder"

	"github.com/robfig/cron/v3"
)

// Notifier delivers formatted reports.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the watchlist scan on a cron schedule and answers chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Scanner   *collector.Scanner
	Notifier  Notifier // nil disables notifications
	Recorder  recorder.Recorder
	Watchlist []string
	RSIPeriod int
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, sc *collector.Scanner, n Notifier, rec recorder.Recorder, watchlist []string, rsiPeriod int) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Scanner:   sc,
		Notifier:  n,
		Recorder:  rec,
		Watchlist: watchlist,
		RSIPeriod: rsiPeriod,
		Ctx:       ctx,
	}
}

// Register registers the periodic watchlist scan.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes the watchlist scan immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	log.Printf("[INFO] running watchlist scan: %s", strings.Join(s.Watchlist, ","))
	results, err := s.scan(s.Ctx, "schedule", s.Watchlist, s.RSIPeriod)
	if err != nil {
		log.Printf("[ERROR] watchlist scan: %v", err)
		s.trySend(fmt.Sprintf("❌ Watchlist scan failed: %v", err))
		return
	}
	s.trySend(notifier.FormatScanReport("Watchlist scan", results, time.Now()))
}

// scan runs one scan and records it.
func (s *Scheduler) scan(ctx context.Context, source string, symbols []string, rsiPeriod int) ([]model.AnalysisResult, error) {
	symbols = collector.NormalizeSymbols(symbols)
	results, err := s.Scanner.Scan(ctx, symbols, rsiPeriod)
	if err != nil {
		return nil, err
	}
	if err := s.Recorder.RecordScan(&recorder.ScanRecord{
		Source:  source,
		Symbols: symbols,
		Results: results,
		At:      time.Now(),
	}); err != nil {
		log.Printf("[ERROR] record scan: %v", err)
	}
	return results, nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	name, args, _ := strings.Cut(strings.TrimSpace(command), " ")
	// Strip a bot mention such as /scan@MyBot.
	name, _, _ = strings.Cut(name, "@")

	switch strings.ToLower(name) {
	case "/scan":
		symbols := collector.ParseSymbols(strings.ReplaceAll(args, " ", ","))
		if len(symbols) == 0 {
			return "Please enter at least one cryptocurrency symbol, e.g. /scan BTC,ETH"
		}
		return s.commandScan(ctx, "Scan", symbols)
	case "/popular":
		return s.commandScan(ctx, "Popular coins", collector.PopularSymbols)
	case "/watchlist":
		return s.commandScan(ctx, "Watchlist scan", s.Watchlist)
	case "/history":
		symbol := strings.ToUpper(strings.TrimSpace(args))
		if symbol == "" {
			return "Usage: /history BTC"
		}
		results, err := s.Recorder.RecentResults(symbol, 10)
		if err != nil {
			log.Printf("[ERROR] load history for %s: %v", symbol, err)
			return "❌ Could not load history"
		}
		return notifier.FormatHistory(symbol, results)
	default:
		return "Available commands:\n• /scan BTC,ETH\n• /popular\n• /watchlist\n• /history BTC"
	}
}

func (s *Scheduler) commandScan(ctx context.Context, title string, symbols []string) string {
	results, err := s.scan(ctx, "telegram", symbols, s.RSIPeriod)
	if err != nil {
		log.Printf("[ERROR] command scan: %v", err)
		return "❌ An error occurred while scanning. Please try again."
	}
	return notifier.FormatScanReport(title, results, time.Now())
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		log.Printf("[INFO] notifier disabled, report:\n%s", text)
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
