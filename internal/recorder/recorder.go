package recorder

import (
	"time"

	"CryptoSentinel/internal/model"
)

// ScanRecord holds one completed scan for the history tables.
type ScanRecord struct {
	Source  string // "schedule", "api" or "telegram"
	Symbols []string
	Results []model.AnalysisResult // ranked
	At      time.Time
}

// Recorder persists scan history for later review.
type Recorder interface {
	RecordScan(rec *ScanRecord) error
	// RecentResults returns the latest recorded results for a symbol, newest first.
	RecentResults(symbol string, limit int) ([]model.AnalysisResult, error)
	Close() error
}
