package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"CryptoSentinel/internal/model"
)

// SQLiteRecorder persists scan history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scans (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			source       TEXT,
			symbols      TEXT,
			symbol_count INTEGER,
			result_count INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scans_ts ON scans(timestamp)`,

		`CREATE TABLE IF NOT EXISTS scan_results (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			scan_id         INTEGER NOT NULL REFERENCES scans(id),
			position        INTEGER,
			captured_at     INTEGER NOT NULL,
			symbol          TEXT NOT NULL,
			coin_id         TEXT,
			price           REAL,
			change_24h      REAL,
			rsi             REAL,
			rsi_signal      TEXT,
			macd_line       REAL,
			signal_line     REAL,
			histogram       REAL,
			macd_signal     TEXT,
			combined_signal TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_symbol ON scan_results(symbol, captured_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordScan(rec *ScanRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	at := rec.At
	if at.IsZero() {
		at = time.Now()
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO scans (timestamp, source, symbols, symbol_count, result_count)
		VALUES (?,?,?,?,?)`,
		at.Unix(), rec.Source, strings.Join(rec.Symbols, ","), len(rec.Symbols), len(rec.Results),
	)
	if err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}
	scanID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("scan id: %w", err)
	}

	for i, a := range rec.Results {
		captured := a.CapturedAt
		if captured.IsZero() {
			captured = at
		}
		if _, err := tx.Exec(`INSERT INTO scan_results
			(scan_id, position, captured_at, symbol, coin_id, price, change_24h,
			 rsi, rsi_signal, macd_line, signal_line, histogram, macd_signal, combined_signal)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			scanID, i+1, captured.Unix(), a.Symbol, a.CoinID, a.Price, a.Change24h,
			a.RSI, string(a.RSISignal), a.MACDLine, a.SignalLine, a.Histogram,
			string(a.MACDSignal), string(a.CombinedSignal),
		); err != nil {
			return fmt.Errorf("insert result %s: %w", a.Symbol, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecentResults(symbol string, limit int) ([]model.AnalysisResult, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.Query(`SELECT captured_at, symbol, coin_id, price, change_24h,
			rsi, rsi_signal, macd_line, signal_line, histogram, macd_signal, combined_signal
		FROM scan_results WHERE symbol = ?
		ORDER BY captured_at DESC, id DESC LIMIT ?`, strings.ToUpper(symbol), limit)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []model.AnalysisResult
	for rows.Next() {
		var (
			a        model.AnalysisResult
			captured int64
			rsiSig   string
			macdSig  string
			combined string
		)
		if err := rows.Scan(&captured, &a.Symbol, &a.CoinID, &a.Price, &a.Change24h,
			&a.RSI, &rsiSig, &a.MACDLine, &a.SignalLine, &a.Histogram, &macdSig, &combined); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		a.RSISignal = model.RSISignal(rsiSig)
		a.MACDSignal = model.MACDSignal(macdSig)
		a.CombinedSignal = model.CombinedSignal(combined)
		a.CapturedAt = time.Unix(captured, 0)
		a.Timestamp = a.CapturedAt.Format(model.TimestampLayout)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
