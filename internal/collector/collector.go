package collector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"CryptoSentinel/internal/calculator"
	"CryptoSentinel/internal/model"
	"CryptoSentinel/internal/strategy"
)

const (
	// MinPricePoints is the shortest history a full analysis accepts.
	MinPricePoints = 30
	// DefaultHistoryDays is how many daily closes are requested per coin.
	DefaultHistoryDays = 100
	// DefaultWorkers bounds how many symbols are analyzed at once.
	DefaultWorkers = 4
)

// PopularSymbols is the default watchlist and the list behind /popular.
var PopularSymbols = []string{"BTC", "ETH", "LINK", "XRP", "SOL"}

// ErrInvalidPeriod is returned by Scan for an unusable RSI period.
var ErrInvalidPeriod = errors.New("rsi period must be at least 1")

// Outcome is the result of analyzing one asset: exactly one of Result and
// Skip is set.
type Outcome struct {
	Result *model.AnalysisResult
	Skip   *Event
}

// OK reports whether the asset produced a result.
func (o Outcome) OK() bool { return o.Result != nil }

// Scanner orchestrates data fetching, indicator computation and ranking.
type Scanner struct {
	Fetcher     Fetcher
	Sink        EventSink
	HistoryDays int
	Workers     int
	Now         func() time.Time
}

// NewScanner creates a Scanner. A nil sink logs events.
func NewScanner(fetcher Fetcher, sink EventSink) *Scanner {
	if sink == nil {
		sink = LogSink{}
	}
	return &Scanner{
		Fetcher:     fetcher,
		Sink:        sink,
		HistoryDays: DefaultHistoryDays,
		Workers:     DefaultWorkers,
		Now:         time.Now,
	}
}

// Scan analyzes every symbol independently and returns the successful results
// ranked by signal strength, then RSI. A failing symbol never fails the scan;
// only an invalid period or a cancelled context does.
func (s *Scanner) Scan(ctx context.Context, symbols []string, rsiPeriod int) ([]model.AnalysisResult, error) {
	if rsiPeriod < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPeriod, rsiPeriod)
	}
	symbols = NormalizeSymbols(symbols)
	outcomes := make([]Outcome, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.Workers, 1))
	for i, sym := range symbols {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = s.Analyze(gctx, sym, rsiPeriod)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan aborted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan aborted: %w", err)
	}

	results := make([]model.AnalysisResult, 0, len(outcomes))
	for _, o := range outcomes {
		if o.OK() {
			results = append(results, *o.Result)
		}
	}
	log.Printf("[INFO] scan finished: %d/%d symbols analyzed via %s", len(results), len(symbols), s.Fetcher.Name())
	return strategy.Rank(results), nil
}

// Analyze runs the full analysis for one symbol. Every skip is also sent to
// the event sink.
func (s *Scanner) Analyze(ctx context.Context, symbol string, rsiPeriod int) (out Outcome) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	defer func() {
		if r := recover(); r != nil {
			out = s.skip(LevelError, KindComputationError, symbol, "analysis panicked", fmt.Errorf("%v", r))
		}
	}()

	coinID, err := s.Fetcher.ResolveCoinID(ctx, symbol)
	if err != nil {
		return s.skip(LevelWarn, KindUnresolvableSymbol, symbol, "could not find coin id", err)
	}

	days := s.HistoryDays
	if days <= 0 {
		days = DefaultHistoryDays
	}
	prices, err := s.Fetcher.FetchHistory(ctx, coinID, days)
	if err != nil {
		return s.skip(LevelWarn, KindProviderUnavailable, symbol, "could not get price history", err)
	}
	if len(prices) < MinPricePoints {
		return s.skip(LevelWarn, KindInsufficientData, symbol,
			fmt.Sprintf("insufficient price data: %d points, need %d", len(prices), MinPricePoints), nil)
	}

	quote, err := s.Fetcher.FetchQuote(ctx, coinID)
	if err != nil {
		return s.skip(LevelWarn, KindProviderUnavailable, symbol, "could not get current price", err)
	}

	rsi, err := calculator.CalculateRSI(prices, rsiPeriod)
	if err != nil {
		return s.indicatorSkip(symbol, "rsi", err)
	}
	macd, err := calculator.CalculateMACD(prices,
		calculator.DefaultMACDFast, calculator.DefaultMACDSlow, calculator.DefaultMACDSignal)
	if err != nil {
		return s.indicatorSkip(symbol, "macd", err)
	}

	rsiSig, macdSig, combined := strategy.Classify(rsi, macd)
	now := s.now()
	return Outcome{Result: &model.AnalysisResult{
		Symbol:         symbol,
		CoinID:         coinID,
		Price:          quote.PriceUSD,
		Change24h:      quote.Change24h,
		RSI:            round(rsi, 2),
		RSISignal:      rsiSig,
		MACDLine:       round(macd.MACDLine, 6),
		SignalLine:     round(macd.SignalLine, 6),
		Histogram:      round(macd.Histogram, 6),
		MACDSignal:     macdSig,
		CombinedSignal: combined,
		Timestamp:      now.Format(model.TimestampLayout),
		CapturedAt:     now,
	}}
}

func (s *Scanner) indicatorSkip(symbol, indicator string, err error) Outcome {
	if errors.Is(err, calculator.ErrInsufficientData) {
		return s.skip(LevelWarn, KindInsufficientData, symbol, "could not calculate "+indicator, err)
	}
	return s.skip(LevelError, KindComputationError, symbol, "could not calculate "+indicator, err)
}

func (s *Scanner) skip(level Level, kind EventKind, symbol, reason string, err error) Outcome {
	evt := Event{Level: level, Kind: kind, Symbol: symbol, Reason: reason, Err: err}
	if s.Sink != nil {
		s.Sink.Emit(evt)
	}
	return Outcome{Skip: &evt}
}

func (s *Scanner) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// round rounds from the exact binary value with ties to even, so 2.675
// (stored as 2.67499...) gives 2.67 and 3.125 gives 3.12.
func round(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// NormalizeSymbols trims and upper-cases symbols, dropping empties and
// duplicates while keeping the first-seen order.
func NormalizeSymbols(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// ParseSymbols splits a comma-separated symbol list.
func ParseSymbols(raw string) []string {
	return NormalizeSymbols(strings.Split(raw, ","))
}
