package collector

import (
	"context"
	"errors"

	"CryptoSentinel/internal/model"
)

// ErrUnavailable is wrapped by every Fetcher failure. Missing data and
// provider errors are not told apart.
var ErrUnavailable = errors.New("data unavailable")

// Fetcher defines the interface for fetching coin market data.
type Fetcher interface {
	// ResolveCoinID maps a ticker symbol such as "BTC" to the provider's coin id.
	ResolveCoinID(ctx context.Context, symbol string) (string, error)
	// FetchHistory returns daily closing prices, oldest first.
	FetchHistory(ctx context.Context, coinID string, days int) ([]float64, error)
	FetchQuote(ctx context.Context, coinID string) (*model.Quote, error)
	Name() string
}
