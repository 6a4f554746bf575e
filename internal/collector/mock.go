package collector

import (
	"context"
	"fmt"
	"math"
	"strings"

	"CryptoSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Unknown coins get a generated wave series.
type MockFetcher struct {
	CoinIDs   map[string]string    // symbol -> coin id; nil maps every symbol to its lower case
	History   map[string][]float64 // coin id -> closes
	Quotes    map[string]model.Quote
	Err       error            // returned by every call when set
	FailCoins map[string]error // coin id -> error for that coin only
	BasePrice float64
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) ResolveCoinID(_ context.Context, symbol string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.CoinIDs == nil {
		return strings.ToLower(symbol), nil
	}
	id, ok := m.CoinIDs[symbol]
	if !ok {
		return "", fmt.Errorf("%w: unknown symbol %s", ErrUnavailable, symbol)
	}
	return id, nil
}

func (m *MockFetcher) FetchHistory(_ context.Context, coinID string, days int) ([]float64, error) {
	if err := m.fail(coinID); err != nil {
		return nil, err
	}
	if closes, ok := m.History[coinID]; ok {
		return closes, nil
	}
	return generateMockCloses(m.base(), days), nil
}

func (m *MockFetcher) FetchQuote(_ context.Context, coinID string) (*model.Quote, error) {
	if err := m.fail(coinID); err != nil {
		return nil, err
	}
	if q, ok := m.Quotes[coinID]; ok {
		return &q, nil
	}
	if closes, ok := m.History[coinID]; ok && len(closes) > 0 {
		return &model.Quote{PriceUSD: closes[len(closes)-1]}, nil
	}
	return &model.Quote{PriceUSD: m.base()}, nil
}

func (m *MockFetcher) fail(coinID string) error {
	if m.Err != nil {
		return m.Err
	}
	return m.FailCoins[coinID]
}

func (m *MockFetcher) base() float64 {
	if m.BasePrice > 0 {
		return m.BasePrice
	}
	return 100
}

func generateMockCloses(basePrice float64, count int) []float64 {
	closes := make([]float64, count)
	for i := range closes {
		closes[i] = basePrice * (1 + 0.1*math.Sin(float64(i)/3.0) + float64(i)*0.005)
	}
	return closes
}
