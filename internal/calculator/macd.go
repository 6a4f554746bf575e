package calculator

import (
	"fmt"

	"CryptoSentinel/internal/model"
)

// CalculateMACD computes the MACD line, its signal line and the histogram.
// Requires at least slow+signal prices.
func CalculateMACD(prices []float64, fast, slow, signal int) (model.MACDResult, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return model.MACDResult{}, ErrInvalidPeriod
	}
	if len(prices) < slow+signal {
		return model.MACDResult{}, fmt.Errorf("macd(%d,%d,%d) over %d prices: %w",
			fast, slow, signal, len(prices), ErrInsufficientData)
	}

	fastEMA, err := CalculateEMASeries(prices, fast)
	if err != nil {
		return model.MACDResult{}, fmt.Errorf("fast ema: %w", err)
	}
	slowEMA, err := CalculateEMASeries(prices, slow)
	if err != nil {
		return model.MACDResult{}, fmt.Errorf("slow ema: %w", err)
	}

	// Align both series on their most recent points.
	n := min(len(fastEMA), len(slowEMA))
	fastEMA = fastEMA[len(fastEMA)-n:]
	slowEMA = slowEMA[len(slowEMA)-n:]

	macdValues := make([]float64, n)
	for i := range macdValues {
		macdValues[i] = fastEMA[i] - slowEMA[i]
	}
	macdLine := macdValues[n-1]

	signalLine, err := CalculateEMA(macdValues, signal)
	if err != nil {
		return model.MACDResult{}, fmt.Errorf("signal line: %w", err)
	}

	return model.MACDResult{
		MACDLine:   macdLine,
		SignalLine: signalLine,
		Histogram:  macdLine - signalLine,
	}, nil
}
