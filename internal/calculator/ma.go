package calculator

import "fmt"

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrInvalidPeriod
	}
	if len(prices) < period {
		return 0, fmt.Errorf("sma(%d) over %d prices: %w", period, len(prices), ErrInsufficientData)
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	sma := sum / float64(period)
	if !finite(sma) {
		return 0, ErrNonFinite
	}
	return sma, nil
}

// CalculateEMA folds values into a single exponential moving average seeded
// with the first element. It smooths the MACD line into the signal line.
func CalculateEMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrInvalidPeriod
	}
	if len(values) < period {
		return 0, fmt.Errorf("ema(%d) over %d values: %w", period, len(values), ErrInsufficientData)
	}
	k := 2.0 / float64(period+1)
	ema := values[0]
	for _, v := range values[1:] {
		ema = v*k + ema*(1-k)
	}
	if !finite(ema) {
		return 0, ErrNonFinite
	}
	return ema, nil
}

// CalculateEMASeries returns the EMA of prices at every point from index
// period-1 onward. The first value is the SMA of prices[:period], so the
// result has len(prices)-period+1 elements.
func CalculateEMASeries(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, ErrInvalidPeriod
	}
	if len(prices) < period {
		return nil, fmt.Errorf("ema series(%d) over %d prices: %w", period, len(prices), ErrInsufficientData)
	}
	k := 2.0 / float64(period+1)

	seed := 0.0
	for _, p := range prices[:period] {
		seed += p
	}
	seed /= float64(period)

	out := make([]float64, 1, len(prices)-period+1)
	out[0] = seed
	for _, p := range prices[period:] {
		out = append(out, p*k+out[len(out)-1]*(1-k))
	}
	if !finite(out[len(out)-1]) {
		return nil, ErrNonFinite
	}
	return out, nil
}
