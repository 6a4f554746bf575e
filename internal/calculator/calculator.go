// Package calculator implements the RSI and MACD indicator math over daily
// closing prices. Every function is pure and safe for concurrent use.
package calculator

import (
	"errors"
	"math"
)

// Default indicator periods.
const (
	DefaultRSIPeriod  = 14
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
)

var (
	// ErrInvalidPeriod is returned for a non-positive period.
	ErrInvalidPeriod = errors.New("period must be positive")
	// ErrInsufficientData is returned when the series is shorter than the indicator needs.
	ErrInsufficientData = errors.New("not enough data")
	// ErrNonFinite is returned when the input produced a NaN or infinite value.
	ErrNonFinite = errors.New("non-finite indicator value")
)

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
