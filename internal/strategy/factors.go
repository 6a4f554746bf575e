package strategy

import "CryptoSentinel/internal/model"

// RSI thresholds. Values exactly on a threshold are Neutral.
const (
	RSIOverboughtLevel = 70.0
	RSIOversoldLevel   = 30.0
)

// RSISignalFor classifies an RSI value.
func RSISignalFor(rsi float64) model.RSISignal {
	switch {
	case rsi > RSIOverboughtLevel:
		return model.RSIOverbought
	case rsi < RSIOversoldLevel:
		return model.RSIOversold
	default:
		return model.RSINeutral
	}
}

// MACDSignalFor classifies a MACD reading. A crossed line whose histogram
// disagrees in sign is Neutral.
func MACDSignalFor(m model.MACDResult) model.MACDSignal {
	switch {
	case m.MACDLine > m.SignalLine && m.Histogram > 0:
		return model.MACDBullish
	case m.MACDLine < m.SignalLine && m.Histogram < 0:
		return model.MACDBearish
	default:
		return model.MACDNeutral
	}
}
