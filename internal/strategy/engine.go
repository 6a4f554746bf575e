package strategy

import "CryptoSentinel/internal/model"

// Combine maps the per-indicator signals to a combined signal. Rules are
// evaluated in order and the first match wins.
func Combine(rsi model.RSISignal, macd model.MACDSignal) model.CombinedSignal {
	switch {
	case rsi == model.RSIOversold && macd == model.MACDBullish:
		return model.SignalStrongBuy
	case rsi == model.RSIOverbought && macd == model.MACDBearish:
		return model.SignalStrongSell
	case rsi == model.RSIOversold && macd != model.MACDBearish:
		return model.SignalBuy
	case rsi == model.RSIOverbought && macd != model.MACDBullish:
		return model.SignalSell
	case macd == model.MACDBullish && rsi != model.RSIOverbought:
		return model.SignalBuy
	case macd == model.MACDBearish && rsi != model.RSIOversold:
		return model.SignalSell
	default:
		return model.SignalHold
	}
}

// Classify computes every signal for one asset's indicator values.
func Classify(rsi float64, macd model.MACDResult) (model.RSISignal, model.MACDSignal, model.CombinedSignal) {
	rs := RSISignalFor(rsi)
	ms := MACDSignalFor(macd)
	return rs, ms, Combine(rs, ms)
}
