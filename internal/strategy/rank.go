package strategy

import (
	"sort"

	"CryptoSentinel/internal/model"
)

// signalPriority orders combined signals from most to least actionable.
var signalPriority = map[model.CombinedSignal]int{
	model.SignalStrongBuy:  1,
	model.SignalBuy:        2,
	model.SignalHold:       3,
	model.SignalSell:       4,
	model.SignalStrongSell: 5,
}

const unknownPriority = 6

// Priority returns the sort bucket of a combined signal.
func Priority(s model.CombinedSignal) int {
	if p, ok := signalPriority[s]; ok {
		return p
	}
	return unknownPriority
}

// Rank returns a copy of results stably sorted by signal priority, then RSI
// ascending.
func Rank(results []model.AnalysisResult) []model.AnalysisResult {
	out := make([]model.AnalysisResult, len(results))
	copy(out, results)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := Priority(out[i].CombinedSignal), Priority(out[j].CombinedSignal)
		if pi != pj {
			return pi < pj
		}
		return out[i].RSI < out[j].RSI
	})
	return out
}
