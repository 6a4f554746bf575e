package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"CryptoSentinel/internal/model"
)

// NoDataMessage is shown when a scan produced no results.
const NoDataMessage = "No data found for the provided symbols. Please check symbol names."

var signalIcons = map[model.CombinedSignal]string{
	model.SignalStrongBuy:  "🟢🟢",
	model.SignalBuy:        "🟢",
	model.SignalHold:       "⚪",
	model.SignalSell:       "🔴",
	model.SignalStrongSell: "🔴🔴",
}

// FormatScanReport formats ranked scan results into a Telegram message.
func FormatScanReport(title string, results []model.AnalysisResult, at time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n\n", html.EscapeString(title), at.Format("2006-01-02 15:04")))
	if len(results) == 0 {
		b.WriteString(NoDataMessage)
		return b.String()
	}

	for i, r := range results {
		b.WriteString(fmt.Sprintf("%d. %s <b>%s</b> %s\n", i+1, signalIcons[r.CombinedSignal],
			html.EscapeString(r.Symbol), r.CombinedSignal))
		b.WriteString(fmt.Sprintf("   Price: $%s (%+.2f%%)\n", formatPrice(r.Price), r.Change24h))
		b.WriteString(fmt.Sprintf("   RSI: %.2f (%s) | MACD: %s, hist %+.6f\n", r.RSI, r.RSISignal, r.MACDSignal, r.Histogram))
	}
	return b.String()
}

// FormatHistory formats recorded results of one symbol, newest first.
func FormatHistory(symbol string, results []model.AnalysisResult) string {
	if len(results) == 0 {
		return fmt.Sprintf("No recorded history for %s", html.EscapeString(symbol))
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🕘 <b>%s signal history</b>\n\n", html.EscapeString(symbol)))
	for _, r := range results {
		b.WriteString(fmt.Sprintf("%s  %s  RSI %.2f  $%s\n", r.Timestamp, r.CombinedSignal, r.RSI, formatPrice(r.Price)))
	}
	return b.String()
}

func formatPrice(p float64) string {
	switch {
	case p >= 1000:
		return fmt.Sprintf("%.0f", p)
	case p >= 1:
		return fmt.Sprintf("%.2f", p)
	default:
		return fmt.Sprintf("%.6f", p)
	}
}
