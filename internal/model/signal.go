package model

import "time"

// TimestampLayout is the capture time format used in results and reports.
const TimestampLayout = "2006-01-02 15:04:05"

// RSISignal classifies an RSI value.
type RSISignal string

const (
	RSIOverbought RSISignal = "Overbought"
	RSIOversold   RSISignal = "Oversold"
	RSINeutral    RSISignal = "Neutral"
)

// MACDSignal classifies a MACD reading.
type MACDSignal string

const (
	MACDBullish MACDSignal = "Bullish"
	MACDBearish MACDSignal = "Bearish"
	MACDNeutral MACDSignal = "Neutral"
)

// CombinedSignal is the final per-asset trading signal.
type CombinedSignal string

const (
	SignalStrongBuy  CombinedSignal = "Strong Buy"
	SignalBuy        CombinedSignal = "Buy"
	SignalHold       CombinedSignal = "Hold"
	SignalSell       CombinedSignal = "Sell"
	SignalStrongSell CombinedSignal = "Strong Sell"
)

// MACDResult holds the unrounded MACD line, signal line and histogram.
type MACDResult struct {
	MACDLine   float64
	SignalLine float64
	Histogram  float64
}

// AnalysisResult is the outcome of analyzing one asset during a scan.
type AnalysisResult struct {
	Symbol         string         `json:"symbol"`
	CoinID         string         `json:"coin_id"`
	Price          float64        `json:"price"`
	Change24h      float64        `json:"change_24h"`
	RSI            float64        `json:"rsi"`
	RSISignal      RSISignal      `json:"rsi_signal"`
	MACDLine       float64        `json:"macd_line"`
	SignalLine     float64        `json:"signal_line"`
	Histogram      float64        `json:"histogram"`
	MACDSignal     MACDSignal     `json:"macd_signal"`
	CombinedSignal CombinedSignal `json:"combined_signal"`
	Timestamp      string         `json:"timestamp"`
	CapturedAt     time.Time      `json:"-"`
}
