package model

// Quote is the current price snapshot of a coin.
type Quote struct {
	PriceUSD  float64
	Change24h float64 // percent
}

// Coin is one entry of the data provider's coin list.
type Coin struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}
