package types

import "time"

// MarketData is one OHLCV candle of a candlestick chart.
type MarketData struct {
	Id     string    `json:"id,omitempty" csv:"id"`
	Symbol string    `json:"symbol" csv:"symbol"`
	Time   time.Time `json:"time" csv:"time"`
	Open   float64   `json:"open" csv:"open"`
	High   float64   `json:"high" csv:"high"`
	Low    float64   `json:"low" csv:"low"`
	Close  float64   `json:"close" csv:"close"`
	Volume float64   `json:"volume" csv:"volume"`
}

// IsBullish reports whether the candle closed at or above its open.
func (m MarketData) IsBullish() bool {
	return m.Close >= m.Open
}
