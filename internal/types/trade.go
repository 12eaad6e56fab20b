package types

import "time"

// Trade is a settled swap between two assets as reported by the exchange.
// Either side may be the asset a volume query is interested in.
type Trade struct {
	// Timestamp is the settlement time in epoch seconds.
	Timestamp   int64   `json:"timestamp" csv:"timestamp" validate:"required"`
	MakerSymbol string  `json:"makerSymbol" csv:"maker_symbol" validate:"required"`
	TakerSymbol string  `json:"takerSymbol" csv:"taker_symbol" validate:"required"`
	MakerAmount float64 `json:"makerAmount" csv:"maker_amount"`
	TakerAmount float64 `json:"takerAmount" csv:"taker_amount"`
}

// Time returns the trade timestamp as a time.Time in UTC.
func (t Trade) Time() time.Time {
	return time.Unix(t.Timestamp, 0).UTC()
}
