// Package stats aggregates trade volume.
package stats

import (
	"time"

	"github.com/rxtech-lab/argo-chart/internal/types"
	"github.com/shopspring/decimal"
)

// TrailingWindow is the look-back of GetVolume.
const TrailingWindow = 24 * time.Hour

// EthSymbol is the asset GetEthVolume sums.
const EthSymbol = "ETH"

// GetEthVolume returns the ETH volume traded in the 24 hours before now.
func GetEthVolume(trades []types.Trade, now time.Time) float64 {
	return GetVolume(trades, EthSymbol, now)
}

// GetVolume returns the volume of symbol traded in the 24 hours before now.
func GetVolume(trades []types.Trade, symbol string, now time.Time) float64 {
	return GetVolumeInWindow(trades, symbol, now, TrailingWindow)
}

// GetVolumeInWindow sums the amount of symbol over trades newer than
// now-window. The boundary itself is excluded.
//
// A trade counts its maker amount when symbol is the maker side and its taker
// amount otherwise. A trade with symbol on both sides counts the maker amount
// only.
func GetVolumeInWindow(trades []types.Trade, symbol string, now time.Time, window time.Duration) float64 {
	cutoff := now.Add(-window).Unix()
	total := decimal.Zero

	for _, trade := range trades {
		if trade.Timestamp <= cutoff {
			continue
		}

		if trade.MakerSymbol == symbol {
			total = total.Add(decimal.NewFromFloat(trade.MakerAmount))
		} else if trade.TakerSymbol == symbol {
			total = total.Add(decimal.NewFromFloat(trade.TakerAmount))
		}
	}

	return total.InexactFloat64()
}
