package tooltip

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-chart/internal/types"
	"github.com/shopspring/decimal"
)

// Candle row colors.
const (
	BullishColor = "#26A69A"
	BearishColor = "#EF5350"
)

// CandleTimeLayout formats the candle time in the tooltip header.
const CandleTimeLayout = "2006-01-02 15:04"

// CandleXAccessor positions a candle by its time in epoch seconds. Candles
// without a time have no x value.
func CandleXAccessor(item types.MarketData) optional.Option[float64] {
	if item.Time.IsZero() {
		return optional.None[float64]()
	}

	return optional.Some(float64(item.Time.Unix()))
}

// CandleDisplayX formats the candle time for display.
func CandleDisplayX(item types.MarketData) string {
	return item.Time.UTC().Format(CandleTimeLayout)
}

// CandleContent shows the OHLCV values of a candle. The price rows take the
// candle direction color.
func CandleContent(item types.MarketData, displayX func(types.MarketData) string) types.TooltipContent {
	if displayX == nil {
		displayX = CandleDisplayX
	}

	stroke := BearishColor
	if item.IsBullish() {
		stroke = BullishColor
	}

	return types.TooltipContent{
		X: displayX(item),
		Y: []types.TooltipRow{
			{Label: "Open", Value: price(item.Open), Stroke: stroke},
			{Label: "High", Value: price(item.High), Stroke: stroke},
			{Label: "Low", Value: price(item.Low), Stroke: stroke},
			{Label: "Close", Value: price(item.Close), Stroke: stroke},
			{Label: "Volume", Value: decimal.NewFromFloat(item.Volume).Round(0).String(), Stroke: ""},
		},
	}
}

// CandleYAccessor anchors a candle on a price panel at its close.
func CandleYAccessor(item types.MarketData) float64 {
	return item.Close
}

// NewCandleProps returns props for a candlestick chart.
func NewCandleProps(cfg Config) Props[types.MarketData] {
	props := NewProps(CandleContent)
	props.Config = cfg
	props.YAccessor = CandleYAccessor

	return props
}

func price(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// CandleTimeScale maps the candle time range linearly onto [0, width].
func CandleTimeScale(candles []types.MarketData, width float64) types.LinearScale {
	if len(candles) == 0 {
		return types.LinearScale{Domain: [2]float64{0, 0}, Range: [2]float64{0, width}}
	}

	first := candles[0].Time
	last := candles[len(candles)-1].Time

	return types.LinearScale{
		Domain: [2]float64{unixSeconds(first), unixSeconds(last)},
		Range:  [2]float64{0, width},
	}
}

func unixSeconds(t time.Time) float64 {
	return float64(t.Unix())
}
