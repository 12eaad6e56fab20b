package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-chart/internal/types"
)

// DataGenerator generates synthetic candles and trades for tests, the CLI
// demo data and the terminal preview.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// CandleConfig configures how candles are generated.
type CandleConfig struct {
	Symbol    string
	StartTime time.Time
	// Interval is the duration between each candle
	Interval     time.Duration
	Count        int
	InitialPrice float64
	// Volatility controls price movement per candle (0.01 = 1%)
	Volatility float64
	// Trend is the drift over the whole series (-0.01 to 0.01 for bearish to bullish)
	Trend      float64
	VolumeBase float64
	// VolumeVariance is the variance in volume (0.0 to 1.0)
	VolumeVariance float64
}

// DefaultCandleConfig returns one hundred ETHUSDC minute candles.
func DefaultCandleConfig() CandleConfig {
	return CandleConfig{
		Symbol:         "ETHUSDC",
		StartTime:      time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		Interval:       time.Minute,
		Count:          100,
		InitialPrice:   2200.0,
		Volatility:     0.002,
		Trend:          0.0,
		VolumeBase:     150,
		VolumeVariance: 0.3,
	}
}

// GenerateCandles creates candles following a geometric Brownian motion.
func (g *DataGenerator) GenerateCandles(config CandleConfig) []types.MarketData {
	data := make([]types.MarketData, config.Count)
	currentPrice := config.InitialPrice
	currentTime := config.StartTime

	for i := 0; i < config.Count; i++ {
		open := currentPrice

		priceChange := config.Volatility * g.normal()
		drift := config.Trend / float64(config.Count)

		close := open * (1 + priceChange + drift)
		if close <= 0 {
			close = open * 0.99
		}

		highExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)
		lowExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)

		high := math.Max(open, close) + highExtension
		low := math.Min(open, close) - lowExtension
		if low <= 0 {
			low = math.Min(open, close) * 0.99
		}

		volume := config.VolumeBase * (1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance)
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		data[i] = types.MarketData{
			Id:     "",
			Symbol: config.Symbol,
			Time:   currentTime,
			Open:   roundToDecimals(open, 4),
			High:   roundToDecimals(high, 4),
			Low:    roundToDecimals(low, 4),
			Close:  roundToDecimals(close, 4),
			Volume: roundToDecimals(volume, 2),
		}

		currentPrice = close
		currentTime = currentTime.Add(config.Interval)
	}

	return data
}

// TradeConfig configures how trades are generated.
type TradeConfig struct {
	// Base and Quote are the two assets. Each trade puts Base on a random side.
	Base  string
	Quote string
	// End is the time of the newest trade; trades spread back over Span.
	End   time.Time
	Span  time.Duration
	Count int
	// Price is the quote amount per unit of base.
	Price float64
	// AmountBase is the average base amount per trade.
	AmountBase float64
}

// DefaultTradeConfig returns fifty ETH/DAI trades over the last two days.
func DefaultTradeConfig(end time.Time) TradeConfig {
	return TradeConfig{
		Base:       "ETH",
		Quote:      "DAI",
		End:        end,
		Span:       48 * time.Hour,
		Count:      50,
		Price:      2200,
		AmountBase: 1.5,
	}
}

// GenerateTrades creates trades ordered by timestamp, oldest first.
func (g *DataGenerator) GenerateTrades(config TradeConfig) []types.Trade {
	trades := make([]types.Trade, config.Count)
	if config.Count == 0 {
		return trades
	}

	step := config.Span / time.Duration(config.Count)
	start := config.End.Add(-step * time.Duration(config.Count-1))

	for i := 0; i < config.Count; i++ {
		amount := roundToDecimals(config.AmountBase*(0.5+g.rng.Float64()), 4)
		quoteAmount := roundToDecimals(amount*config.Price*(1+0.01*g.normal()), 2)

		trade := types.Trade{
			Timestamp:   start.Add(step * time.Duration(i)).Unix(),
			MakerSymbol: config.Base,
			TakerSymbol: config.Quote,
			MakerAmount: amount,
			TakerAmount: quoteAmount,
		}

		if g.rng.Intn(2) == 1 {
			trade.MakerSymbol, trade.TakerSymbol = config.Quote, config.Base
			trade.MakerAmount, trade.TakerAmount = quoteAmount, amount
		}

		trades[i] = trade
	}

	return trades
}

// normal draws from the standard normal distribution with the Box-Muller transform.
func (g *DataGenerator) normal() float64 {
	u1 := g.rng.Float64()
	u2 := g.rng.Float64()

	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
