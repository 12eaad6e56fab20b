// Package datasource loads candles and trades from parquet or CSV files
// through an embedded DuckDB database.
package datasource

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-chart/internal/types"
)

// Format is the on-disk format of a data file.
type Format string

const (
	FormatParquet Format = "parquet"
	FormatCSV     Format = "csv"
)

// CandleQuery filters candles. Unset fields do not filter.
type CandleQuery struct {
	Symbol optional.Option[string]
	Start  optional.Option[time.Time]
	End    optional.Option[time.Time]
	// Limit keeps the most recent candles only. Zero keeps all.
	Limit uint64
}

// TradeQuery filters trades. Unset fields do not filter.
type TradeQuery struct {
	// Symbol keeps trades with the symbol on either side.
	Symbol optional.Option[string]
	// Since keeps trades strictly newer than this time.
	Since optional.Option[time.Time]
}

// CandleSource provides candles for the chart hosts.
type CandleSource interface {
	// LoadCandles registers a parquet or CSV file of candles.
	LoadCandles(path string) error
	// Candles returns the matching candles in chronological order.
	Candles(query CandleQuery) ([]types.MarketData, error)
	// Symbols returns the distinct candle symbols.
	Symbols() ([]string, error)
}

// TradeSource provides trades for volume aggregation.
type TradeSource interface {
	// LoadTrades registers a parquet or CSV file of trades.
	LoadTrades(path string) error
	// Trades returns the matching trades ordered by timestamp.
	Trades(query TradeQuery) ([]types.Trade, error)
	// CountTrades returns the number of loaded trades.
	CountTrades() (int, error)
}

// DataSource is a CandleSource and TradeSource backed by one database.
type DataSource interface {
	CandleSource
	TradeSource
	// Close closes the data source and releases any resources.
	Close() error
}
