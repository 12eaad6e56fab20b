package datasource

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-chart/internal/logger"
	"github.com/rxtech-lab/argo-chart/internal/types"
	"github.com/rxtech-lab/argo-chart/pkg/errors"
	"go.uber.org/zap"
)

const (
	candleView = "market_data"
	tradeView  = "trades"
)

type DuckDBDataSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDataSource opens a DuckDB database at path. ":memory:" keeps everything
// in memory; the data files are attached later with LoadCandles and LoadTrades.
func NewDataSource(path string, logger *logger.Logger) (DataSource, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	_, err = db.Exec(`SET threads=4;`)
	if err != nil {
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to configure duckdb", err)
	}

	return &DuckDBDataSource{
		db:     db,
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// DetectFormat returns the format of a data file from its extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return FormatParquet, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported data file '%s', expected .parquet or .csv", path)
	}
}

// LoadCandles implements CandleSource.
func (d *DuckDBDataSource) LoadCandles(path string) error {
	return d.createView(candleView, path)
}

// LoadTrades implements TradeSource.
func (d *DuckDBDataSource) LoadTrades(path string) error {
	return d.createView(tradeView, path)
}

// createView replaces view with one reading the file. Squirrel does not
// build CREATE VIEW, so this is raw SQL.
func (d *DuckDBDataSource) createView(view string, path string) error {
	d.logger.Debug("Loading data file", zap.String("view", view), zap.String("path", path))

	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	reader := "read_parquet"
	if format == FormatCSV {
		reader = "read_csv_auto"
	}

	_, err = d.db.Exec(fmt.Sprintf(`DROP VIEW IF EXISTS %s;`, view))
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to drop existing view", err)
	}

	query := fmt.Sprintf(`
		CREATE VIEW %s AS
		SELECT * FROM %s('%s');
	`, view, reader, strings.ReplaceAll(path, "'", "''"))

	_, err = d.db.Exec(query)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to load %s", path)
	}

	return nil
}

// Candles implements CandleSource.
func (d *DuckDBDataSource) Candles(query CandleQuery) ([]types.MarketData, error) {
	conditions := squirrel.And{}

	if query.Symbol.IsSome() {
		conditions = append(conditions, squirrel.Eq{"symbol": query.Symbol.Unwrap()})
	}

	if query.Start.IsSome() {
		conditions = append(conditions, squirrel.GtOrEq{"CAST(time AS TIMESTAMP)": query.Start.Unwrap().UTC()})
	}

	if query.End.IsSome() {
		conditions = append(conditions, squirrel.LtOrEq{"CAST(time AS TIMESTAMP)": query.End.Unwrap().UTC()})
	}

	builder := d.sq.
		Select(
			"CAST(time AS TIMESTAMP)",
			"CAST(symbol AS VARCHAR)",
			"CAST(open AS DOUBLE)",
			"CAST(high AS DOUBLE)",
			"CAST(low AS DOUBLE)",
			"CAST(close AS DOUBLE)",
			"CAST(volume AS DOUBLE)",
		).
		From(candleView).
		Where(conditions)

	// the newest candles are selected first and put back in order below
	if query.Limit > 0 {
		builder = builder.OrderBy("time DESC").Limit(query.Limit)
	} else {
		builder = builder.OrderBy("time ASC")
	}

	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := d.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query candles", err)
	}
	defer rows.Close()

	result := make([]types.MarketData, 0, 256)

	for rows.Next() {
		var (
			timestamp                      time.Time
			open, high, low, close, volume float64
			symbol                         string
		)

		err := rows.Scan(&timestamp, &symbol, &open, &high, &low, &close, &volume)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan candle", err)
		}

		result = append(result, types.MarketData{
			Id:     "",
			Symbol: symbol,
			Time:   timestamp,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: volume,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating candles", err)
	}

	if query.Limit > 0 {
		for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
			result[i], result[j] = result[j], result[i]
		}
	}

	d.logger.Debug("Read candles", zap.Int("count", len(result)))

	return result, nil
}

// Symbols implements CandleSource.
func (d *DuckDBDataSource) Symbols() ([]string, error) {
	rows, err := d.db.Query(fmt.Sprintf("SELECT DISTINCT CAST(symbol AS VARCHAR) AS symbol FROM %s ORDER BY symbol", candleView))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to get symbols", err)
	}
	defer rows.Close()

	var symbols []string

	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan symbol", err)
		}

		symbols = append(symbols, symbol)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating symbols", err)
	}

	return symbols, nil
}

// Trades implements TradeSource.
func (d *DuckDBDataSource) Trades(query TradeQuery) ([]types.Trade, error) {
	conditions := squirrel.And{}

	if query.Symbol.IsSome() {
		symbol := query.Symbol.Unwrap()
		conditions = append(conditions, squirrel.Or{
			squirrel.Eq{"maker_symbol": symbol},
			squirrel.Eq{"taker_symbol": symbol},
		})
	}

	if query.Since.IsSome() {
		conditions = append(conditions, squirrel.Gt{`CAST("timestamp" AS BIGINT)`: query.Since.Unwrap().Unix()})
	}

	sqlQuery, args, err := d.sq.
		Select(
			`CAST("timestamp" AS BIGINT)`,
			"CAST(maker_symbol AS VARCHAR)",
			"CAST(taker_symbol AS VARCHAR)",
			"CAST(maker_amount AS DOUBLE)",
			"CAST(taker_amount AS DOUBLE)",
		).
		From(tradeView).
		Where(conditions).
		OrderBy(`"timestamp" ASC`).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := d.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query trades", err)
	}
	defer rows.Close()

	result := make([]types.Trade, 0, 256)

	for rows.Next() {
		var trade types.Trade

		err := rows.Scan(&trade.Timestamp, &trade.MakerSymbol, &trade.TakerSymbol, &trade.MakerAmount, &trade.TakerAmount)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan trade", err)
		}

		result = append(result, trade)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating trades", err)
	}

	d.logger.Debug("Read trades", zap.Int("count", len(result)))

	return result, nil
}

// CountTrades implements TradeSource.
func (d *DuckDBDataSource) CountTrades() (int, error) {
	var count int

	err := d.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", tradeView)).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count trades", err)
	}

	return count, nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	if d.db != nil {
		return d.db.Close()
	}

	return nil
}
