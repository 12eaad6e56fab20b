package datasource

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-chart/internal/logger"
	"github.com/rxtech-lab/argo-chart/internal/stats"
	"github.com/rxtech-lab/argo-chart/internal/types"
	"github.com/rxtech-lab/argo-chart/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type DuckDBDataSourceTestSuite struct {
	suite.Suite
	dataSource DataSource
	tmpDir     string
	baseTime   time.Time
}

func TestDuckDBDataSourceSuite(t *testing.T) {
	suite.Run(t, new(DuckDBDataSourceTestSuite))
}

func (suite *DuckDBDataSourceTestSuite) SetupTest() {
	suite.tmpDir = suite.T().TempDir()
	suite.baseTime = time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	ds, err := NewDataSource(":memory:", logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.dataSource = ds
}

func (suite *DuckDBDataSourceTestSuite) TearDownTest() {
	suite.NoError(suite.dataSource.Close())
}

func (suite *DuckDBDataSourceTestSuite) writeFile(name, content string) string {
	path := filepath.Join(suite.tmpDir, name)
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o600))

	return path
}

// writeCandlesParquet writes ten one-minute ETHUSDC candles starting at baseTime.
func (suite *DuckDBDataSourceTestSuite) writeCandlesParquet() string {
	path := filepath.Join(suite.tmpDir, "candles.parquet")

	db, err := sql.Open("duckdb", ":memory:")
	suite.Require().NoError(err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE market_data (
			time TIMESTAMP,
			symbol TEXT,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE
		)
	`)
	suite.Require().NoError(err)

	for i := 0; i < 10; i++ {
		_, err = db.Exec(`INSERT INTO market_data VALUES (?, ?, ?, ?, ?, ?, ?)`,
			suite.baseTime.Add(time.Duration(i)*time.Minute), "ETHUSDC",
			100.0+float64(i), 101.0+float64(i), 99.0+float64(i), 100.5+float64(i), 1000.0+float64(i*100))
		suite.Require().NoError(err)
	}

	_, err = db.Exec(`COPY market_data TO '` + path + `' (FORMAT PARQUET)`)
	suite.Require().NoError(err)

	return path
}

func (suite *DuckDBDataSourceTestSuite) tradesCSV() string {
	return suite.writeFile("trades.csv", `timestamp,maker_symbol,taker_symbol,maker_amount,taker_amount
1704186000,ETH,DAI,1.5,3300
1704189600,DAI,ETH,2200,1
1704193200,BTC,DAI,1,45000
1704196800,ETH,USDC,2,4400
`)
}

func (suite *DuckDBDataSourceTestSuite) TestDetectFormat() {
	format, err := DetectFormat("/data/candles.PARQUET")
	suite.NoError(err)
	suite.Equal(FormatParquet, format)

	format, err = DetectFormat("trades.csv")
	suite.NoError(err)
	suite.Equal(FormatCSV, format)

	_, err = DetectFormat("trades.json")
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedFormat))
}

func (suite *DuckDBDataSourceTestSuite) TestLoadMissingFile() {
	err := suite.dataSource.LoadCandles(filepath.Join(suite.tmpDir, "missing.parquet"))
	suite.True(errors.HasCode(err, errors.ErrCodeDataSourceUnavailable))
}

func (suite *DuckDBDataSourceTestSuite) TestCandlesFromParquet() {
	suite.Require().NoError(suite.dataSource.LoadCandles(suite.writeCandlesParquet()))

	candles, err := suite.dataSource.Candles(CandleQuery{})
	suite.Require().NoError(err)
	suite.Require().Len(candles, 10)
	suite.True(candles[0].Time.Equal(suite.baseTime))
	suite.Equal("ETHUSDC", candles[0].Symbol)
	suite.Equal(100.5, candles[0].Close)
	suite.Equal(1900.0, candles[9].Volume)

	symbols, err := suite.dataSource.Symbols()
	suite.NoError(err)
	suite.Equal([]string{"ETHUSDC"}, symbols)
}

func (suite *DuckDBDataSourceTestSuite) TestCandleQuery() {
	suite.Require().NoError(suite.dataSource.LoadCandles(suite.writeCandlesParquet()))

	candles, err := suite.dataSource.Candles(CandleQuery{
		Start: optional.Some(suite.baseTime.Add(2 * time.Minute)),
		End:   optional.Some(suite.baseTime.Add(4 * time.Minute)),
	})
	suite.Require().NoError(err)
	suite.Len(candles, 3)

	candles, err = suite.dataSource.Candles(CandleQuery{Limit: 3})
	suite.Require().NoError(err)
	suite.Require().Len(candles, 3)
	suite.True(candles[0].Time.Equal(suite.baseTime.Add(7*time.Minute)), "latest candles in chronological order")
	suite.True(candles[2].Time.Equal(suite.baseTime.Add(9*time.Minute)))

	candles, err = suite.dataSource.Candles(CandleQuery{Symbol: optional.Some("BTCUSDC")})
	suite.NoError(err)
	suite.Empty(candles)
}

func (suite *DuckDBDataSourceTestSuite) TestCandlesFromCSV() {
	path := suite.writeFile("candles.csv", `time,symbol,open,high,low,close,volume
2024-01-02 09:00:00,ETHUSDC,10,12,9,11,100
2024-01-02 09:01:00,ETHUSDC,11,11.5,8,8.25,250
`)
	suite.Require().NoError(suite.dataSource.LoadCandles(path))

	candles, err := suite.dataSource.Candles(CandleQuery{})
	suite.Require().NoError(err)
	suite.Require().Len(candles, 2)
	suite.Equal(8.25, candles[1].Close)
	suite.True(candles[1].Time.Equal(suite.baseTime.Add(time.Minute)))
}

func (suite *DuckDBDataSourceTestSuite) TestTradesFromCSV() {
	suite.Require().NoError(suite.dataSource.LoadTrades(suite.tradesCSV()))

	count, err := suite.dataSource.CountTrades()
	suite.NoError(err)
	suite.Equal(4, count)

	trades, err := suite.dataSource.Trades(TradeQuery{})
	suite.Require().NoError(err)
	suite.Require().Len(trades, 4)
	suite.Equal(types.Trade{Timestamp: 1704186000, MakerSymbol: "ETH", TakerSymbol: "DAI", MakerAmount: 1.5, TakerAmount: 3300}, trades[0])

	trades, err = suite.dataSource.Trades(TradeQuery{Symbol: optional.Some("ETH")})
	suite.Require().NoError(err)
	suite.Len(trades, 3)

	trades, err = suite.dataSource.Trades(TradeQuery{Since: optional.Some(time.Unix(1704189600, 0))})
	suite.Require().NoError(err)
	suite.Len(trades, 2, "since is exclusive")
}

func (suite *DuckDBDataSourceTestSuite) TestTradesFeedVolume() {
	suite.Require().NoError(suite.dataSource.LoadTrades(suite.tradesCSV()))

	trades, err := suite.dataSource.Trades(TradeQuery{Symbol: optional.Some(stats.EthSymbol)})
	suite.Require().NoError(err)

	now := time.Unix(1704196800, 0)
	suite.Equal(4.5, stats.GetEthVolume(trades, now))
}
