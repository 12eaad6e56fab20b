package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rxtech-lab/argo-chart/internal/render"
	"github.com/rxtech-lab/argo-chart/internal/stats"
	"github.com/rxtech-lab/argo-chart/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type CLITestSuite struct {
	suite.Suite
	tempDir string
	stdout  *bytes.Buffer
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (suite *CLITestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
	suite.stdout = &bytes.Buffer{}
}

func (suite *CLITestSuite) run(args ...string) error {
	app := newApp()
	app.Writer = suite.stdout
	app.ErrWriter = &bytes.Buffer{}

	return app.Run(context.Background(), append([]string{"argo-chart", "--log-level", "error"}, args...))
}

func (suite *CLITestSuite) writeFile(name, content string) string {
	path := filepath.Join(suite.tempDir, name)
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o600))

	return path
}

const requestJSON = `{
  "mouseX": 40,
  "mouseY": 60,
  "index": 1,
  "width": 300,
  "height": 200,
  "candles": [
    {"symbol": "ETHUSDC", "time": "2024-01-02T09:00:00Z", "open": 10, "high": 12, "low": 9, "close": 11, "volume": 100},
    {"symbol": "ETHUSDC", "time": "2024-01-02T09:01:00Z", "open": 11, "high": 11.5, "low": 8, "close": 8.25, "volume": 250},
    {"symbol": "ETHUSDC", "time": "2024-01-02T09:02:00Z", "open": 8.25, "high": 9, "low": 8, "close": 9, "volume": 50}
  ]
}`

const requestYAML = `mouse_x: 40
mouse_y: 60
index: 0
width: 300
height: 200
candles:
  - symbol: ETHUSDC
    time: 2024-01-02T09:00:00Z
    open: 10
    high: 12
    low: 9
    close: 11
    volume: 100
  - symbol: ETHUSDC
    time: 2024-01-02T09:01:00Z
    open: 11
    high: 11.5
    low: 8
    close: 8.25
    volume: 250
`

func (suite *CLITestSuite) TestRenderSVGToFile() {
	input := suite.writeFile("request.json", requestJSON)
	output := filepath.Join(suite.tempDir, "out", "tooltip.svg")

	suite.Require().NoError(suite.run("render", "--output", output, input))

	data, err := os.ReadFile(output)
	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(string(data), "<svg"))
	suite.Contains(string(data), "2024-01-02 09:01")
}

func (suite *CLITestSuite) TestRenderCanvasFromYAML() {
	input := suite.writeFile("request.yaml", requestYAML)

	suite.Require().NoError(suite.run("render", "--format", "canvas", input))

	var commands render.Commands
	suite.Require().NoError(json.Unmarshal(suite.stdout.Bytes(), &commands))
	suite.True(commands.Drawn)
	suite.NotEmpty(commands.Ops)
}

func (suite *CLITestSuite) TestRenderPNGWithTheme() {
	input := suite.writeFile("request.json", requestJSON)
	theme := suite.writeFile("theme.yaml", "fill: \"#101010\"\nbg_width: 160\nbg_height: 120\n")
	output := filepath.Join(suite.tempDir, "tooltip.png")

	suite.Require().NoError(suite.run("render", "-f", "png", "-c", theme, "-o", output, input))

	data, err := os.ReadFile(output)
	suite.Require().NoError(err)
	suite.True(bytes.HasPrefix(data, []byte("\x89PNG")))
}

func (suite *CLITestSuite) TestRenderCandlesFromFile() {
	input := suite.writeFile("request.json", `{"width": 300, "height": 200, "candles": []}`)
	candles := suite.writeFile("candles.csv", `time,symbol,open,high,low,close,volume
2024-01-02 09:00:00,ETHUSDC,10,12,9,11,100
2024-01-02 09:01:00,ETHUSDC,11,11.5,8,8.25,250
2024-01-02 09:00:00,BTCUSDC,40000,40100,39900,40050,3
`)

	suite.Require().NoError(suite.run("render", "-f", "canvas", "--candles", candles, "--symbol", "ETHUSDC", "--index", "1", input))

	var commands render.Commands
	suite.Require().NoError(json.Unmarshal(suite.stdout.Bytes(), &commands))
	suite.True(commands.Drawn)

	texts := make([]string, 0)
	for _, op := range commands.Ops {
		if op.Name == "fillText" {
			texts = append(texts, op.Text)
		}
	}

	suite.Contains(texts, "8.25")
}

func (suite *CLITestSuite) TestRenderNothingHovered() {
	input := suite.writeFile("request.json", strings.Replace(requestJSON, `"index": 1,`, "", 1))

	suite.Require().NoError(suite.run("render", input))
	suite.Empty(suite.stdout.String())
}

func (suite *CLITestSuite) TestRenderErrors() {
	err := suite.run("render")
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))

	input := suite.writeFile("request.json", requestJSON)
	err = suite.run("render", "--format", "gif", input)
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedFormat))

	err = suite.run("render", "--index", "7", input)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidIndex))
}

func (suite *CLITestSuite) TestVolumeFromTrades() {
	trades := suite.writeFile("trades.csv", `timestamp,maker_symbol,taker_symbol,maker_amount,taker_amount
1704186000,ETH,DAI,1.5,3300
1704189600,DAI,ETH,2200,1
1704100000,ETH,DAI,9,19800
`)

	suite.Require().NoError(suite.run("volume", "--trades", trades, "--now", "2024-01-02T12:00:00Z"))

	var resp stats.VolumeResponse
	suite.Require().NoError(json.Unmarshal(suite.stdout.Bytes(), &resp))
	suite.Equal(stats.VolumeResponse{Symbol: "ETH", Volume: 2.5, Window: "24h0m0s", Trades: 3}, resp)
}

func (suite *CLITestSuite) TestVolumeFromRequest() {
	input := suite.writeFile("volume.json", `{
  "symbol": "DAI",
  "now": 1704196800,
  "trades": [
    {"timestamp": 1704186000, "makerSymbol": "ETH", "takerSymbol": "DAI", "makerAmount": 1.5, "takerAmount": 3300}
  ]
}`)

	suite.Require().NoError(suite.run("volume", "-i", input, "--window", "6h"))

	var resp stats.VolumeResponse
	suite.Require().NoError(json.Unmarshal(suite.stdout.Bytes(), &resp))
	suite.Equal("DAI", resp.Symbol)
	suite.Equal(3300.0, resp.Volume)
	suite.Equal("6h0m0s", resp.Window)
}

func (suite *CLITestSuite) TestVolumeNeedsInput() {
	err := suite.run("volume")
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))
}

func (suite *CLITestSuite) TestSchema() {
	dir := filepath.Join(suite.tempDir, "config")

	suite.Require().NoError(suite.run("schema", "--dir", dir))

	schema, err := os.ReadFile(filepath.Join(dir, schemaName))
	suite.Require().NoError(err)
	suite.Contains(string(schema), "tooltip-config")

	sample, err := os.ReadFile(filepath.Join(dir, sampleConfigName))
	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(string(sample), "# yaml-language-server: $schema=tooltip-config.json"))
	suite.Contains(string(sample), "bg_fill: '#2D35E0'")
}

func (suite *CLITestSuite) TestVersion() {
	suite.Require().NoError(suite.run("version"))
	suite.Equal("v1.0.0\n", suite.stdout.String())
}
