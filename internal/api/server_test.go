package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rxtech-lab/argo-chart/internal/datasource"
	"github.com/rxtech-lab/argo-chart/internal/logger"
	"github.com/rxtech-lab/argo-chart/internal/render"
	"github.com/rxtech-lab/argo-chart/internal/stats"
	"github.com/rxtech-lab/argo-chart/internal/tooltip"
	"github.com/rxtech-lab/argo-chart/internal/types"
	"github.com/rxtech-lab/argo-chart/mocks"
	"github.com/rxtech-lab/argo-chart/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ServerTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	trades  *mocks.MockDataSource
	server  *httptest.Server
	now     time.Time
	candles []types.MarketData
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (suite *ServerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.trades = mocks.NewMockDataSource(suite.ctrl)
	suite.now = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	config := mocks.DefaultCandleConfig()
	config.Count = 30
	suite.candles = mocks.NewDataGenerator(42).GenerateCandles(config)

	s := NewServer(logger.NewNopLogger(),
		WithTradeSource(suite.trades),
		WithClock(func() time.Time { return suite.now }),
	)
	suite.server = httptest.NewServer(s.Handler())
}

func (suite *ServerTestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *ServerTestSuite) post(path string, body any) *http.Response {
	data, err := json.Marshal(body)
	suite.Require().NoError(err)

	resp, err := http.Post(suite.server.URL+path, "application/json", bytes.NewReader(data))
	suite.Require().NoError(err)

	return resp
}

func (suite *ServerTestSuite) get(path string) *http.Response {
	resp, err := http.Get(suite.server.URL + path)
	suite.Require().NoError(err)

	return resp
}

func (suite *ServerTestSuite) hoverRequest(index *int) tooltip.HoverRequest {
	return tooltip.HoverRequest{
		MouseX:  200,
		MouseY:  100,
		Index:   index,
		Candles: suite.candles,
		Width:   600,
		Height:  300,
	}
}

func at(i int) *int {
	return &i
}

func (suite *ServerTestSuite) TestHealth() {
	resp := suite.get("/healthz")
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.NotEmpty(resp.Header.Get(RequestIDHeader))

	var body healthResponse
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	suite.Equal("ok", body.Status)
	suite.Equal("v1.0.0", body.Version)
}

func (suite *ServerTestSuite) TestRequestIDIsEchoed() {
	req, err := http.NewRequest(http.MethodGet, suite.server.URL+"/healthz", nil)
	suite.Require().NoError(err)
	req.Header.Set(RequestIDHeader, "abc-123")

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal("abc-123", resp.Header.Get(RequestIDHeader))
}

func (suite *ServerTestSuite) TestSchema() {
	resp := suite.get("/v1/schema")
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	suite.Require().NoError(err)
	suite.Contains(string(body), "tooltip-config")
}

func (suite *ServerTestSuite) TestTooltipSVG() {
	resp := suite.post("/v1/tooltip/svg", suite.hoverRequest(at(4)))
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal("image/svg+xml", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(string(body), "<svg"))
}

func (suite *ServerTestSuite) TestTooltipPartialTheme() {
	data, err := json.Marshal(suite.hoverRequest(at(4)))
	suite.Require().NoError(err)

	var body map[string]any
	suite.Require().NoError(json.Unmarshal(data, &body))
	body["config"] = map[string]any{"fontSize": 14}

	resp := suite.post("/v1/tooltip/svg", body)
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)

	svg, err := io.ReadAll(resp.Body)
	suite.Require().NoError(err)
	suite.Contains(string(svg), `font-size="14"`)
	suite.Contains(string(svg), `fill="#2D3E50"`)
}

func (suite *ServerTestSuite) TestTooltipPNG() {
	resp := suite.post("/v1/tooltip/png", suite.hoverRequest(at(25)))
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Equal("image/png", resp.Header.Get("Content-Type"))
}

func (suite *ServerTestSuite) TestTooltipCanvas() {
	resp := suite.post("/v1/tooltip/canvas", suite.hoverRequest(at(10)))
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)

	var commands render.Commands
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&commands))
	suite.True(commands.Drawn)
	suite.NotEmpty(commands.Ops)
}

func (suite *ServerTestSuite) TestTooltipNothingHovered() {
	resp := suite.post("/v1/tooltip/svg", suite.hoverRequest(nil))
	defer resp.Body.Close()

	suite.Equal(http.StatusNoContent, resp.StatusCode)
}

func (suite *ServerTestSuite) TestTooltipErrors() {
	resp := suite.post("/v1/tooltip/gif", suite.hoverRequest(at(1)))
	resp.Body.Close()
	suite.Equal(http.StatusUnsupportedMediaType, resp.StatusCode)

	resp = suite.post("/v1/tooltip/svg", suite.hoverRequest(at(100)))
	defer resp.Body.Close()
	suite.Equal(http.StatusBadRequest, resp.StatusCode)

	var body errorResponse
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	suite.Equal(int(errors.ErrCodeInvalidIndex), body.Code)
	suite.NotEmpty(body.RequestID)

	bad, err := http.Post(suite.server.URL+"/v1/tooltip/svg", "application/json", strings.NewReader("{"))
	suite.Require().NoError(err)
	bad.Body.Close()
	suite.Equal(http.StatusBadRequest, bad.StatusCode)
}

func (suite *ServerTestSuite) TestVolumeWithInlineTrades() {
	resp := suite.post("/v1/stats/volume", stats.VolumeRequest{
		Trades: []types.Trade{
			{Timestamp: suite.now.Unix(), MakerSymbol: "ETH", TakerSymbol: "BTC", MakerAmount: 5, TakerAmount: 1},
		},
	})
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)

	var body stats.VolumeResponse
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	suite.Equal(stats.VolumeResponse{Symbol: "ETH", Volume: 5, Window: "24h0m0s", Trades: 1}, body)
}

func (suite *ServerTestSuite) TestVolumeFromTradeSource() {
	suite.trades.EXPECT().Trades(gomock.Any()).Return([]types.Trade{
		{Timestamp: suite.now.Add(-time.Hour).Unix(), MakerSymbol: "BTC", TakerSymbol: "ETH", MakerAmount: 1, TakerAmount: 7},
		{Timestamp: suite.now.Add(-48 * time.Hour).Unix(), MakerSymbol: "ETH", TakerSymbol: "BTC", MakerAmount: 3, TakerAmount: 1},
	}, nil)

	resp := suite.post("/v1/stats/volume", stats.VolumeRequest{})
	defer resp.Body.Close()

	var body stats.VolumeResponse
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	suite.Equal(7.0, body.Volume)
	suite.Equal(2, body.Trades)
}

func (suite *ServerTestSuite) TestSymbolVolume() {
	suite.trades.EXPECT().Trades(gomock.Any()).DoAndReturn(func(query datasource.TradeQuery) ([]types.Trade, error) {
		suite.Equal("DAI", query.Symbol.Unwrap())

		return []types.Trade{
			{Timestamp: suite.now.Add(-30 * time.Minute).Unix(), MakerSymbol: "DAI", TakerSymbol: "ETH", MakerAmount: 3000, TakerAmount: 1},
			{Timestamp: suite.now.Add(-2 * time.Hour).Unix(), MakerSymbol: "ETH", TakerSymbol: "DAI", MakerAmount: 1, TakerAmount: 2900},
		}, nil
	})

	resp := suite.get("/v1/stats/volume/DAI?window=1h")
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)

	var body stats.VolumeResponse
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	suite.Equal(stats.VolumeResponse{Symbol: "DAI", Volume: 3000, Window: "1h0m0s", Trades: 2}, body)
}

func (suite *ServerTestSuite) TestSymbolVolumeSourceFailure() {
	suite.trades.EXPECT().Trades(gomock.Any()).Return(nil, errors.New(errors.ErrCodeQueryFailed, "boom"))

	resp := suite.get("/v1/stats/volume/ETH")
	defer resp.Body.Close()

	suite.Equal(http.StatusInternalServerError, resp.StatusCode)
}

func (suite *ServerTestSuite) TestSymbolVolumeWithoutSource() {
	server := httptest.NewServer(NewServer(logger.NewNopLogger()).Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/v1/stats/volume/ETH")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusNotFound, resp.StatusCode)
}

func (suite *ServerTestSuite) TestStream() {
	url := "ws" + strings.TrimPrefix(suite.server.URL, "http") + "/v1/tooltip/stream"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	suite.Require().NoError(err)
	defer conn.Close()

	for _, index := range []*int{at(3), nil, at(500)} {
		suite.Require().NoError(conn.WriteJSON(suite.hoverRequest(index)))
	}

	var frame StreamFrame

	suite.Require().NoError(conn.ReadJSON(&frame))
	suite.True(frame.Drawn)
	suite.Nil(frame.Error)

	frame = StreamFrame{}
	suite.Require().NoError(conn.ReadJSON(&frame))
	suite.False(frame.Drawn)
	suite.Nil(frame.Error)

	frame = StreamFrame{}
	suite.Require().NoError(conn.ReadJSON(&frame))
	suite.Require().NotNil(frame.Error)
	suite.Equal(int(errors.ErrCodeInvalidIndex), frame.Error.Code)
}

func (suite *ServerTestSuite) dialStream() *websocket.Conn {
	url := "ws" + strings.TrimPrefix(suite.server.URL, "http") + "/v1/tooltip/stream"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	suite.Require().NoError(err)

	return conn
}

func (suite *ServerTestSuite) TestStreamAnswersUndecodableMessage() {
	conn := suite.dialStream()
	defer conn.Close()

	suite.Require().NoError(conn.WriteMessage(websocket.TextMessage, []byte(`{"mouseX":"oops"}`)))
	suite.Require().NoError(conn.WriteJSON(suite.hoverRequest(at(3))))

	var frame StreamFrame

	suite.Require().NoError(conn.ReadJSON(&frame))
	suite.Require().NotNil(frame.Error)
	suite.Equal(int(errors.ErrCodeInvalidRequest), frame.Error.Code)
	suite.NotEmpty(frame.Error.RequestID)
	suite.False(frame.Drawn)

	frame = StreamFrame{}
	suite.Require().NoError(conn.ReadJSON(&frame))
	suite.Nil(frame.Error)
	suite.True(frame.Drawn)
}

func (suite *ServerTestSuite) TestStreamFramesAreIndependent() {
	conn := suite.dialStream()
	defer conn.Close()

	for i := 0; i < 2; i++ {
		suite.Require().NoError(conn.WriteJSON(suite.hoverRequest(at(7))))
	}

	var first, second StreamFrame

	suite.Require().NoError(conn.ReadJSON(&first))
	suite.Require().NoError(conn.ReadJSON(&second))

	suite.True(first.Drawn)
	suite.NotEmpty(first.Ops)
	suite.Equal(first.Ops, second.Ops)
}

func (suite *ServerTestSuite) TestStartAndStop() {
	s := NewServer(logger.NewNopLogger())
	suite.Require().NoError(s.Start("127.0.0.1:0"))
	suite.Contains(s.BaseURL(), "http://127.0.0.1:")

	resp, err := http.Get(s.BaseURL() + "/healthz")
	suite.Require().NoError(err)
	resp.Body.Close()
	suite.Equal(http.StatusOK, resp.StatusCode)

	suite.NoError(s.Stop())
}
