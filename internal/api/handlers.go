package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-chart/internal/datasource"
	"github.com/rxtech-lab/argo-chart/internal/render"
	"github.com/rxtech-lab/argo-chart/internal/stats"
	"github.com/rxtech-lab/argo-chart/internal/tooltip"
	"github.com/rxtech-lab/argo-chart/internal/version"
	"github.com/rxtech-lab/argo-chart/pkg/errors"
	"go.uber.org/zap"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: version.GetVersion()})
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	cfg := tooltip.DefaultConfig()

	schema, err := cfg.GenerateSchemaJSON()
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(schema))
}

// handleTooltip renders a hover request. Nothing hovered answers 204.
func (s *Server) handleTooltip(w http.ResponseWriter, r *http.Request) {
	format, err := render.ParseFormat(mux.Vars(r)["format"])
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	var req tooltip.HoverRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)

		return
	}

	if format == render.FormatCanvas {
		commands, err := render.Canvas(&req)
		if err != nil {
			s.writeError(w, r, err)

			return
		}

		s.writeJSON(w, http.StatusOK, commands)

		return
	}

	var image render.Image
	if format == render.FormatSVG {
		image, err = render.SVG(&req)
	} else {
		image, err = render.PNG(&req)
	}

	if err != nil {
		s.writeError(w, r, err)

		return
	}

	if !image.Drawn {
		w.WriteHeader(http.StatusNoContent)

		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(image.Body)
}

// handleVolume sums the volume of inline trades, or of the configured trade
// source when the request carries none.
func (s *Server) handleVolume(w http.ResponseWriter, r *http.Request) {
	var req stats.VolumeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)

		return
	}

	if len(req.Trades) == 0 && s.trades.IsSome() {
		trades, err := s.trades.Unwrap().Trades(datasource.TradeQuery{
			Symbol: optional.None[string](),
			Since:  optional.None[time.Time](),
		})
		if err != nil {
			s.writeError(w, r, err)

			return
		}

		req.Trades = trades
	}

	s.evaluateVolume(w, r, req)
}

// handleSymbolVolume answers GET /v1/stats/volume/{symbol}?window=24h from
// the trade source.
func (s *Server) handleSymbolVolume(w http.ResponseWriter, r *http.Request) {
	if s.trades.IsNone() {
		s.writeError(w, r, errors.New(errors.ErrCodeDataNotFound, "no trade source is configured"))

		return
	}

	symbol := mux.Vars(r)["symbol"]

	trades, err := s.trades.Unwrap().Trades(datasource.TradeQuery{
		Symbol: optional.Some(symbol),
		Since:  optional.None[time.Time](),
	})
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	s.evaluateVolume(w, r, stats.VolumeRequest{
		Symbol: symbol,
		Now:    0,
		Window: r.URL.Query().Get("window"),
		Trades: trades,
	})
}

func (s *Server) evaluateVolume(w http.ResponseWriter, r *http.Request, req stats.VolumeRequest) {
	resp, err := req.Evaluate(s.clock)
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	s.logger.Debug("Computed volume",
		zap.String("symbol", resp.Symbol),
		zap.Float64("volume", resp.Volume),
		zap.Int("trades", resp.Trades))

	s.writeJSON(w, http.StatusOK, resp)
}
