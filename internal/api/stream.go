package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rxtech-lab/argo-chart/internal/render"
	"github.com/rxtech-lab/argo-chart/internal/tooltip"
	"github.com/rxtech-lab/argo-chart/pkg/errors"
	"go.uber.org/zap"
)

// StreamFrame answers one hover request on the stream. Error is set instead
// of the commands when the request was rejected.
type StreamFrame struct {
	render.Commands
	Error *errorResponse `json:"error,omitempty"`
}

// handleStream upgrades to a websocket. Every message is a hover request and
// is answered with one StreamFrame, in order. Messages that fail to decode
// are answered with an error frame; the stream ends only when the
// connection does.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Failed to upgrade connection", zap.Error(err))

		return
	}
	defer conn.Close()

	id := requestIDFrom(r.Context())
	s.logger.Debug("Tooltip stream opened", zap.String("request_id", id))

	renderer := render.NewCanvasRenderer()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("Tooltip stream closed", zap.String("request_id", id), zap.Error(err))
			}

			return
		}

		frame := s.streamFrame(renderer, message, id)

		if err := conn.WriteJSON(frame); err != nil {
			s.logger.Warn("Failed to write stream frame", zap.Error(err))

			return
		}
	}
}

func (s *Server) streamFrame(renderer *render.CanvasRenderer, message []byte, id string) StreamFrame {
	var req tooltip.HoverRequest
	if err := json.Unmarshal(message, &req); err != nil {
		return StreamFrame{Error: streamError(errors.Wrap(errors.ErrCodeInvalidRequest, "invalid stream message", err), id)}
	}

	commands, err := renderer.Render(&req)
	if err != nil {
		return StreamFrame{Error: streamError(err, id)}
	}

	return StreamFrame{Commands: commands, Error: nil}
}

func streamError(err error, id string) *errorResponse {
	return &errorResponse{
		Code:      int(errors.GetCode(err)),
		Message:   err.Error(),
		RequestID: id,
	}
}
