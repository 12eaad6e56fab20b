package stats

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-chart/internal/types"
	"github.com/rxtech-lab/argo-chart/pkg/errors"
)

// VolumeRequest is the wire form of a volume query, used by the CLI and the
// HTTP API.
type VolumeRequest struct {
	// Symbol defaults to ETH.
	Symbol string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	// Now is the end of the window in epoch seconds. Zero means the current time.
	Now int64 `json:"now,omitempty" yaml:"now,omitempty" validate:"gte=0"`
	// Window is a Go duration such as "24h". Empty means TrailingWindow.
	Window string        `json:"window,omitempty" yaml:"window,omitempty"`
	Trades []types.Trade `json:"trades" yaml:"trades" validate:"dive"`
}

// VolumeResponse is the result of a VolumeRequest.
type VolumeResponse struct {
	Symbol string  `json:"symbol"`
	Volume float64 `json:"volume"`
	Window string  `json:"window"`
	// Trades is the number of trades considered.
	Trades int `json:"trades"`
}

// Validate validates the request shape and its window.
func (r *VolumeRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid volume request", err)
	}

	if _, err := r.window(); err != nil {
		return err
	}

	return nil
}

func (r *VolumeRequest) symbol() string {
	if strings.TrimSpace(r.Symbol) == "" {
		return EthSymbol
	}

	return r.Symbol
}

func (r *VolumeRequest) window() (time.Duration, error) {
	if r.Window == "" {
		return TrailingWindow, nil
	}

	window, err := time.ParseDuration(r.Window)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid window '%s'", r.Window)
	}

	if window <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidParameter, "window must be positive, got %s", r.Window)
	}

	return window, nil
}

// Evaluate runs the query. clock supplies the current time when Now is zero.
func (r *VolumeRequest) Evaluate(clock func() time.Time) (VolumeResponse, error) {
	if err := r.Validate(); err != nil {
		return VolumeResponse{}, err
	}

	window, _ := r.window()

	now := clock()
	if r.Now > 0 {
		now = time.Unix(r.Now, 0)
	}

	symbol := r.symbol()

	return VolumeResponse{
		Symbol: symbol,
		Volume: GetVolumeInWindow(r.Trades, symbol, now, window),
		Window: window.String(),
		Trades: len(r.Trades),
	}, nil
}
