package tooltip

import (
	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-chart/internal/types"
	"github.com/rxtech-lab/argo-chart/pkg/errors"
)

// PanelRequest is a secondary price panel whose vertical scale maps Domain
// onto the chart height, top to bottom.
type PanelRequest struct {
	ID     string     `json:"id" yaml:"id" validate:"required"`
	Domain [2]float64 `json:"domain" yaml:"domain"`
}

// HoverRequest is the wire form of a hover event on a candlestick chart, used
// by the CLI and the HTTP API.
type HoverRequest struct {
	Event types.EventKind `json:"event,omitempty" yaml:"event,omitempty" validate:"omitempty,oneof=mousemove pan mouseleave zoom"`
	// Hidden marks the cursor as outside the chart.
	Hidden bool    `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	MouseX float64 `json:"mouseX" yaml:"mouse_x"`
	MouseY float64 `json:"mouseY" yaml:"mouse_y"`
	// Index is the hovered candle. Nil means nothing is hovered.
	Index   *int               `json:"index,omitempty" yaml:"index,omitempty" validate:"omitempty,gte=0"`
	Candles []types.MarketData `json:"candles" yaml:"candles" validate:"required,min=1"`
	Width   float64            `json:"width" yaml:"width" validate:"gt=0"`
	Height  float64            `json:"height" yaml:"height" validate:"gt=0"`
	Margin  types.Margin       `json:"margin" yaml:"margin"`
	Ratio   float64            `json:"ratio,omitempty" yaml:"ratio,omitempty" validate:"gte=0"`
	ChartID string             `json:"chartId,omitempty" yaml:"chart_id,omitempty"`
	Panels  []PanelRequest     `json:"panels,omitempty" yaml:"panels,omitempty" validate:"dive"`
	Config  *Config            `json:"config,omitempty" yaml:"config,omitempty"`
}

// Validate validates the request shape and its theme.
func (r *HoverRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid hover request", err)
	}

	if r.Index != nil && *r.Index >= len(r.Candles) {
		return errors.Newf(errors.ErrCodeInvalidIndex, "index %d out of range for %d candles", *r.Index, len(r.Candles))
	}

	if r.Config != nil {
		if err := r.Config.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Kind returns the event kind, mousemove when unset.
func (r *HoverRequest) Kind() types.EventKind {
	if r.Event == "" {
		return types.EventMouseMove
	}

	return r.Event
}

// Surface returns the ambient surface values of the request.
func (r *HoverRequest) Surface() SurfaceContext {
	return SurfaceContext{Margin: r.Margin, Ratio: r.Ratio}
}

// Theme returns the request theme or the default one.
func (r *HoverRequest) Theme() Config {
	if r.Config == nil {
		return DefaultConfig()
	}

	return *r.Config
}

// Props returns candle props for the request theme and panel anchoring.
func (r *HoverRequest) Props() Props[types.MarketData] {
	props := NewCandleProps(r.Theme())
	if r.ChartID != "" {
		props.ChartID = optional.Some(r.ChartID)
	}

	return props
}

// ToEvent converts the request into a host event over linear scales.
func (r *HoverRequest) ToEvent() types.Event[types.MarketData] {
	current := optional.None[types.MarketData]()
	if r.Index != nil && *r.Index >= 0 && *r.Index < len(r.Candles) {
		current = optional.Some(r.Candles[*r.Index])
	}

	panels := make([]types.ChartPanel, 0, len(r.Panels))
	for _, p := range r.Panels {
		scale := types.LinearScale{Domain: p.Domain, Range: [2]float64{r.Height, 0}}
		panels = append(panels, types.ChartPanel{ID: p.ID, YScale: scale.Func()})
	}

	return types.Event[types.MarketData]{
		Kind: r.Kind(),
		State: types.ChartState[types.MarketData]{
			Show:             !r.Hidden,
			MouseXY:          [2]float64{r.MouseX, r.MouseY},
			CurrentItem:      current,
			PlotData:         r.Candles,
			XScale:           CandleTimeScale(r.Candles, r.Width).Func(),
			XAccessor:        CandleXAccessor,
			DisplayXAccessor: CandleDisplayX,
			Width:            r.Width,
			Height:           r.Height,
			ChartConfig:      panels,
		},
	}
}
