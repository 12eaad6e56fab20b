// Package tooltip lays out and draws the hover tooltip of a candlestick
// chart. Layout is computed once per event by Compute; the SVG and canvas
// strategies only draw what it returns.
package tooltip

import (
	"slices"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-chart/internal/canvas"
	"github.com/rxtech-lab/argo-chart/internal/svg"
	"github.com/rxtech-lab/argo-chart/internal/types"
	"github.com/rxtech-lab/argo-chart/pkg/errors"
)

// Surface is where a HoverTooltip draws: *SVGSurface or *CanvasSurface.
type Surface interface {
	surface()
}

// SVGSurface receives the tooltip tree. Node is None until something is drawn.
type SVGSurface struct {
	Node optional.Option[*svg.Node]
}

func (*SVGSurface) surface() {}

// CanvasSurface draws on a live canvas.
type CanvasSurface struct {
	Canvas canvas.Canvas
	SurfaceContext
}

func (*CanvasSurface) surface() {}

// HoverTooltip is the tooltip component. It keeps no state between events.
type HoverTooltip[T any] struct {
	props    Props[T]
	drawOn   []types.EventKind
	measurer optional.Option[canvas.TextMeasurer]
}

// Option configures a HoverTooltip.
type Option[T any] func(*HoverTooltip[T])

// WithMeasurer measures text for the SVG strategy with m instead of a
// transient measurement surface.
func WithMeasurer[T any](m canvas.TextMeasurer) Option[T] {
	return func(h *HoverTooltip[T]) {
		h.measurer = optional.Some(m)
	}
}

// WithDrawOn replaces the event kinds the tooltip redraws on.
func WithDrawOn[T any](kinds ...types.EventKind) Option[T] {
	return func(h *HoverTooltip[T]) {
		h.drawOn = kinds
	}
}

// New creates a HoverTooltip that draws on mouse move and pan events.
func New[T any](props Props[T], opts ...Option[T]) *HoverTooltip[T] {
	h := &HoverTooltip[T]{
		props:    props.withDefaults(),
		drawOn:   []types.EventKind{types.EventMouseMove, types.EventPan},
		measurer: optional.None[canvas.TextMeasurer](),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Props returns the resolved props.
func (h *HoverTooltip[T]) Props() Props[T] {
	return h.props
}

// DrawsOn reports whether events of this kind trigger a draw.
func (h *HoverTooltip[T]) DrawsOn(kind types.EventKind) bool {
	return slices.Contains(h.drawOn, kind)
}

// RenderSVG returns the tooltip tree, or None when nothing is hovered.
func (h *HoverTooltip[T]) RenderSVG(state types.ChartState[T]) optional.Option[*svg.Node] {
	pointer := Compute(h.props, state, h.measurer)
	if pointer.IsNone() {
		return optional.None[*svg.Node]()
	}

	return optional.Some(SVGTree(h.props, pointer.Unwrap(), state.Height))
}

// DrawOnCanvas draws the tooltip on ctx, measuring text with ctx itself. It
// reports whether anything was drawn.
func (h *HoverTooltip[T]) DrawOnCanvas(ctx canvas.Canvas, state types.ChartState[T], surface SurfaceContext) bool {
	pointer := Compute(h.props, state, optional.Some[canvas.TextMeasurer](ctx))
	if pointer.IsNone() {
		return false
	}

	DrawCanvas(h.props, ctx, pointer.Unwrap(), state.Height, surface)

	return true
}

// Handle draws the tooltip for a host event on the given surface. Events the
// tooltip does not draw on are ignored. It reports whether anything was drawn.
func (h *HoverTooltip[T]) Handle(event types.Event[T], surface Surface) (bool, error) {
	if !h.DrawsOn(event.Kind) {
		return false, nil
	}

	switch s := surface.(type) {
	case *SVGSurface:
		s.Node = h.RenderSVG(event.State)

		return s.Node.IsSome(), nil
	case *CanvasSurface:
		if s.Canvas == nil {
			return false, errors.New(errors.ErrCodeUnsupportedSurface, "canvas surface has no canvas")
		}

		return h.DrawOnCanvas(s.Canvas, event.State, s.SurfaceContext), nil
	default:
		return false, errors.Newf(errors.ErrCodeUnsupportedSurface, "unsupported surface %T", surface)
	}
}
