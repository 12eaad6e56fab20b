package tooltip

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-chart/internal/canvas"
	"github.com/rxtech-lab/argo-chart/internal/svg"
	"github.com/rxtech-lab/argo-chart/internal/types"
)

// Fixed layout constants in pixels.
const (
	// PaddingX is the horizontal inner padding of the box.
	PaddingX = 10.0
	// PaddingY is the vertical inner padding of the box.
	PaddingY = 10.0
	// Gap separates the box from the hovered point.
	Gap = 5.0
	// LineSpacing is added to the font size to get the line height.
	LineSpacing = 5.0
	// HeaderAllowance is reserved for the token header row and its separator.
	HeaderAllowance = 42.0
)

// ContentFunc produces the tooltip content for the hovered item.
type ContentFunc[T any] func(item T, displayX func(T) string) types.TooltipContent

// SizeFunc computes the box size for the content.
type SizeFunc func(cfg Config, content types.TooltipContent, measurer canvas.TextMeasurer) types.Size

// OriginFunc computes the box anchor.
type OriginFunc[T any] func(props Props[T], state types.ChartState[T], size types.Size, pointWidth float64) types.Origin

// Props are the theme plus the overridable pieces of the component.
// Nil functions are replaced by the defaults in New.
type Props[T any] struct {
	Config

	// ChartID and YAccessor anchor the box vertically on a secondary panel
	// instead of the cursor. Both must be set.
	ChartID   optional.Option[string]
	YAccessor func(item T) float64

	TooltipContent        ContentFunc[T]
	CalculateSize         SizeFunc
	Origin                OriginFunc[T]
	BackgroundShapeSVG    func(cfg Config, size types.Size) *svg.Node
	TooltipSVG            func(cfg Config, content types.TooltipContent) *svg.Node
	BackgroundShapeCanvas func(cfg Config, size types.Size, ctx canvas.Canvas)
	TooltipCanvas         func(cfg Config, content types.TooltipContent, ctx canvas.Canvas, size types.Size)
}

// NewProps returns props with the default theme, the given content function
// and every other function set to its default.
func NewProps[T any](content ContentFunc[T]) Props[T] {
	return Props[T]{
		Config:                DefaultConfig(),
		ChartID:               optional.None[string](),
		YAccessor:             nil,
		TooltipContent:        content,
		CalculateSize:         CalculateTooltipSize,
		Origin:                DefaultOrigin[T],
		BackgroundShapeSVG:    BackgroundShapeSVG,
		TooltipSVG:            TooltipSVG,
		BackgroundShapeCanvas: BackgroundShapeCanvas,
		TooltipCanvas:         TooltipCanvas,
	}
}

func (p Props[T]) withDefaults() Props[T] {
	if p.CalculateSize == nil {
		p.CalculateSize = CalculateTooltipSize
	}

	if p.Origin == nil {
		p.Origin = DefaultOrigin[T]
	}

	if p.BackgroundShapeSVG == nil {
		p.BackgroundShapeSVG = BackgroundShapeSVG
	}

	if p.TooltipSVG == nil {
		p.TooltipSVG = TooltipSVG
	}

	if p.BackgroundShapeCanvas == nil {
		p.BackgroundShapeCanvas = BackgroundShapeCanvas
	}

	if p.TooltipCanvas == nil {
		p.TooltipCanvas = TooltipCanvas
	}

	return p
}
