package tooltip

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-chart/internal/canvas"
	"github.com/rxtech-lab/argo-chart/internal/types"
)

// Pointer is the computed layout for one hover event. Both drawing strategies
// render from the same Pointer.
type Pointer struct {
	Origin  types.Origin
	Content types.TooltipContent
	// CenterX is the pixel x of the hovered point.
	CenterX float64
	// PointWidth is the pixel distance between adjacent points.
	PointWidth float64
	// Size is the measured box size.
	Size types.Size
}

// Shape is the box size to draw: the fixed background size when configured,
// the measured size otherwise.
func (p Pointer) Shape(cfg Config) types.Size {
	return cfg.BackgroundSize().TakeOr(p.Size)
}

// BandX is the left edge of the highlight band.
func (p Pointer) BandX() float64 {
	return p.CenterX - p.PointWidth/2
}

// Compute lays out the tooltip for the chart state. It returns None when there
// is nothing to show: the cursor is outside the chart, no item is hovered, or
// the hovered item has no x value.
//
// Text is measured with measurer. Without one, a transient measurement
// surface is created for this call only.
func Compute[T any](props Props[T], state types.ChartState[T], measurer optional.Option[canvas.TextMeasurer]) optional.Option[Pointer] {
	if !state.Show || state.CurrentItem.IsNone() || state.XScale == nil || state.XAccessor == nil {
		return optional.None[Pointer]()
	}

	if props.TooltipContent == nil {
		return optional.None[Pointer]()
	}

	props = props.withDefaults()
	item := state.CurrentItem.Unwrap()

	xValue, ok := validX(state.XAccessor(item))
	if !ok {
		return optional.None[Pointer]()
	}

	content := props.TooltipContent(item, state.DisplayXAccessor)
	centerX := state.XScale(xValue)
	pointWidth := PointWidth(state)

	m := measurer.TakeOrElse(func() canvas.TextMeasurer {
		return newTransientMeasurer(props.Font())
	})

	size := props.CalculateSize(props.Config, content, m)
	origin := props.Origin(props, state, size, pointWidth)

	return optional.Some(Pointer{
		Origin:     origin,
		Content:    content,
		CenterX:    centerX,
		PointWidth: pointWidth,
		Size:       size,
	})
}

// PointWidth is the horizontal span of the visible window divided by the
// number of gaps between its points. Windows with fewer than two points have
// no gaps and a point width of zero.
func PointWidth[T any](state types.ChartState[T]) float64 {
	n := len(state.PlotData)
	if n < 2 || state.XScale == nil || state.XAccessor == nil {
		return 0
	}

	first := state.XScale(state.XAccessor(state.PlotData[0]).TakeOr(0))
	last := state.XScale(state.XAccessor(state.PlotData[n-1]).TakeOr(0))

	return math.Abs(last-first) / float64(n-1)
}

// CalculateTooltipSize measures the header and every "label  value" row with
// the bold content font. The width is the widest line plus horizontal
// padding; the height is one line height per line plus vertical padding and
// the header allowance.
func CalculateTooltipSize(cfg Config, content types.TooltipContent, measurer canvas.TextMeasurer) types.Size {
	measurer.SetFont(cfg.Font())

	width := measurer.MeasureText(content.X)
	height := cfg.LineHeight()

	for _, row := range content.Y {
		width = math.Max(width, measurer.MeasureText(row.Label+"  "+row.Value))
		height += cfg.LineHeight()
	}

	return types.Size{
		Width:  width + 2*PaddingX,
		Height: height + 2*PaddingY + HeaderAllowance,
	}
}

// DefaultOrigin anchors the box next to the hovered point. The vertical
// position follows the cursor, or the item's value on the configured panel
// when ChartID and YAccessor are set and the panel exists.
func DefaultOrigin[T any](props Props[T], state types.ChartState[T], size types.Size, pointWidth float64) types.Origin {
	item := state.CurrentItem.Unwrap()

	x := round(state.XScale(state.XAccessor(item).TakeOr(0)))
	y := state.MouseXY[1]

	if props.ChartID.IsSome() && props.YAccessor != nil {
		if panel, ok := findPanel(state.ChartConfig, props.ChartID.Unwrap()); ok {
			y = round(panel.YScale(props.YAccessor(item)))
		}
	}

	return types.Origin{
		X: NormalizeX(x, size, pointWidth, state.Width),
		Y: NormalizeY(y, size),
	}
}

// NormalizeX puts the box right of the point in the left half of the chart
// and left of it in the right half.
func NormalizeX(x float64, size types.Size, pointWidth, chartWidth float64) float64 {
	if x < chartWidth/2 {
		return x + pointWidth/2 + Gap
	}

	return x - size.Width - pointWidth/2 - Gap
}

// NormalizeY puts the box below y when it would not fit above it.
func NormalizeY(y float64, size types.Size) float64 {
	if y-size.Height <= 0 {
		return y + Gap
	}

	return y - size.Height - Gap
}

func findPanel(panels []types.ChartPanel, id string) (types.ChartPanel, bool) {
	for _, panel := range panels {
		if panel.ID == id && panel.YScale != nil {
			return panel, true
		}
	}

	return types.ChartPanel{}, false
}

func validX(v optional.Option[float64]) (float64, bool) {
	if v.IsNone() {
		return 0, false
	}

	x := v.Unwrap()
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}

	return x, true
}

// round rounds half up, like the host chart does.
func round(v float64) float64 {
	return math.Floor(v + 0.5)
}

func newTransientMeasurer(font canvas.Font) canvas.TextMeasurer {
	m, err := canvas.NewMeasurementSurface()
	if err != nil {
		return canvas.NewApproxMeasurer(font)
	}

	return m
}
