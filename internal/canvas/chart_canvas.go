package canvas

import (
	"io"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/rxtech-lab/argo-chart/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// renderDPI makes one font point equal one pixel, matching CSS px sizes.
const renderDPI = 72

type matrix struct {
	a, b, c, d, e, f float64
}

var identity = matrix{a: 1, b: 0, c: 0, d: 1, e: 0, f: 0}

func (m matrix) apply(x, y float64) (float64, float64) {
	return m.a*x + m.c*y + m.e, m.b*x + m.d*y + m.f
}

// scaleFactor is the uniform scale of the transform, used for line widths and
// font sizes.
func (m matrix) scaleFactor() float64 {
	return math.Sqrt(math.Abs(m.a*m.d - m.b*m.c))
}

type drawState struct {
	transform matrix
	fill      drawing.Color
	stroke    drawing.Color
	font      Font
	align     TextAlign
}

type point struct {
	x, y int
}

// ChartCanvas executes Canvas calls on a go-chart renderer. go-chart has no
// graphics state stack or transforms, so both live here and coordinates are
// transformed before they reach the renderer.
type ChartCanvas struct {
	renderer chart.Renderer
	ttf      *truetype.Font
	state    drawState
	stack    []drawState
	path     [][]point
	width    int
	height   int
}

// NewChartCanvas creates a canvas of the given pixel size on the renderer
// produced by provider (chart.PNG or chart.SVG).
func NewChartCanvas(provider chart.RendererProvider, width, height int) (*ChartCanvas, error) {
	renderer, err := provider(width, height)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, "failed to create renderer", err)
	}

	renderer.SetDPI(renderDPI)

	ttf, err := chart.GetDefaultFont()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontUnavailable, "failed to load default font", err)
	}

	return &ChartCanvas{
		renderer: renderer,
		ttf:      ttf,
		state: drawState{
			transform: identity,
			fill:      drawing.ColorBlack,
			stroke:    drawing.ColorBlack,
			font:      Font{Family: "sans-serif", Size: 10, Bold: false},
			align:     TextAlignLeft,
		},
		stack:  make([]drawState, 0),
		path:   make([][]point, 0),
		width:  width,
		height: height,
	}, nil
}

// NewPNGCanvas creates a raster canvas encoded as PNG.
func NewPNGCanvas(width, height int) (*ChartCanvas, error) {
	return NewChartCanvas(chart.PNG, width, height)
}

// NewSVGCanvas creates a vector canvas encoded as SVG.
func NewSVGCanvas(width, height int) (*ChartCanvas, error) {
	return NewChartCanvas(chart.SVG, width, height)
}

// NewMeasurementSurface creates a throwaway 1x1 raster surface that is only
// used to measure text with real font metrics.
func NewMeasurementSurface() (TextMeasurer, error) {
	return NewPNGCanvas(1, 1)
}

// Width returns the surface width in pixels.
func (c *ChartCanvas) Width() int {
	return c.width
}

// Height returns the surface height in pixels.
func (c *ChartCanvas) Height() int {
	return c.height
}

// Encode writes the rendered image (PNG or SVG, depending on the renderer).
func (c *ChartCanvas) Encode(w io.Writer) error {
	if err := c.renderer.Save(w); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, "failed to encode image", err)
	}

	return nil
}

func (c *ChartCanvas) Save() {
	c.stack = append(c.stack, c.state)
}

func (c *ChartCanvas) Restore() {
	if len(c.stack) == 0 {
		return
	}

	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *ChartCanvas) SetTransform(a, b, cc, d, e, f float64) {
	c.state.transform = matrix{a: a, b: b, c: cc, d: d, e: e, f: f}
}

func (c *ChartCanvas) Scale(x, y float64) {
	m := &c.state.transform
	m.a *= x
	m.b *= x
	m.c *= y
	m.d *= y
}

func (c *ChartCanvas) Translate(x, y float64) {
	m := &c.state.transform
	m.e += m.a*x + m.c*y
	m.f += m.b*x + m.d*y
}

// SetFillStyle ignores colors it cannot parse, like a browser context does.
func (c *ChartCanvas) SetFillStyle(color string) {
	if parsed, err := ParseColor(color); err == nil {
		c.state.fill = parsed
	}
}

func (c *ChartCanvas) SetStrokeStyle(color string) {
	if parsed, err := ParseColor(color); err == nil {
		c.state.stroke = parsed
	}
}

func (c *ChartCanvas) SetTextAlign(align TextAlign) {
	c.state.align = align
}

// SetFont sets the font. Only the size is honoured; go-chart ships a single
// typeface.
func (c *ChartCanvas) SetFont(font Font) {
	c.state.font = font
}

func (c *ChartCanvas) BeginPath() {
	c.path = c.path[:0]
}

func (c *ChartCanvas) Rect(x, y, width, height float64) {
	c.path = append(c.path, []point{
		c.toDevice(x, y),
		c.toDevice(x+width, y),
		c.toDevice(x+width, y+height),
		c.toDevice(x, y+height),
		c.toDevice(x, y),
	})
}

func (c *ChartCanvas) MoveTo(x, y float64) {
	c.path = append(c.path, []point{c.toDevice(x, y)})
}

func (c *ChartCanvas) LineTo(x, y float64) {
	if len(c.path) == 0 {
		c.MoveTo(x, y)

		return
	}

	last := len(c.path) - 1
	c.path[last] = append(c.path[last], c.toDevice(x, y))
}

func (c *ChartCanvas) Fill() {
	c.renderer.SetFillColor(c.state.fill)
	c.renderer.SetStrokeColor(drawing.ColorTransparent)
	c.renderer.SetStrokeWidth(0)
	c.replayPath()
	c.renderer.Fill()
}

func (c *ChartCanvas) Stroke() {
	c.renderer.SetStrokeColor(c.state.stroke)
	c.renderer.SetStrokeWidth(c.state.transform.scaleFactor())
	c.replayPath()
	c.renderer.Stroke()
}

func (c *ChartCanvas) FillText(text string, x, y float64) {
	size := c.state.font.Size * c.state.transform.scaleFactor()

	c.renderer.SetFont(c.ttf)
	c.renderer.SetFontSize(size)
	c.renderer.SetFontColor(c.state.fill)

	dx, dy := c.state.transform.apply(x, y)

	switch c.state.align {
	case TextAlignCenter:
		dx -= float64(c.renderer.MeasureText(text).Width()) / 2
	case TextAlignRight:
		dx -= float64(c.renderer.MeasureText(text).Width())
	case TextAlignLeft:
	}

	c.renderer.Text(text, int(math.Round(dx)), int(math.Round(dy)))
}

// MeasureText returns the width in untransformed pixels, like a 2D context.
func (c *ChartCanvas) MeasureText(text string) float64 {
	c.renderer.SetFont(c.ttf)
	c.renderer.SetFontSize(c.state.font.Size)

	return float64(c.renderer.MeasureText(text).Width())
}

func (c *ChartCanvas) toDevice(x, y float64) point {
	dx, dy := c.state.transform.apply(x, y)

	return point{x: int(math.Round(dx)), y: int(math.Round(dy))}
}

func (c *ChartCanvas) replayPath() {
	for _, sub := range c.path {
		if len(sub) == 0 {
			continue
		}

		c.renderer.MoveTo(sub[0].x, sub[0].y)

		for _, p := range sub[1:] {
			c.renderer.LineTo(p.x, p.y)
		}
	}
}
