// Package canvas defines the imperative drawing surface used by the tooltip
// canvas strategy, shaped after a browser 2D context, and two surfaces that
// implement it: a Recorder that keeps the draw commands and a ChartCanvas
// that executes them on a go-chart renderer.
package canvas

import (
	"fmt"
	"strings"
)

// TextAlign is the horizontal anchor used by FillText.
type TextAlign string

const (
	TextAlignLeft   TextAlign = "left"
	TextAlignCenter TextAlign = "center"
	TextAlignRight  TextAlign = "right"
)

// Font describes the text style used for drawing and measuring.
type Font struct {
	Family string  `json:"family"`
	Size   float64 `json:"size"`
	Bold   bool    `json:"bold,omitempty"`
}

// String formats the font as a CSS font shorthand, e.g. "bold 12px Open Sans".
func (f Font) String() string {
	var b strings.Builder
	if f.Bold {
		b.WriteString("bold ")
	}

	fmt.Fprintf(&b, "%gpx %s", f.Size, f.Family)

	return b.String()
}

// TextMeasurer measures the advance width of text in the current font.
type TextMeasurer interface {
	SetFont(font Font)
	MeasureText(text string) float64
}

// Canvas is an imperative 2D drawing surface.
//
// Transform, style and font are part of the graphics state saved by Save and
// restored by Restore. Paths persist until BeginPath, so a path can be both
// filled and stroked.
type Canvas interface {
	TextMeasurer

	Save()
	Restore()
	SetTransform(a, b, c, d, e, f float64)
	Scale(x, y float64)
	Translate(x, y float64)

	SetFillStyle(color string)
	SetStrokeStyle(color string)
	SetTextAlign(align TextAlign)

	BeginPath()
	Rect(x, y, width, height float64)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Fill()
	Stroke()

	FillText(text string, x, y float64)
}

// AverageCharWidth is the em fraction ApproxMeasurer assumes per character.
const AverageCharWidth = 0.6

// ApproxMeasurer estimates text width from the rune count. It needs no font
// files and is deterministic, which makes it the measurer of choice for
// recorded output and tests.
type ApproxMeasurer struct {
	font Font
}

// NewApproxMeasurer creates an ApproxMeasurer starting with the given font.
func NewApproxMeasurer(font Font) *ApproxMeasurer {
	return &ApproxMeasurer{font: font}
}

// SetFont implements TextMeasurer.
func (m *ApproxMeasurer) SetFont(font Font) {
	m.font = font
}

// MeasureText implements TextMeasurer.
func (m *ApproxMeasurer) MeasureText(text string) float64 {
	return float64(len([]rune(text))) * m.font.Size * AverageCharWidth
}
