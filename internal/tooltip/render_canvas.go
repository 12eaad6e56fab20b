package tooltip

import (
	"github.com/rxtech-lab/argo-chart/internal/canvas"
	"github.com/rxtech-lab/argo-chart/internal/types"
)

const (
	// tokenGlyphSize is the square reserved for each token in the header row.
	tokenGlyphSize = 28.0
	// separatorOffset is the distance from the glyph bottom to the separator.
	separatorOffset = 7.0
	// symbolOffset places the second symbol inside the right glyph square.
	symbolOffset = 10.0
	separatorColor  = "#202020"
)

// SurfaceContext carries the ambient values of the host drawing surface.
type SurfaceContext struct {
	Margin types.Margin
	// Ratio is the device pixel ratio. Zero is treated as 1.
	Ratio float64
}

func (s SurfaceContext) ratio() float64 {
	if s.Ratio <= 0 {
		return 1
	}

	return s.Ratio
}

// DrawCanvas draws a computed pointer on ctx. The graphics state is saved
// first and restored last, so ctx is left as it was found.
func DrawCanvas[T any](props Props[T], ctx canvas.Canvas, pointer Pointer, chartHeight float64, surface SurfaceContext) {
	props = props.withDefaults()
	shape := pointer.Shape(props.Config)
	ratio := surface.ratio()

	originX := 0.5*ratio + surface.Margin.Left
	originY := 0.5*ratio + surface.Margin.Top

	ctx.Save()
	defer ctx.Restore()

	ctx.SetTransform(1, 0, 0, 1, 0, 0)
	ctx.Scale(ratio, ratio)
	ctx.Translate(originX, originY)

	ctx.SetFillStyle(rgba(props.BgFill, props.BgOpacity))
	ctx.BeginPath()
	ctx.Rect(pointer.BandX(), 0, pointer.PointWidth, chartHeight)
	ctx.Fill()

	ctx.Translate(pointer.Origin.X, pointer.Origin.Y)
	props.BackgroundShapeCanvas(props.Config, shape, ctx)
	props.TooltipCanvas(props.Config, pointer.Content, ctx, shape)
}

// BackgroundShapeCanvas fills and strokes the box rectangle at the origin.
func BackgroundShapeCanvas(cfg Config, size types.Size, ctx canvas.Canvas) {
	ctx.SetFillStyle(rgba(cfg.Fill, cfg.Opacity))
	ctx.SetStrokeStyle(rgba(cfg.Stroke, 1))
	ctx.BeginPath()
	ctx.Rect(0, 0, size.Width, size.Height)
	ctx.Fill()
	ctx.Stroke()
}

// TooltipCanvas draws the optional token header row, then the header label
// left-aligned, then one line per row with the label on the left and the
// value right-aligned against the opposite edge.
func TooltipCanvas(cfg Config, content types.TooltipContent, ctx canvas.Canvas, size types.Size) {
	ctx.SetFont(cfg.Font())
	ctx.SetTextAlign(canvas.TextAlignLeft)
	ctx.SetFillStyle(cfg.FontFill)
	ctx.SetStrokeStyle(separatorColor)

	if tokens := cfg.Tokens(); tokens.IsSome() {
		drawTokenHeader(cfg, tokens.Unwrap(), ctx, size)
	}

	baseline := PaddingY + HeaderAllowance + cfg.FontSize
	ctx.FillText(content.X, PaddingX, baseline)

	for _, row := range content.Y {
		baseline += cfg.LineHeight()

		color := cfg.FontFill
		if row.Stroke != "" {
			color = row.Stroke
		}

		ctx.SetFillStyle(color)
		ctx.FillText(row.Label, PaddingX, baseline)
		ctx.FillText(row.Value, size.Width-PaddingX-ctx.MeasureText(row.Value), baseline)
	}
}

// drawTokenHeader writes "TOKEN1 in TOKEN2" across the box and underlines it.
// Token logos are not loaded; the symbols stand in for them.
func drawTokenHeader(cfg Config, tokens [2]types.Token, ctx canvas.Canvas, size types.Size) {
	spacing := size.Width - 2*tokenGlyphSize - 2*PaddingX
	textY := PaddingY + (tokenGlyphSize+cfg.FontSize)/2

	ctx.FillText(tokens[0].Symbol, PaddingX, textY)
	ctx.FillText(tokens[1].Symbol, PaddingX+symbolOffset+spacing, textY)
	ctx.FillText("in", PaddingX+tokenGlyphSize+(spacing-ctx.MeasureText("in"))/2, textY)

	lineY := PaddingY + tokenGlyphSize + separatorOffset
	ctx.BeginPath()
	ctx.MoveTo(PaddingX, lineY)
	ctx.LineTo(size.Width-PaddingX, lineY)
	ctx.Stroke()
}

// rgba converts a hex color with opacity, passing unparseable colors through
// unchanged.
func rgba(hex string, opacity float64) string {
	color, err := canvas.HexToRGBA(hex, opacity)
	if err != nil {
		return hex
	}

	return color
}
