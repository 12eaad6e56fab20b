package tooltip

import (
	"github.com/rxtech-lab/argo-chart/internal/svg"
	"github.com/rxtech-lab/argo-chart/internal/types"
)

// ContentClassName is the class of the group holding the tooltip box.
const ContentClassName = "argo-chart-tooltip-content"

// SVGTree builds the tooltip tree for a computed pointer: the highlight band
// followed by the box group translated to the pointer origin.
func SVGTree[T any](props Props[T], pointer Pointer, chartHeight float64) *svg.Node {
	props = props.withDefaults()
	shape := pointer.Shape(props.Config)

	band := svg.El("rect", []svg.Attr{
		svg.A("x", pointer.BandX()),
		svg.A("y", 0.0),
		svg.A("width", pointer.PointWidth),
		svg.A("height", chartHeight),
		svg.A("fill", props.BgFill),
		svg.A("opacity", props.BgOpacity),
	})

	box := svg.El("g", []svg.Attr{
		svg.A("class", ContentClassName),
		svg.A("transform", svg.Translate(pointer.Origin.X, pointer.Origin.Y)),
	},
		props.BackgroundShapeSVG(props.Config, shape),
		props.TooltipSVG(props.Config, pointer.Content),
	)

	return svg.El("g", nil, band, box)
}

// BackgroundShapeSVG draws the box rectangle.
func BackgroundShapeSVG(cfg Config, size types.Size) *svg.Node {
	return svg.El("rect", []svg.Attr{
		svg.A("height", size.Height),
		svg.A("width", size.Width),
		svg.A("fill", cfg.Fill),
		svg.A("opacity", cfg.Opacity),
		svg.A("stroke", cfg.Stroke),
	})
}

// TooltipSVG draws the header and rows as tspans of one text element. Rows
// read "label: value", left-aligned.
func TooltipSVG(cfg Config, content types.TooltipContent) *svg.Node {
	startY := PaddingY + cfg.FontSize*0.9

	text := svg.El("text", []svg.Attr{
		svg.A("font-family", cfg.FontFamily),
		svg.A("font-size", cfg.FontSize),
		svg.A("fill", cfg.FontFill),
	}, tspan([]svg.Attr{svg.A("x", PaddingX), svg.A("y", startY)}, content.X))

	for i, row := range content.Y {
		textY := startY + cfg.FontSize*float64(i+1)

		labelAttrs := []svg.Attr{svg.A("x", PaddingX), svg.A("y", textY)}
		if row.Stroke != "" {
			labelAttrs = append(labelAttrs, svg.A("fill", row.Stroke))
		}

		text.Children = append(text.Children,
			tspan(labelAttrs, row.Label),
			tspan(nil, ": "),
			tspan(nil, row.Value),
		)
	}

	return text
}

func tspan(attrs []svg.Attr, body string) *svg.Node {
	n := svg.El("tspan", attrs)
	n.Text = body

	return n
}
