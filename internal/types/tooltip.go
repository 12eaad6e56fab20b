package types

// TooltipRow is one label/value line of a hover tooltip.
type TooltipRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
	// Stroke is the line color. Empty means the tooltip font color is used.
	Stroke string `json:"stroke,omitempty"`
}

// TooltipContent is what the tooltip shows for the hovered point: a header
// label (usually the formatted x value) followed by the rows in order.
type TooltipContent struct {
	X string       `json:"x"`
	Y []TooltipRow `json:"y"`
}

// Size is the width and height of the tooltip box in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Origin is the top-left anchor of the tooltip box in chart pixels.
type Origin struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Token is one of the two assets shown in the tooltip header row.
type Token struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	// Logo is the logo URL. Logos are not loaded; the symbol is drawn instead.
	Logo string `json:"logo,omitempty" yaml:"logo,omitempty"`
}

// Margin is the chart margin inside the drawing surface.
type Margin struct {
	Left   float64 `json:"left" yaml:"left"`
	Right  float64 `json:"right" yaml:"right"`
	Top    float64 `json:"top" yaml:"top"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
}
