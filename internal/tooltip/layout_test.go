package tooltip

import (
	"strings"
	"testing"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-chart/internal/canvas"
	"github.com/rxtech-lab/argo-chart/internal/types"
	"github.com/stretchr/testify/suite"
)

// charMeasurer gives every rune the same width.
type charMeasurer struct {
	perRune float64
	font    canvas.Font
}

func (m *charMeasurer) SetFont(font canvas.Font) {
	m.font = font
}

func (m *charMeasurer) MeasureText(text string) float64 {
	return float64(len([]rune(text))) * m.perRune
}

type samplePoint struct {
	x     float64
	price float64
	noX   bool
}

func sampleContent(p samplePoint, _ func(samplePoint) string) types.TooltipContent {
	return types.TooltipContent{
		X: "Header",
		Y: []types.TooltipRow{
			{Label: "Open", Value: "1.00", Stroke: "#26A69A"},
			{Label: "Close", Value: "2.00"},
		},
	}
}

// sampleState is an 11 point window over x = 0..10 at 50px per unit on a
// 500x300 chart.
func sampleState(hovered int, mouseY float64) types.ChartState[samplePoint] {
	points := make([]samplePoint, 11)
	for i := range points {
		points[i] = samplePoint{x: float64(i), price: float64(i * 10)}
	}

	return types.ChartState[samplePoint]{
		Show:        true,
		MouseXY:     [2]float64{float64(hovered) * 50, mouseY},
		CurrentItem: optional.Some(points[hovered]),
		PlotData:    points,
		XScale:      func(v float64) float64 { return v * 50 },
		XAccessor: func(p samplePoint) optional.Option[float64] {
			if p.noX {
				return optional.None[float64]()
			}

			return optional.Some(p.x)
		},
		DisplayXAccessor: func(p samplePoint) string { return "x" },
		Width:            500,
		Height:           300,
		ChartConfig:      nil,
	}
}

func measurer() optional.Option[canvas.TextMeasurer] {
	return optional.Some[canvas.TextMeasurer](&charMeasurer{perRune: 10})
}

type LayoutTestSuite struct {
	suite.Suite
	props Props[samplePoint]
}

func TestLayoutSuite(t *testing.T) {
	suite.Run(t, new(LayoutTestSuite))
}

func (suite *LayoutTestSuite) SetupTest() {
	suite.props = NewProps(sampleContent)
}

func (suite *LayoutTestSuite) TestCalculateTooltipSize() {
	m := &charMeasurer{perRune: 10}
	content := sampleContent(samplePoint{}, nil)

	size := CalculateTooltipSize(DefaultConfig(), content, m)

	// widest line is "Close  2.00" (11 runes), three lines of 12+5
	suite.Equal(110.0+2*PaddingX, size.Width)
	suite.Equal(3*17.0+2*PaddingY+HeaderAllowance, size.Height)
	suite.True(m.font.Bold)
	suite.Equal(12.0, m.font.Size)
}

func (suite *LayoutTestSuite) TestCalculateTooltipSizeHeaderOnly() {
	size := CalculateTooltipSize(DefaultConfig(), types.TooltipContent{X: "2024-01-01 09:30"}, &charMeasurer{perRune: 10})

	suite.Equal(160.0+20, size.Width)
	suite.Equal(17.0+20+42, size.Height)
}

func (suite *LayoutTestSuite) TestBoxWidthGrowsWithLongestRow() {
	m := &charMeasurer{perRune: 7}
	previous := 0.0

	for n := 0; n < 30; n++ {
		content := types.TooltipContent{
			X: "Header",
			Y: []types.TooltipRow{
				{Label: "Open", Value: "1"},
				{Label: "Volume", Value: strings.Repeat("9", n)},
			},
		}

		width := CalculateTooltipSize(DefaultConfig(), content, m).Width
		suite.GreaterOrEqual(width, previous)
		previous = width
	}
}

func (suite *LayoutTestSuite) TestComputeLeftHalfPlacesBoxRight() {
	pointer := Compute(suite.props, sampleState(2, 50), measurer())
	suite.Require().True(pointer.IsSome())

	p := pointer.Unwrap()
	suite.Equal(100.0, p.CenterX)
	suite.Equal(50.0, p.PointWidth)
	suite.Equal(types.Size{Width: 130, Height: 113}, p.Size)
	suite.Equal(100.0+25+Gap, p.Origin.X)
	suite.GreaterOrEqual(p.Origin.X, 100.0)
	// 50 - 113 <= 0, so the box goes below the cursor
	suite.Equal(50.0+Gap, p.Origin.Y)
	suite.Equal("Header", p.Content.X)
}

func (suite *LayoutTestSuite) TestComputeRightHalfPlacesBoxLeft() {
	pointer := Compute(suite.props, sampleState(8, 200), measurer())
	suite.Require().True(pointer.IsSome())

	p := pointer.Unwrap()
	suite.Equal(400.0-130-25-Gap, p.Origin.X)
	suite.LessOrEqual(p.Origin.X+p.Size.Width, 400.0)
	suite.Equal(200.0-113-Gap, p.Origin.Y)
}

func (suite *LayoutTestSuite) TestHorizontalPlacementProperty() {
	for i := 0; i <= 10; i++ {
		p := Compute(suite.props, sampleState(i, 150), measurer()).Unwrap()
		cursorX := float64(i) * 50

		if cursorX < 250 {
			suite.GreaterOrEqual(p.Origin.X, cursorX, "index %d", i)
		} else {
			suite.LessOrEqual(p.Origin.X+p.Size.Width, cursorX, "index %d", i)
		}
	}
}

func (suite *LayoutTestSuite) TestComputeReturnsNoneWithoutHoverTarget() {
	tests := []struct {
		name  string
		state func() types.ChartState[samplePoint]
	}{
		{
			name: "cursor outside chart",
			state: func() types.ChartState[samplePoint] {
				s := sampleState(3, 50)
				s.Show = false

				return s
			},
		},
		{
			name: "no current item",
			state: func() types.ChartState[samplePoint] {
				s := sampleState(3, 50)
				s.CurrentItem = optional.None[samplePoint]()

				return s
			},
		},
		{
			name: "current item without x",
			state: func() types.ChartState[samplePoint] {
				s := sampleState(3, 50)
				s.CurrentItem = optional.Some(samplePoint{noX: true})

				return s
			},
		},
		{
			name: "no x scale",
			state: func() types.ChartState[samplePoint] {
				s := sampleState(3, 50)
				s.XScale = nil

				return s
			},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.True(Compute(suite.props, tt.state(), measurer()).IsNone())
		})
	}
}

func (suite *LayoutTestSuite) TestComputeWithoutContentFunc() {
	props := NewProps[samplePoint](nil)
	suite.True(Compute(props, sampleState(3, 50), measurer()).IsNone())
}

func (suite *LayoutTestSuite) TestPointWidth() {
	state := sampleState(0, 0)
	suite.Equal(50.0, PointWidth(state))

	state.PlotData = state.PlotData[:1]
	suite.Zero(PointWidth(state))

	state.PlotData = nil
	suite.Zero(PointWidth(state))
}

func (suite *LayoutTestSuite) TestOriginUsesConfiguredPanel() {
	props := suite.props
	props.ChartID = optional.Some("price")
	props.YAccessor = func(p samplePoint) float64 { return p.price }

	state := sampleState(8, 10)
	state.ChartConfig = []types.ChartPanel{
		{ID: "volume", YScale: func(v float64) float64 { return 0 }},
		{ID: "price", YScale: func(v float64) float64 { return 300 - v }},
	}

	p := Compute(props, state, measurer()).Unwrap()
	// price 80 maps to y 220, far enough down to fit the box above
	suite.Equal(220.0-113-Gap, p.Origin.Y)
}

func (suite *LayoutTestSuite) TestOriginFallsBackToCursorWithoutPanel() {
	props := suite.props
	props.ChartID = optional.Some("missing")
	props.YAccessor = func(p samplePoint) float64 { return p.price }

	state := sampleState(8, 10)
	state.ChartConfig = []types.ChartPanel{{ID: "price", YScale: func(v float64) float64 { return 300 - v }}}

	p := Compute(props, state, measurer()).Unwrap()
	suite.Equal(10.0+Gap, p.Origin.Y)
}

func (suite *LayoutTestSuite) TestOriginIgnoresPanelWithoutYAccessor() {
	props := suite.props
	props.ChartID = optional.Some("price")

	state := sampleState(8, 10)
	state.ChartConfig = []types.ChartPanel{{ID: "price", YScale: func(v float64) float64 { return 250 }}}

	p := Compute(props, state, measurer()).Unwrap()
	suite.Equal(10.0+Gap, p.Origin.Y)
}

func (suite *LayoutTestSuite) TestCustomSizeAndOrigin() {
	props := suite.props
	props.CalculateSize = func(Config, types.TooltipContent, canvas.TextMeasurer) types.Size {
		return types.Size{Width: 10, Height: 20}
	}
	props.Origin = func(Props[samplePoint], types.ChartState[samplePoint], types.Size, float64) types.Origin {
		return types.Origin{X: 1, Y: 2}
	}

	p := Compute(props, sampleState(4, 100), measurer()).Unwrap()
	suite.Equal(types.Size{Width: 10, Height: 20}, p.Size)
	suite.Equal(types.Origin{X: 1, Y: 2}, p.Origin)
}

func (suite *LayoutTestSuite) TestComputeWithTransientMeasurer() {
	p := Compute(suite.props, sampleState(2, 50), optional.None[canvas.TextMeasurer]())
	suite.Require().True(p.IsSome())
	suite.Greater(p.Unwrap().Size.Width, 2*PaddingX)
}

func (suite *LayoutTestSuite) TestNormalize() {
	size := types.Size{Width: 100, Height: 80}

	suite.Equal(10.0+5+Gap, NormalizeX(10, size, 10, 400))
	suite.Equal(200.0-100-5-Gap, NormalizeX(200, size, 10, 400))
	suite.Equal(80.0+Gap, NormalizeY(80, size))
	suite.Equal(81.0-80-Gap, NormalizeY(81, size))
}

func (suite *LayoutTestSuite) TestPointerShape() {
	p := Pointer{Size: types.Size{Width: 90, Height: 70}}
	cfg := DefaultConfig()
	suite.Equal(p.Size, p.Shape(cfg))

	w := 150.0
	cfg.BgWidth = &w
	suite.Equal(p.Size, p.Shape(cfg))

	h := 60.0
	cfg.BgHeight = &h
	suite.Equal(types.Size{Width: 150, Height: 60}, p.Shape(cfg))
}

func (suite *LayoutTestSuite) TestRoundHalfUp() {
	suite.Equal(3.0, round(2.5))
	suite.Equal(-2.0, round(-2.5))
	suite.Equal(2.0, round(2.49))
}
