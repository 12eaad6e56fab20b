package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-chart/internal/canvas"
	"github.com/rxtech-lab/argo-chart/internal/tooltip"
	"github.com/rxtech-lab/argo-chart/internal/types"
)

const (
	pricePanel = "price"
	// chromeRows are the title, status and help lines around the chart.
	chromeRows = 3

	wickRune    = '│'
	bullishRune = '█'
	bearishRune = '░'
	bandRune    = '┊'
)

func pricePanelOption() optional.Option[string] {
	return optional.Some(pricePanel)
}

// plot is the chart grid. One terminal cell stands for cellW x cellH pixels,
// so pixel geometry from the layout maps directly onto cells.
type plot struct {
	state  types.ChartState[types.MarketData]
	priceY types.Scale
	cols   int
	rows   int
	cellW  float64
	cellH  float64
}

// View implements tea.Model.
func (m Model) View() string {
	if len(m.candles) == 0 {
		return EmptyStyle.Render("No candles to show.") + "\n"
	}

	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	p := m.newPlot(m.width, max(m.height-chromeRows, 1))
	grid := p.candles()

	status := ""
	pointer := tooltip.Compute(m.props, p.state, optional.Some(m.measurer))
	if pointer.IsSome() {
		ptr := pointer.Unwrap()
		p.band(grid, ptr)
		p.overlay(grid, m.box(ptr, p), ptr.Origin)
		status = statusLine(ptr.Content)
	}

	var b strings.Builder

	current := m.candles[m.cursor]
	b.WriteString(TitleStyle.Render(fmt.Sprintf("%s  %d/%d", current.Symbol, m.cursor+1, len(m.candles))))
	b.WriteString("\n")

	for _, row := range grid {
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString(status)
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// window returns the visible candles and the cursor position inside them.
// The cursor stays centered until either end of the series is reached.
func (m Model) window(cols int) ([]types.MarketData, int) {
	n := min(len(m.candles), cols)
	start := max(0, min(m.cursor-n/2, len(m.candles)-n))

	return m.candles[start : start+n], m.cursor - start
}

func (m Model) newPlot(cols, rows int) plot {
	cellW := m.props.FontSize * canvas.AverageCharWidth
	cellH := m.props.LineHeight()

	visible, index := m.window(cols)

	low, high := visible[0].Low, visible[0].High
	for _, c := range visible {
		low = math.Min(low, c.Low)
		high = math.Max(high, c.High)
	}

	if high == low {
		high++
		low--
	}

	priceY := types.LinearScale{
		Domain: [2]float64{low, high},
		Range:  [2]float64{(float64(rows) - 0.5) * cellH, 0.5 * cellH},
	}.Func()

	timeX := types.LinearScale{
		Domain: [2]float64{float64(visible[0].Time.Unix()), float64(visible[len(visible)-1].Time.Unix())},
		Range:  [2]float64{0.5 * cellW, (float64(len(visible)) - 0.5) * cellW},
	}.Func()

	hovered := visible[index]

	return plot{
		state: types.ChartState[types.MarketData]{
			Show:             true,
			MouseXY:          [2]float64{timeX(float64(hovered.Time.Unix())), priceY(hovered.Close)},
			CurrentItem:      optional.Some(hovered),
			PlotData:         visible,
			XScale:           timeX,
			XAccessor:        tooltip.CandleXAccessor,
			DisplayXAccessor: tooltip.CandleDisplayX,
			Width:            float64(cols) * cellW,
			Height:           float64(rows) * cellH,
			ChartConfig:      []types.ChartPanel{{ID: pricePanel, YScale: priceY}},
		},
		priceY: priceY,
		cols:   cols,
		rows:   rows,
		cellW:  cellW,
		cellH:  cellH,
	}
}

func (p plot) row(price float64) int {
	return clamp(int(p.priceY(price)/p.cellH), 0, p.rows-1)
}

// candles draws one candle per column: the wick from high to low and the
// body from open to close.
func (p plot) candles() [][]rune {
	grid := make([][]rune, p.rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", p.cols))
	}

	for col, c := range p.state.PlotData {
		for r := p.row(c.High); r <= p.row(c.Low); r++ {
			grid[r][col] = wickRune
		}

		body := bearishRune
		if c.IsBullish() {
			body = bullishRune
		}

		for r := p.row(math.Max(c.Open, c.Close)); r <= p.row(math.Min(c.Open, c.Close)); r++ {
			grid[r][col] = body
		}
	}

	return grid
}

// band marks the empty cells of the highlight band.
func (p plot) band(grid [][]rune, ptr tooltip.Pointer) {
	from := int(math.Round(ptr.BandX() / p.cellW))
	width := max(int(math.Round(ptr.PointWidth/p.cellW)), 1)

	for col := max(from, 0); col < min(from+width, p.cols); col++ {
		for r := range grid {
			if grid[r][col] == ' ' {
				grid[r][col] = bandRune
			}
		}
	}
}

// overlay copies box onto grid with its top-left corner at origin. Cells
// outside the grid are dropped.
func (p plot) overlay(grid [][]rune, box string, origin types.Origin) {
	col0 := int(math.Round(origin.X / p.cellW))
	row0 := int(math.Round(origin.Y / p.cellH))

	for i, line := range strings.Split(box, "\n") {
		r := row0 + i
		if r < 0 || r >= p.rows {
			continue
		}

		for j, ch := range []rune(line) {
			c := col0 + j
			if c < 0 || c >= p.cols {
				continue
			}

			grid[r][c] = ch
		}
	}
}

// box renders the tooltip frame sized in cells from the computed shape. The
// header comes first, then each row with its value against the right edge.
func (m Model) box(ptr tooltip.Pointer, p plot) string {
	shape := ptr.Shape(m.props.Config)
	width := max(int(math.Ceil(shape.Width/p.cellW)), 4)
	height := max(int(math.Ceil(shape.Height/p.cellH)), 3)
	inner := width - 2

	lines := []string{ptr.Content.X}
	for _, row := range ptr.Content.Y {
		gap := max(inner-runeLen(row.Label)-runeLen(row.Value), 2)
		lines = append(lines, row.Label+strings.Repeat(" ", gap)+row.Value)
	}

	return BoxStyle.Width(inner).Height(height - 2).Render(strings.Join(lines, "\n"))
}

// statusLine repeats the tooltip rows below the chart, colored by stroke.
func statusLine(content types.TooltipContent) string {
	parts := []string{content.X}
	for _, row := range content.Y {
		parts = append(parts, RowStyle(row).Render(row.Label+" "+row.Value))
	}

	return strings.Join(parts, "  ")
}

func runeLen(s string) int {
	return len([]rune(s))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
