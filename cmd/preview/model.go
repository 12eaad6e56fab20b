package main

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/argo-chart/internal/canvas"
	"github.com/rxtech-lab/argo-chart/internal/tooltip"
	"github.com/rxtech-lab/argo-chart/internal/types"
)

// Model is the preview TUI. The cursor selects the hovered candle.
type Model struct {
	candles  []types.MarketData
	props    tooltip.Props[types.MarketData]
	measurer canvas.TextMeasurer
	cursor   int
	width    int
	height   int
	keys     keyMap
	help     help.Model
}

// NewModel creates a preview over candles with the cursor on the last one.
func NewModel(candles []types.MarketData, cfg tooltip.Config) Model {
	props := tooltip.NewCandleProps(cfg)
	props.ChartID = pricePanelOption()

	cursor := 0
	if len(candles) > 0 {
		cursor = len(candles) - 1
	}

	return Model{
		candles:  candles,
		props:    props,
		measurer: canvas.NewApproxMeasurer(cfg.Font()),
		cursor:   cursor,
		width:    0,
		height:   0,
		keys:     newKeyMap(),
		help:     help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Left):
			m.move(-1)
		case key.Matches(msg, m.keys.Right):
			m.move(1)
		case key.Matches(msg, m.keys.First):
			m.cursor = 0
		case key.Matches(msg, m.keys.Last):
			m.move(len(m.candles))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

func (m *Model) move(delta int) {
	m.cursor += delta

	if m.cursor >= len(m.candles) {
		m.cursor = len(m.candles) - 1
	}

	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Cursor is the index of the hovered candle.
func (m Model) Cursor() int {
	return m.cursor
}
