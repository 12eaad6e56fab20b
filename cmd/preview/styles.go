package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/argo-chart/internal/types"
)

var (
	// TitleStyle for the header line.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// BoxStyle frames the tooltip. It carries no colors so the frame can be
	// overlaid cell by cell on the chart grid.
	BoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())

	// EmptyStyle for the message shown without candles.
	EmptyStyle = lipgloss.NewStyle().Faint(true)
)

// RowStyle colors a tooltip row by its stroke. Rows without a stroke are
// left unstyled.
func RowStyle(row types.TooltipRow) lipgloss.Style {
	if row.Stroke == "" {
		return lipgloss.NewStyle()
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color(row.Stroke))
}
