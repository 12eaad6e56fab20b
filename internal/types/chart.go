package types

import (
	"github.com/moznion/go-optional"
)

// EventKind is the kind of host interaction event.
type EventKind string

const (
	EventMouseMove  EventKind = "mousemove"
	EventPan        EventKind = "pan"
	EventMouseLeave EventKind = "mouseleave"
	EventZoom       EventKind = "zoom"
)

// Scale maps a domain value to a pixel coordinate.
type Scale func(value float64) float64

// ChartPanel is a secondary chart with its own vertical scale.
type ChartPanel struct {
	ID     string
	YScale Scale
}

// ChartState is everything the host chart knows at the time of an event.
type ChartState[T any] struct {
	// Show is false while the cursor is outside the chart.
	Show bool
	// MouseXY is the cursor position in chart pixels.
	MouseXY [2]float64
	// CurrentItem is the data point nearest to the cursor.
	CurrentItem optional.Option[T]
	// PlotData is the visible data window, ordered along x.
	PlotData []T
	XScale   Scale
	// XAccessor returns the x domain value of an item, or None when the item
	// has no x position.
	XAccessor        func(item T) optional.Option[float64]
	DisplayXAccessor func(item T) string
	// Width and Height are the chart dimensions in pixels.
	Width       float64
	Height      float64
	ChartConfig []ChartPanel
}

// Event is a host interaction event carrying the chart state.
type Event[T any] struct {
	Kind  EventKind
	State ChartState[T]
}

// LinearScale is a serialisable linear mapping from Domain to Range.
type LinearScale struct {
	Domain [2]float64 `json:"domain"`
	Range  [2]float64 `json:"range"`
}

// Apply maps v into the range. A zero-width domain maps everything to Range[0].
func (s LinearScale) Apply(v float64) float64 {
	span := s.Domain[1] - s.Domain[0]
	if span == 0 {
		return s.Range[0]
	}

	return s.Range[0] + (v-s.Domain[0])/span*(s.Range[1]-s.Range[0])
}

// Func returns the scale as a Scale function.
func (s LinearScale) Func() Scale {
	return s.Apply
}
