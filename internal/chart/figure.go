package chart

import (
	"encoding/json"
	"fmt"
)

// Figure is one chart: a list of traces and a layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is a single data series.
type Trace struct {
	Type         string    `json:"type"`
	Mode         string    `json:"mode,omitempty"`
	Name         string    `json:"name,omitempty"`
	X            []any     `json:"x,omitempty"`
	Y            []any     `json:"y,omitempty"`
	Text         []string  `json:"text,omitempty"`
	TextPosition string    `json:"textposition,omitempty"`
	Orientation  string    `json:"orientation,omitempty"`
	Marker       *Marker   `json:"marker,omitempty"`
	Line         *LineSpec `json:"line,omitempty"`

	// Indicator traces.
	Value *float64   `json:"value,omitempty"`
	Gauge *GaugeSpec `json:"gauge,omitempty"`
}

// Marker styles the points or bars of a trace.
type Marker struct {
	Color  any    `json:"color,omitempty"`
	Size   any    `json:"size,omitempty"`
	Symbol string `json:"symbol,omitempty"`
}

// LineSpec styles the line of a scatter trace.
type LineSpec struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Dash  string  `json:"dash,omitempty"`
}

// GaugeSpec describes the dial of an indicator trace.
type GaugeSpec struct {
	Axis  GaugeAxis   `json:"axis"`
	Bar   Marker      `json:"bar"`
	Steps []GaugeStep `json:"steps,omitempty"`
}

type GaugeAxis struct {
	Range [2]float64 `json:"range"`
}

type GaugeStep struct {
	Range [2]float64 `json:"range"`
	Color string     `json:"color"`
}

// Layout holds figure-wide settings.
type Layout struct {
	Title       string       `json:"title,omitempty"`
	Height      int          `json:"height,omitempty"`
	ShowLegend  *bool        `json:"showlegend,omitempty"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
	BarMode     string       `json:"barmode,omitempty"`
}

// Axis configures one axis.
type Axis struct {
	Title    string    `json:"title,omitempty"`
	Range    []float64 `json:"range,omitempty"`
	ShowGrid *bool     `json:"showgrid,omitempty"`
	ZeroLine *bool     `json:"zeroline,omitempty"`
	Visible  *bool     `json:"visible,omitempty"`
	TickVals []float64 `json:"tickvals,omitempty"`
}

// Annotation is a text label, optionally with an arrow from (AX, AY) to (X, Y).
type Annotation struct {
	X         any    `json:"x"`
	Y         any    `json:"y"`
	AX        any    `json:"ax,omitempty"`
	AY        any    `json:"ay,omitempty"`
	XRef      string `json:"xref,omitempty"`
	YRef      string `json:"yref,omitempty"`
	AXRef     string `json:"axref,omitempty"`
	AYRef     string `json:"ayref,omitempty"`
	Text      string `json:"text"`
	ShowArrow bool   `json:"showarrow"`
	ArrowHead int    `json:"arrowhead,omitempty"`
}

// JSON serialises the figure for embedding in a page.
func (f Figure) JSON() (string, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("failed to encode figure: %w", err)
	}
	return string(b), nil
}

func boolPtr(b bool) *bool { return &b }

func floats(vs []float64) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

func strs(vs []string) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}
