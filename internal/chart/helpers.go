package chart

import "fmt"

// FlowChart draws nodes left to right with an arrow between neighbours.
func FlowChart(nodes []string) Figure {
	x := make([]float64, len(nodes))
	y := make([]float64, len(nodes))
	for i := range nodes {
		x[i] = float64(i)
	}

	annotations := make([]Annotation, 0, len(nodes))
	for i := 0; i+1 < len(nodes); i++ {
		annotations = append(annotations, Annotation{
			X: float64(i+1) - 0.2, Y: 0.0,
			AX: float64(i) + 0.2, AY: 0.0,
			XRef: "x", YRef: "y", AXRef: "x", AYRef: "y",
			ShowArrow: true, ArrowHead: 2,
		})
	}

	return Figure{
		Data: []Trace{{
			Type:         "scatter",
			Mode:         "markers+text",
			X:            floats(x),
			Y:            floats(y),
			Text:         nodes,
			TextPosition: "bottom center",
			Marker:       &Marker{Color: PrimaryBlue, Size: 40},
		}},
		Layout: Layout{
			Height:      200,
			ShowLegend:  boolPtr(false),
			XAxis:       &Axis{Visible: boolPtr(false)},
			YAxis:       &Axis{Visible: boolPtr(false)},
			Annotations: annotations,
		},
	}
}

// Mark is a labelled point on a number line.
type Mark struct {
	Value float64
	Label string
	Color string
}

// NumberLine draws the interval [lo, hi] with the given marks on it.
func NumberLine(lo, hi float64, marks ...Mark) Figure {
	if hi < lo {
		lo, hi = hi, lo
	}
	traces := []Trace{{
		Type: "scatter",
		Mode: "lines",
		X:    floats([]float64{lo, hi}),
		Y:    floats([]float64{0, 0}),
		Line: &LineSpec{Color: TextGrey, Width: 2},
		Name: "range",
	}}
	for i, m := range marks {
		color := m.Color
		if color == "" {
			color = SeriesColor(i)
		}
		label := m.Label
		if label == "" {
			label = fmt.Sprintf("%g", m.Value)
		}
		traces = append(traces, Trace{
			Type:         "scatter",
			Mode:         "markers+text",
			Name:         label,
			X:            floats([]float64{m.Value}),
			Y:            floats([]float64{0}),
			Text:         []string{label},
			TextPosition: "top center",
			Marker:       &Marker{Color: color, Size: 14},
		})
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 1
	}
	return Figure{
		Data: traces,
		Layout: Layout{
			Height:     160,
			ShowLegend: boolPtr(false),
			XAxis:      &Axis{Range: []float64{lo - pad, hi + pad}, ZeroLine: boolPtr(false)},
			YAxis:      &Axis{Visible: boolPtr(false)},
		},
	}
}

// Bar draws one bar per label.
func Bar(title string, labels []string, values []float64) Figure {
	colors := make([]string, len(labels))
	for i := range labels {
		colors[i] = SeriesColor(i)
	}
	return Figure{
		Data: []Trace{{
			Type:   "bar",
			X:      strs(labels),
			Y:      floats(values),
			Marker: &Marker{Color: colors},
		}},
		Layout: Layout{Title: title, Height: 320, ShowLegend: boolPtr(false)},
	}
}

// Line draws y against x.
func Line(title string, x, y []float64) Figure {
	return Figure{
		Data: []Trace{{
			Type:   "scatter",
			Mode:   "lines+markers",
			X:      floats(x),
			Y:      floats(y),
			Line:   &LineSpec{Color: PrimaryBlue, Width: 2},
			Marker: &Marker{Color: PrimaryBlue, Size: 8},
		}},
		Layout: Layout{Title: title, Height: 320, ShowLegend: boolPtr(false)},
	}
}

// Gauge draws a dial showing value on [lo, hi], shaded in thirds.
func Gauge(title string, value, lo, hi float64) Figure {
	third := (hi - lo) / 3
	return Figure{
		Data: []Trace{{
			Type:  "indicator",
			Mode:  "gauge+number",
			Value: &value,
			Gauge: &GaugeSpec{
				Axis: GaugeAxis{Range: [2]float64{lo, hi}},
				Bar:  Marker{Color: PrimaryBlue},
				Steps: []GaugeStep{
					{Range: [2]float64{lo, lo + third}, Color: "#FFEBEE"},
					{Range: [2]float64{lo + third, lo + 2*third}, Color: "#FFF8E1"},
					{Range: [2]float64{lo + 2*third, hi}, Color: "#E8F5E9"},
				},
			},
		}},
		Layout: Layout{Title: title, Height: 260},
	}
}
