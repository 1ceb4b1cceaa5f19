package ui

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// WidgetKind identifies the type of a widget.
type WidgetKind string

const (
	WidgetTextInput   WidgetKind = "text_input"
	WidgetTextArea    WidgetKind = "text_area"
	WidgetNumber      WidgetKind = "number"
	WidgetSlider      WidgetKind = "slider"
	WidgetRangeSlider WidgetKind = "range_slider"
	WidgetCheckbox    WidgetKind = "checkbox"
	WidgetSelect      WidgetKind = "select"
	WidgetRadio       WidgetKind = "radio"
	WidgetMultiSelect WidgetKind = "multiselect"
	WidgetButton      WidgetKind = "button"
)

// Widget is an input element registered during a pass, together with the
// value it resolved to.
type Widget struct {
	Kind        WidgetKind
	Key         string
	Label       string
	Help        string
	Placeholder string
	Password    bool
	Integer     bool
	Rows        int
	Options     []string

	Min, Max *float64
	Step     float64

	// Resolved value: string, float64, int, bool, []string or [2]float64.
	Value any

	explicitKey string
	index       int
}

// Option customises a widget.
type Option func(*Widget)

// Key sets an explicit widget key instead of one derived from the label.
func Key(key string) Option { return func(w *Widget) { w.explicitKey = key } }

// Range bounds a numeric widget.
func Range(lo, hi float64) Option {
	return func(w *Widget) {
		if hi < lo {
			lo, hi = hi, lo
		}
		w.Min, w.Max = &lo, &hi
	}
}

// Step sets the increment of a numeric widget.
func Step(step float64) Option { return func(w *Widget) { w.Step = step } }

// Help attaches a tooltip.
func Help(text string) Option { return func(w *Widget) { w.Help = text } }

// Index selects the default option of a Select or Radio.
func Index(i int) Option { return func(w *Widget) { w.index = i } }

// Password masks a text input.
func Password() Option { return func(w *Widget) { w.Password = true } }

// Placeholder sets the hint shown in an empty text field.
func Placeholder(text string) Option { return func(w *Widget) { w.Placeholder = text } }

// Rows sets the height of a text area.
func Rows(n int) Option { return func(w *Widget) { w.Rows = n } }

func (s *Surface) widget(kind WidgetKind, label string, opts []Option) *Widget {
	w := &Widget{Kind: kind, Label: label}
	for _, opt := range opts {
		opt(w)
	}
	key := w.explicitKey
	if key == "" {
		key = Slug(label)
	}
	w.Key = s.pass.claim(key)
	s.pass.widgets = append(s.pass.widgets, w)
	s.add(&Block{Kind: KindWidget, Widget: w})
	return w
}

// TextInput renders a single-line text field.
func (s *Surface) TextInput(label, def string, opts ...Option) string {
	w := s.widget(WidgetTextInput, label, opts)
	v, ok := s.pass.inputs.last(w.Key)
	if !ok {
		v = def
	}
	w.Value = v
	return v
}

// TextArea renders a multi-line text field.
func (s *Surface) TextArea(label, def string, opts ...Option) string {
	w := s.widget(WidgetTextArea, label, opts)
	if w.Rows == 0 {
		w.Rows = 5
	}
	v, ok := s.pass.inputs.last(w.Key)
	if !ok {
		v = def
	}
	v = strings.ReplaceAll(v, "\r\n", "\n")
	w.Value = v
	return v
}

// Number renders a float input.
func (s *Surface) Number(label string, def float64, opts ...Option) float64 {
	w := s.widget(WidgetNumber, label, opts)
	v := w.clamp(s.parseFloat(w.Key, def))
	w.Value = v
	return v
}

// Int renders an integer input.
func (s *Surface) Int(label string, def int, opts ...Option) int {
	w := s.widget(WidgetNumber, label, opts)
	w.Integer = true
	if w.Step == 0 {
		w.Step = 1
	}
	v := wholeNumber(w.clamp(math.Round(s.parseFloat(w.Key, float64(def)))), def)
	w.Value = v
	return v
}

// Slider renders an integer slider on [lo, hi].
func (s *Surface) Slider(label string, lo, hi, def int, opts ...Option) int {
	opts = append([]Option{Range(float64(lo), float64(hi)), Step(1)}, opts...)
	w := s.widget(WidgetSlider, label, opts)
	w.Integer = true
	v := wholeNumber(w.clamp(math.Round(s.parseFloat(w.Key, float64(def)))), def)
	w.Value = v
	return v
}

// FloatSlider renders a float slider on [lo, hi].
func (s *Surface) FloatSlider(label string, lo, hi, def float64, opts ...Option) float64 {
	opts = append([]Option{Range(lo, hi), Step((hi - lo) / 100)}, opts...)
	w := s.widget(WidgetSlider, label, opts)
	v := w.clamp(s.parseFloat(w.Key, def))
	w.Value = v
	return v
}

// RangeSlider renders a two-handle integer slider and returns the ordered
// pair of selected values.
func (s *Surface) RangeSlider(label string, lo, hi, defLo, defHi int, opts ...Option) (int, int) {
	opts = append([]Option{Range(float64(lo), float64(hi)), Step(1)}, opts...)
	w := s.widget(WidgetRangeSlider, label, opts)
	w.Integer = true

	a, b := float64(defLo), float64(defHi)
	if vals, ok := s.pass.inputs.lookup(w.Key); ok && len(vals) >= 2 {
		if x, err := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64); err == nil && !math.IsNaN(x) {
			a = x
		}
		if y, err := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64); err == nil && !math.IsNaN(y) {
			b = y
		}
	}
	a, b = w.clamp(math.Round(a)), w.clamp(math.Round(b))
	if a > b {
		a, b = b, a
	}
	w.Value = [2]float64{a, b}
	return int(a), int(b)
}

// Checkbox renders a checkbox.
func (s *Surface) Checkbox(label string, def bool, opts ...Option) bool {
	w := s.widget(WidgetCheckbox, label, opts)
	v := def
	if raw, ok := s.pass.inputs.last(w.Key); ok {
		switch strings.ToLower(raw) {
		case "on", "true", "1", "yes":
			v = true
		case "off", "false", "0", "no", "":
			v = false
		}
	}
	w.Value = v
	return v
}

// Select renders a drop-down. The default is the option at Index (0 unless
// set). An empty option list yields "".
func (s *Surface) Select(label string, options []string, opts ...Option) string {
	return s.choice(WidgetSelect, label, options, opts)
}

// Radio renders a radio group with the same semantics as Select.
func (s *Surface) Radio(label string, options []string, opts ...Option) string {
	return s.choice(WidgetRadio, label, options, opts)
}

func (s *Surface) choice(kind WidgetKind, label string, options []string, opts []Option) string {
	w := s.widget(kind, label, opts)
	w.Options = options
	if len(options) == 0 {
		w.Value = ""
		return ""
	}
	idx := w.index
	if idx < 0 || idx >= len(options) {
		idx = 0
	}
	v := options[idx]
	if raw, ok := s.pass.inputs.last(w.Key); ok && slices.Contains(options, raw) {
		v = raw
	}
	w.Value = v
	return v
}

// MultiSelect renders a multi-choice list. Submitted values that are not
// among the options are dropped; so are defaults.
func (s *Surface) MultiSelect(label string, options, def []string, opts ...Option) []string {
	w := s.widget(WidgetMultiSelect, label, opts)
	w.Options = options

	source := def
	if vals, ok := s.pass.inputs.lookup(w.Key); ok {
		source = vals
	}
	v := make([]string, 0, len(source))
	for _, candidate := range source {
		if slices.Contains(options, candidate) && !slices.Contains(v, candidate) {
			v = append(v, candidate)
		}
	}
	w.Value = v
	return v
}

// Button renders a button and reports whether it triggered this pass.
func (s *Surface) Button(label string, opts ...Option) bool {
	w := s.widget(WidgetButton, label, opts)
	clicked := s.pass.inputs.Clicked == w.Key
	w.Value = clicked
	return clicked
}

func (s *Surface) parseFloat(key string, def float64) float64 {
	raw, ok := s.pass.inputs.last(key)
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// MaxWholeNumber is the largest magnitude an integer widget accepts; float64
// represents every whole number up to it exactly.
const MaxWholeNumber = 1 << 53

// wholeNumber converts a rounded value to int, or returns def when the value
// is too large to be exact.
func wholeNumber(v float64, def int) int {
	if math.Abs(v) > MaxWholeNumber {
		return def
	}
	return int(v)
}

func (w *Widget) clamp(v float64) float64 {
	if w.Min != nil && v < *w.Min {
		v = *w.Min
	}
	if w.Max != nil && v > *w.Max {
		v = *w.Max
	}
	return v
}

// Display returns the value as it appears in a text or number field.
func (w *Widget) Display() string {
	switch v := w.Value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return formatFloat(v)
	case bool:
		return strconv.FormatBool(v)
	case []string:
		return strings.Join(v, ", ")
	case [2]float64:
		return formatFloat(v[0]) + " to " + formatFloat(v[1])
	}
	return ""
}

// Checked reports whether a checkbox is ticked.
func (w *Widget) Checked() bool {
	b, _ := w.Value.(bool)
	return b
}

// IsSelected reports whether opt is the current choice of a Select, Radio or
// MultiSelect.
func (w *Widget) IsSelected(opt string) bool {
	switch v := w.Value.(type) {
	case string:
		return v == opt
	case []string:
		return slices.Contains(v, opt)
	}
	return false
}

// Low and High return the ends of a range slider.
func (w *Widget) Low() string  { return w.rangeEnd(0) }
func (w *Widget) High() string { return w.rangeEnd(1) }

func (w *Widget) rangeEnd(i int) string {
	if r, ok := w.Value.([2]float64); ok {
		return formatFloat(r[i])
	}
	return ""
}

// MinAttr, MaxAttr and StepAttr format the numeric bounds for HTML attributes.
func (w *Widget) MinAttr() string { return optionalFloat(w.Min) }
func (w *Widget) MaxAttr() string { return optionalFloat(w.Max) }

func (w *Widget) StepAttr() string {
	if w.Step <= 0 {
		return "any"
	}
	return formatFloat(w.Step)
}

func optionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
