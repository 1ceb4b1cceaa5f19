package ui

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inputs(kv ...string) Inputs {
	in := Inputs{Values: map[string][]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		in.Values[kv[i]] = append(in.Values[kv[i]], kv[i+1])
	}
	return in
}

func TestSlug(t *testing.T) {
	testCases := []struct {
		label string
		want  string
	}{
		{"Enter your name:", "enter_your_name"},
		{"  Number 1  ", "number_1"},
		{"Choose an example:", "choose_an_example"},
		{"???", "widget"},
		{"Введите число", "введите_число"},
	}
	for _, tc := range testCases {
		t.Run(tc.label, func(t *testing.T) {
			assert.Equal(t, tc.want, Slug(tc.label))
		})
	}
}

func TestWidgetKeys_UniquePerPass(t *testing.T) {
	s := NewSurface(Inputs{})
	s.TextInput("Name", "")
	s.TextInput("Name", "")
	cols := s.Columns(2)
	cols[0].TextInput("Name", "")
	cols[1].Int("Age", 0, Key("custom"))
	require.Len(t, s.Widgets(), 4)

	var keys []string
	for _, w := range s.Widgets() {
		keys = append(keys, w.Key)
	}
	if diff := cmp.Diff([]string{"name", "name_2", "name_3", "custom"}, keys); diff != "" {
		t.Errorf("widget keys mismatch (-want +got):\n%s", diff)
	}
}

func TestWidgetKeys_StableAcrossPasses(t *testing.T) {
	render := func(in Inputs) []string {
		s := NewSurface(in)
		s.Slider("Value", 0, 10, 5)
		s.Slider("Value", 0, 10, 5)
		var keys []string
		for _, w := range s.Widgets() {
			keys = append(keys, w.Key)
		}
		return keys
	}
	assert.Equal(t, render(Inputs{}), render(inputs("value", "3")))
}

func TestTextInput(t *testing.T) {
	s := NewSurface(inputs("name", "Alice"))
	assert.Equal(t, "Alice", s.TextInput("Name", "Bob"))
	assert.Equal(t, "Bob", NewSurface(Inputs{}).TextInput("Name", "Bob"))
}

func TestTextArea_NormalisesLineEndings(t *testing.T) {
	s := NewSurface(inputs("code", "a\r\nb"))
	assert.Equal(t, "a\nb", s.TextArea("Code", ""))
}

func TestNumericWidgets(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		got  func(s *Surface) any
		want any
	}{
		{"number parses", "2.5", func(s *Surface) any { return s.Number("X", 1) }, 2.5},
		{"number falls back on garbage", "abc", func(s *Surface) any { return s.Number("X", 1) }, 1.0},
		{"number rejects NaN", "NaN", func(s *Surface) any { return s.Number("X", 1) }, 1.0},
		{"number clamps high", "50", func(s *Surface) any { return s.Number("X", 1, Range(0, 10)) }, 10.0},
		{"int rounds", "2.6", func(s *Surface) any { return s.Int("X", 0) }, 3},
		{"int clamps low", "-5", func(s *Surface) any { return s.Int("X", 0, Range(0, 10)) }, 0},
		{"int falls back when too large", "1e30", func(s *Surface) any { return s.Int("X", 7) }, 7},
		{"int falls back when too small", "-1e30", func(s *Surface) any { return s.Int("X", 7) }, 7},
		{"int keeps exact large values", "5000000000", func(s *Surface) any { return s.Int("X", 7) }, 5000000000},
		{"int clamps before the size check", "1e30", func(s *Surface) any { return s.Int("X", 7, Range(0, 10)) }, 10},
		{"slider clamps", "99", func(s *Surface) any { return s.Slider("X", 0, 10, 5) }, 10},
		{"slider default", "", func(s *Surface) any { return s.Slider("Y", 0, 10, 5) }, 5},
		{"float slider", "0.3", func(s *Surface) any { return s.FloatSlider("X", 0, 1, 0.5) }, 0.3},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSurface(inputs("x", tc.raw))
			assert.Equal(t, tc.want, tc.got(s))
		})
	}
}

func TestRangeSlider(t *testing.T) {
	lo, hi := NewSurface(Inputs{}).RangeSlider("Span", 0, 100, 20, 80)
	assert.Equal(t, []int{20, 80}, []int{lo, hi})

	lo, hi = NewSurface(inputs("span", "90", "span", "10")).RangeSlider("Span", 0, 100, 20, 80)
	assert.Equal(t, []int{10, 90}, []int{lo, hi}, "ends are reordered")

	lo, hi = NewSurface(inputs("span", "-5", "span", "500")).RangeSlider("Span", 0, 100, 20, 80)
	assert.Equal(t, []int{0, 100}, []int{lo, hi}, "ends are clamped")
}

func TestCheckbox_LastValueWins(t *testing.T) {
	assert.True(t, NewSurface(Inputs{}).Checkbox("Show", true))

	unticked := NewSurface(inputs("show", "off"))
	assert.False(t, unticked.Checkbox("Show", true))

	ticked := NewSurface(inputs("show", "off", "show", "on"))
	assert.True(t, ticked.Checkbox("Show", false))
}

func TestSelectAndRadio(t *testing.T) {
	options := []string{"int", "float", "str"}

	assert.Equal(t, "int", NewSurface(Inputs{}).Select("Type", options))
	assert.Equal(t, "str", NewSurface(Inputs{}).Select("Type", options, Index(2)))
	assert.Equal(t, "int", NewSurface(Inputs{}).Select("Type", options, Index(9)))
	assert.Equal(t, "float", NewSurface(inputs("type", "float")).Radio("Type", options))
	assert.Equal(t, "int", NewSurface(inputs("type", "bogus")).Radio("Type", options), "unknown values fall back to the default")
	assert.Equal(t, "", NewSurface(Inputs{}).Select("Type", nil))
}

func TestMultiSelect(t *testing.T) {
	options := []string{"a", "b", "c"}

	assert.Equal(t, []string{"a"}, NewSurface(Inputs{}).MultiSelect("Pick", options, []string{"a", "z"}))

	got := NewSurface(inputs("pick", "", "pick", "c", "pick", "x", "pick", "c")).MultiSelect("Pick", options, []string{"a"})
	assert.Equal(t, []string{"c"}, got)

	none := NewSurface(inputs("pick", "")).MultiSelect("Pick", options, []string{"a"})
	assert.Empty(t, none, "the sentinel alone means nothing was selected")
}

func TestButton(t *testing.T) {
	s := NewSurface(Inputs{Clicked: "increment"})
	assert.True(t, s.Button("Increment"))
	assert.False(t, s.Button("Reset"))
}

func TestInputsFromForm(t *testing.T) {
	form := url.Values{
		"category":   {"1. Python Basics"},
		"topic":      {"1.1 Variables"},
		"lang":       {"en"},
		"_session":   {"x"},
		ClickedField: {"go"},
		"name":       {"Alice"},
	}
	in := InputsFromForm(form)

	assert.Equal(t, "go", in.Clicked)
	assert.Equal(t, map[string][]string{"name": {"Alice"}}, in.Values)
}
