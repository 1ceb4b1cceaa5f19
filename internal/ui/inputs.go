package ui

import "net/url"

// ClickedField is the form field carrying the key of the pressed button.
const ClickedField = "_clicked"

// Inputs are the widget values submitted with one render pass.
type Inputs struct {
	Values  map[string][]string
	Clicked string
}

// InputsFromForm extracts widget values from a submitted form. Reserved
// fields (category, topic, lang and anything starting with an underscore
// other than the clicked marker) are not widget values.
func InputsFromForm(form url.Values) Inputs {
	in := Inputs{Values: make(map[string][]string, len(form))}
	for key, vals := range form {
		switch {
		case key == ClickedField:
			if len(vals) > 0 {
				in.Clicked = vals[len(vals)-1]
			}
		case isReserved(key):
		default:
			in.Values[key] = append([]string(nil), vals...)
		}
	}
	return in
}

func isReserved(key string) bool {
	switch key {
	case "category", "topic", "lang":
		return true
	}
	return len(key) > 0 && key[0] == '_'
}

func (in Inputs) lookup(key string) ([]string, bool) {
	if in.Values == nil {
		return nil, false
	}
	vals, ok := in.Values[key]
	return vals, ok
}

func (in Inputs) last(key string) (string, bool) {
	vals, ok := in.lookup(key)
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[len(vals)-1], true
}
