// Package pyfmt formats Go values the way Python's repr() prints them, so
// lesson pages can show what the equivalent Python program would output.
package pyfmt

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// Bool returns True or False.
func Bool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// Str quotes s with single quotes unless s contains one and no double quote.
func Str(s string) string {
	quote := "'"
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		quote = `"`
	}
	var b strings.Builder
	b.WriteString(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case string(r) == quote:
			b.WriteString(`\` + quote)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteString(quote)
	return b.String()
}

// Float formats f like Python: whole numbers keep a trailing ".0".
func Float(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Number formats f as an int when it is whole, as a float otherwise.
func Number(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return Float(f)
}

// Strings formats a list of strings.
func Strings(items []string) string {
	parts := make([]string, len(items))
	for i, s := range items {
		parts[i] = Str(s)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Ints formats a list of ints.
func Ints(items []int) string {
	parts := make([]string, len(items))
	for i, n := range items {
		parts[i] = strconv.Itoa(n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Set formats items as a Python set literal in sorted order; an empty set is
// set().
func Set(items []string) string {
	if len(items) == 0 {
		return "set()"
	}
	sorted := slices.Clone(items)
	slices.Sort(sorted)
	parts := make([]string, len(sorted))
	for i, s := range sorted {
		parts[i] = Str(s)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Dict formats key/value pairs in the given key order. Values are already
// formatted.
func Dict(keys []string, values map[string]string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, Str(k)+": "+values[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
