// internal/locator/types.go
package locator

// Locator is the structured representation of a topic locator. The zero
// value is the empty locator, which never names a page.
type Locator struct {
	segments []string
}

// Segments returns a copy of the locator's path segments.
func (l Locator) Segments() []string {
	out := make([]string, len(l.segments))
	copy(out, l.segments)
	return out
}

// IsZero reports whether the locator is empty.
func (l Locator) IsZero() bool {
	return len(l.segments) == 0
}

// Leaf returns the last segment, e.g. `t01_variables`.
func (l Locator) Leaf() string {
	if l.IsZero() {
		return ""
	}
	return l.segments[len(l.segments)-1]
}
