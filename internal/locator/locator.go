// internal/locator/locator.go
package locator

import "strings"

// String serializes the Locator into its canonical dotted representation.
func (l Locator) String() string {
	return strings.Join(l.segments, ".")
}

// Equal checks whether two locators name the same page.
func (l Locator) Equal(other Locator) bool {
	if len(l.segments) != len(other.segments) {
		return false
	}
	for i := range l.segments {
		if l.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}

// MarshalText implements encoding.TextMarshaler.
func (l Locator) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Locator) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
