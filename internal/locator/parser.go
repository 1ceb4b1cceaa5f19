// internal/locator/parser.go
package locator

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches a single segment of a locator, e.g. `t01_basics`.
var segmentRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Parse creates a Locator by parsing its canonical string representation.
func Parse(raw string) (Locator, error) {
	if raw == "" {
		return Locator{}, fmt.Errorf("locator cannot be empty")
	}

	parts := strings.Split(raw, ".")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return Locator{}, fmt.Errorf("locator %q contains an empty segment", raw)
		}
		if !segmentRegex.MatchString(part) {
			return Locator{}, fmt.Errorf("invalid locator segment %q in %q", part, raw)
		}
		segments = append(segments, part)
	}

	return Locator{segments: segments}, nil
}

// MustParse is like Parse but panics on error. It is meant for locators
// spelled out as constants in lesson modules.
func MustParse(raw string) Locator {
	l, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return l
}
