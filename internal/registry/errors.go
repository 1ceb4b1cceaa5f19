package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

var (
	// ErrUnknownCategory is matched by every *UnknownCategoryError.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnknownTopic is matched by every *UnknownTopicError.
	ErrUnknownTopic = errors.New("unknown topic")
)

// UnknownCategoryError reports a category label absent from the catalog.
type UnknownCategoryError struct {
	Category   string
	Suggestion string
}

func (e *UnknownCategoryError) Error() string {
	msg := fmt.Sprintf("unknown category %q", e.Category)
	if e.Suggestion != "" {
		msg += fmt.Sprintf("; did you mean %q?", e.Suggestion)
	}
	return msg
}

func (e *UnknownCategoryError) Is(target error) bool { return target == ErrUnknownCategory }

// UnknownTopicError reports a topic label absent from an existing category.
type UnknownTopicError struct {
	Category   string
	Topic      string
	Suggestion string
}

func (e *UnknownTopicError) Error() string {
	msg := fmt.Sprintf("unknown topic %q in category %q", e.Topic, e.Category)
	if e.Suggestion != "" {
		msg += fmt.Sprintf("; did you mean %q?", e.Suggestion)
	}
	return msg
}

func (e *UnknownTopicError) Is(target error) bool { return target == ErrUnknownTopic }

// ValidationError lists the mismatches between the catalog and the page table.
type ValidationError struct {
	Missing []string // catalog locators without a page
	Orphans []string // pages no catalog topic points to
}

func (e *ValidationError) Error() string {
	var errs []string
	for _, loc := range e.Missing {
		errs = append(errs, fmt.Sprintf("topic locator '%s' has no registered page", loc))
	}
	for _, loc := range e.Orphans {
		errs = append(errs, fmt.Sprintf("page '%s' is registered but not referenced by the catalog", loc))
	}
	return fmt.Sprintf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
}

// suggest returns the candidate closest to label, or "" when nothing is
// close enough to be a plausible typo.
func suggest(label string, candidates []string) string {
	if label == "" {
		return ""
	}
	threshold := max(2, len([]rune(label))/3)
	best, bestDist := "", threshold+1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(strings.ToLower(label), strings.ToLower(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
