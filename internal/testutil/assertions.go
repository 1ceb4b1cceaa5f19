package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/aplab/internal/ui"
)

// Walk visits every block of s, descending into containers.
func Walk(s *ui.Surface, fn func(b *ui.Block)) {
	for _, b := range s.Blocks() {
		fn(b)
		for _, c := range b.Children {
			Walk(c, fn)
		}
	}
}

// Banners returns the text of every banner of the given level.
func Banners(s *ui.Surface, level ui.Level) []string {
	var out []string
	Walk(s, func(b *ui.Block) {
		if b.Kind == ui.KindBanner && b.Level == level {
			out = append(out, b.Text)
		}
	})
	return out
}

// Buttons returns the keys of every button rendered on s.
func Buttons(s *ui.Surface) []string {
	var out []string
	for _, w := range s.Widgets() {
		if w.Kind == ui.WidgetButton {
			out = append(out, w.Key)
		}
	}
	return out
}

// AssertBanner fails unless s carries a banner of level containing substr.
func AssertBanner(t *testing.T, s *ui.Surface, level ui.Level, substr string) {
	t.Helper()
	for _, text := range Banners(s, level) {
		if strings.Contains(text, substr) {
			return
		}
	}
	require.Failf(t, "banner not found", "no %s banner containing %q; got %q", level, substr, Banners(s, level))
}

// AssertCode fails unless some code block on s contains substr.
func AssertCode(t *testing.T, s *ui.Surface, substr string) {
	t.Helper()
	var blocks []string
	found := false
	Walk(s, func(b *ui.Block) {
		if b.Kind == ui.KindCode {
			blocks = append(blocks, b.Text)
			found = found || strings.Contains(b.Text, substr)
		}
	})
	require.Truef(t, found, "no code block containing %q; got %q", substr, blocks)
}

// KeyFor returns the key of the first widget on s with the given label.
func KeyFor(t *testing.T, s *ui.Surface, label string) string {
	t.Helper()
	for _, w := range s.Widgets() {
		if w.Label == label {
			return w.Key
		}
	}
	require.FailNowf(t, "widget not found", "no widget labelled %q", label)
	return ""
}
