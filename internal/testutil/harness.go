// Package testutil holds helpers for rendering lesson pages in tests without
// going through HTTP.
package testutil

import (
	"context"
	"log/slog"
	"net/url"
	"testing"

	"github.com/vk/aplab/internal/ctxlog"
	"github.com/vk/aplab/internal/page"
	"github.com/vk/aplab/internal/session"
	"github.com/vk/aplab/internal/ui"
)

// HarnessResult holds the outcome of one render pass.
type HarnessResult struct {
	Surface *ui.Surface
	Session *session.Session
	Err     error
}

// Pass describes one render pass. A nil Session gets a fresh one; an empty
// Locale means "en".
type Pass struct {
	Form    url.Values
	Clicked string
	Session *session.Session
	Locale  string
}

// RenderPage runs p once and returns what it produced.
func RenderPage(t *testing.T, p page.Page, pass Pass) *HarnessResult {
	t.Helper()

	sess := pass.Session
	if sess == nil {
		sess = session.New("test")
	}
	locale := pass.Locale
	if locale == "" {
		locale = "en"
	}
	in := ui.InputsFromForm(pass.Form)
	if pass.Clicked != "" {
		in.Clicked = pass.Clicked
	}

	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
	surface := ui.NewSurface(in)
	pc := page.NewContext(ctx, surface, sess, locale)
	err := sess.Exclusive(func() error { return p.Show(pc) })
	return &HarnessResult{Surface: surface, Session: sess, Err: err}
}

// RenderFunc is RenderPage for a plain page function.
func RenderFunc(t *testing.T, fn func(pc *page.Context) error, pass Pass) *HarnessResult {
	t.Helper()
	return RenderPage(t, page.Func(fn), pass)
}
