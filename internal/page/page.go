// Package page defines the capability every lesson page implements and the
// per-pass context handed to it.
package page

import (
	"context"
	"log/slog"

	"github.com/vk/aplab/internal/ctxlog"
	"github.com/vk/aplab/internal/session"
	"github.com/vk/aplab/internal/ui"
)

// Page renders one topic. Show is called once per render pass and must be
// idempotent apart from session writes.
type Page interface {
	Show(pc *Context) error
}

// Func adapts a plain function to Page.
type Func func(pc *Context) error

// Show calls f(pc).
func (f Func) Show(pc *Context) error { return f(pc) }

// Context is everything a page may touch during a pass: the output surface
// (embedded, so pages call pc.Markdown, pc.Slider and so on directly), the
// learner's session and the active locale.
type Context struct {
	*ui.Surface

	ctx     context.Context
	session *session.Session
	locale  string
}

// NewContext assembles a page context for one pass.
func NewContext(ctx context.Context, surface *ui.Surface, sess *session.Session, locale string) *Context {
	return &Context{Surface: surface, ctx: ctx, session: sess, locale: locale}
}

// Context returns the request context.
func (pc *Context) Context() context.Context { return pc.ctx }

// Session returns the learner's session.
func (pc *Context) Session() *session.Session { return pc.session }

// Locale returns the active locale, e.g. "en".
func (pc *Context) Locale() string { return pc.locale }

// Logger returns the logger carried by the request context.
func (pc *Context) Logger() *slog.Logger { return ctxlog.FromContext(pc.ctx) }
