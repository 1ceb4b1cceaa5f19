package dispatch

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/vk/aplab/internal/ctxlog"
	"github.com/vk/aplab/internal/metrics"
	"github.com/vk/aplab/internal/page"
	"github.com/vk/aplab/internal/registry"
	"github.com/vk/aplab/internal/session"
	"github.com/vk/aplab/internal/ui"
)

// Selection is the (category, topic) pair chosen by the learner.
type Selection struct {
	Category string
	Topic    string
}

// Dispatcher resolves selections and runs pages.
type Dispatcher struct {
	reg     *registry.Registry
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithMetrics records every pass in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// New creates a Dispatcher over reg.
func New(reg *registry.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{reg: reg, now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the registry the dispatcher resolves against.
func (d *Dispatcher) Registry() *registry.Registry { return d.reg }

// Render runs one pass of the selected page. A nil session gets a throwaway
// one, so state written during the pass is discarded.
func (d *Dispatcher) Render(ctx context.Context, sel Selection, in ui.Inputs, sess *session.Session, locale string) Outcome {
	start := d.now()
	out := Outcome{Selection: sel}

	ctx = ctxlog.With(ctx, "category", sel.Category, "topic", sel.Topic)
	logger := ctxlog.FromContext(ctx)

	loc, err := d.reg.Locator(sel.Category, sel.Topic)
	if err != nil {
		out.Err = err
		return d.finish(ctx, out, start, metrics.OutcomeUnknownSelection)
	}
	out.Locator = loc

	p, ok := d.reg.Page(loc)
	if !ok {
		out.Err = &HandlerLoadError{Locator: loc}
		return d.finish(ctx, out, start, metrics.OutcomeLoadError)
	}

	if sess == nil {
		sess = session.New("")
	} else {
		ctx = ctxlog.With(ctx, "session", sess.ID)
		logger = ctxlog.FromContext(ctx)
	}

	out.Surface = ui.NewSurface(in)
	pc := page.NewContext(ctxlog.With(ctx, "locator", loc.String()), out.Surface, sess, locale)

	err = sess.Exclusive(func() error { return invoke(p, pc) })
	if err != nil {
		rte := &HandlerRuntimeError{Locator: loc, Cause: err}
		var pe *panicError
		if errors.As(err, &pe) {
			rte.Cause = fmt.Errorf("panic: %v", pe.value)
			rte.Panic = pe.value
			rte.Stack = pe.stack
			logger.Error("Page panicked.", "locator", loc.String(), "panic", pe.value, "stack", string(pe.stack))
		}
		out.Err = rte
		return d.finish(ctx, out, start, metrics.OutcomeRuntimeError)
	}

	return d.finish(ctx, out, start, metrics.OutcomeOK)
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string { return fmt.Sprintf("panic: %v", e.value) }

func invoke(p page.Page, pc *page.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r, stack: debug.Stack()}
		}
	}()
	return p.Show(pc)
}

func (d *Dispatcher) finish(ctx context.Context, out Outcome, start time.Time, outcome string) Outcome {
	out.Duration = d.now().Sub(start)
	logger := ctxlog.FromContext(ctx)

	topic := out.Locator.String()
	d.metrics.ObserveRender(topic, outcome, out.Duration)

	if out.Err != nil {
		logger.Warn("Render pass failed.", "outcome", outcome, "locator", topic, "error", out.Err, "duration", out.Duration)
		return out
	}
	logger.Debug("Render pass finished.", "locator", topic, "blocks", out.Surface.Len(), "duration", out.Duration)
	return out
}

// Select fills in defaults for a request: no category means the first topic
// of the first category; a known category without a topic means its first
// topic. Unknown labels pass through unchanged so Render can report them.
func (d *Dispatcher) Select(category, topic string) Selection {
	if category == "" {
		def := d.reg.Default()
		return Selection{Category: def.Category, Topic: def.Topic}
	}
	if topic == "" {
		if topics, err := d.reg.Topics(category); err == nil && len(topics) > 0 {
			topic = topics[0]
		}
	}
	return Selection{Category: category, Topic: topic}
}
