package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vk/aplab/internal/ctxlog"
	"github.com/vk/aplab/internal/dispatch"
	"github.com/vk/aplab/internal/i18n"
	"github.com/vk/aplab/internal/metrics"
	"github.com/vk/aplab/internal/session"
	"github.com/vk/aplab/internal/ui"
)

// Event names.
const (
	EventRender   = "render"
	EventRendered = "rendered"
)

// Outcome labels for live events.
const (
	OutcomeOK         = "ok"
	OutcomeFailed     = "failed"
	OutcomeBadRequest = "bad_request"
)

var ErrBadRequest = errors.New("malformed render request")

// Request is the payload of a render event.
type Request struct {
	Session  string              `json:"session"`
	Category string              `json:"category"`
	Topic    string              `json:"topic"`
	Lang     string              `json:"lang"`
	Values   map[string][]string `json:"values"`
	Clicked  string              `json:"clicked"`
}

// Response is the payload of a rendered event.
type Response struct {
	Session  string `json:"session"`
	Category string `json:"category"`
	Topic    string `json:"topic"`
	Locator  string `json:"locator,omitempty"`
	HTML     string `json:"html"`
	OK       bool   `json:"ok"`
	Message  string `json:"message,omitempty"`
}

// Handler turns render requests into page fragments.
type Handler struct {
	dispatcher *dispatch.Dispatcher
	sessions   *session.Manager
	bundle     *i18n.Bundle
	metrics    *metrics.Metrics
}

// NewHandler creates a handler. m may be nil.
func NewHandler(d *dispatch.Dispatcher, sessions *session.Manager, bundle *i18n.Bundle, m *metrics.Metrics) *Handler {
	return &Handler{dispatcher: d, sessions: sessions, bundle: bundle, metrics: m}
}

// Handle runs one render pass. An unknown or expired session id is replaced
// by a fresh session, whose id is returned in the response.
func (h *Handler) Handle(ctx context.Context, req Request) (Response, error) {
	sess, created := h.sessions.GetOrCreate(req.Session)
	if created {
		ctxlog.FromContext(ctx).Debug("Live session created.", "requested", req.Session, "session", sess.ID)
	}

	locale := h.bundle.Resolve([]string{req.Lang}, "", "")
	sel := h.dispatcher.Select(req.Category, req.Topic)

	in := ui.InputsFromForm(req.Values)
	if req.Clicked != "" {
		in.Clicked = req.Clicked
	}

	out := h.dispatcher.Render(ctx, sel, in, sess, locale)
	tr := h.bundle.Translator(locale)
	body, err := out.HTML(tr)
	if err != nil {
		h.metrics.ObserveLiveEvent(OutcomeFailed)
		return Response{}, fmt.Errorf("failed to render fragment: %w", err)
	}

	outcome := OutcomeOK
	if !out.OK() {
		outcome = OutcomeFailed
	}
	h.metrics.ObserveLiveEvent(outcome)

	return Response{
		Session:  sess.ID,
		Category: sel.Category,
		Topic:    sel.Topic,
		Locator:  out.Locator.String(),
		HTML:     string(body),
		OK:       out.OK(),
		Message:  out.Message(tr),
	}, nil
}

// decode reads a render request from raw event arguments. socket.io hands
// JSON objects over as generic maps, so the first argument is re-encoded.
func decode(args []any) (Request, error) {
	var req Request
	if len(args) == 0 {
		return req, fmt.Errorf("%w: no payload", ErrBadRequest)
	}
	raw, err := json.Marshal(args[0])
	if err != nil {
		return req, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return req, nil
}

func (h *Handler) handleEvent(ctx context.Context, args []any) (Response, error) {
	req, err := decode(args)
	if err != nil {
		h.metrics.ObserveLiveEvent(OutcomeBadRequest)
		return Response{}, err
	}
	return h.Handle(ctx, req)
}

func loggerOr(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
