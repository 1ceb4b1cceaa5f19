package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vk/aplab/internal/dispatch"
	"github.com/vk/aplab/internal/i18n"
	"github.com/vk/aplab/internal/session"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Cookie names.
const (
	SessionCookie = "aplab_session"
	LangCookie    = "lang"
)

// Options are the process-wide page settings, fixed at startup.
type Options struct {
	Title  string
	Icon   string
	Layout string // "wide" or "centered"
	Live   bool
}

// Deps are the collaborators of the server.
type Deps struct {
	Dispatcher *dispatch.Dispatcher
	Sessions   *session.Manager
	Bundle     *i18n.Bundle
	Gatherer   prometheus.Gatherer
	Live       http.Handler // mounted under /socket.io/ when non-nil
	Logger     *slog.Logger
}

// Server owns the gin engine.
type Server struct {
	opts       Options
	dispatcher *dispatch.Dispatcher
	sessions   *session.Manager
	bundle     *i18n.Bundle
	logger     *slog.Logger
	engine     *gin.Engine
}

// New builds the router.
func New(opts Options, deps Deps) (*Server, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		opts:       opts,
		dispatcher: deps.Dispatcher,
		sessions:   deps.Sessions,
		bundle:     deps.Bundle,
		logger:     logger,
	}

	tmpl, err := template.New("pages").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open static assets: %w", err)
	}

	r := gin.New()
	r.Use(requestLogger(logger), recovery(logger))
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", s.handleHealth)
	r.GET("/", s.handleTopic)
	r.GET("/topic", s.handleTopic)
	r.POST("/topic", s.handleTopic)
	r.GET("/api/catalog", s.handleCatalog)
	r.StaticFS("/static", http.FS(static))

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	if deps.Live != nil && opts.Live {
		live := gin.WrapH(deps.Live)
		r.GET("/socket.io/*any", live)
		r.POST("/socket.io/*any", live)
	} else {
		s.opts.Live = false
	}

	s.engine = r
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }
