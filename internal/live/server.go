package live

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vk/aplab/internal/ctxlog"
	"github.com/vk/aplab/internal/metrics"
	"github.com/zishang520/socket.io/v2/socket"
)

// Server is the socket.io endpoint.
type Server struct {
	io      *socket.Server
	handler *Handler
	metrics *metrics.Metrics
	logger  *slog.Logger
	serve   http.Handler
}

// NewServer wires h to a socket.io server. m and logger may be nil.
func NewServer(h *Handler, m *metrics.Metrics, logger *slog.Logger) *Server {
	opts := socket.DefaultServerOptions()
	io := socket.NewServer(nil, opts)

	s := &Server{
		io:      io,
		handler: h,
		metrics: m,
		logger:  loggerOr(logger),
	}
	s.serve = io.ServeHandler(opts)
	io.On("connection", func(clients ...any) {
		client, ok := clients[0].(*socket.Socket)
		if !ok {
			return
		}
		s.accept(client)
	})
	return s
}

func (s *Server) accept(client *socket.Socket) {
	logger := s.logger.With("sid", string(client.Id()))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	s.metrics.LiveConnected()
	logger.Debug("Live client connected.")

	client.On("disconnect", func(reason ...any) {
		s.metrics.LiveDisconnected()
		logger.Debug("Live client disconnected.", "reason", reason)
	})

	client.On(EventRender, func(args ...any) {
		resp, err := s.handler.handleEvent(ctx, args)
		if err != nil {
			logger.Warn("Live render request rejected.", "error", err)
			resp = Response{OK: false, Message: err.Error()}
		}
		client.Emit(EventRendered, resp)
	})
}

// ServeHTTP serves the socket.io transport.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.serve.ServeHTTP(w, r)
}

// Close disconnects every client.
func (s *Server) Close() {
	s.io.Close(nil)
}
