package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-posts-api/internal/logger"
)

type httpServer struct {
	name   string
	server *http.Server
	logger *logger.Logger
}

func newHTTPServer(name, addr string, handler http.Handler, timeout time.Duration, logger *logger.Logger) *httpServer {
	l := logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("listener", name)
	})

	return &httpServer{
		name: name,
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: timeout,
			ReadTimeout:       timeout,
			WriteTimeout:      timeout,
			IdleTimeout:       2 * timeout,
			ErrorLog:          log.New(l, "", 0),
		},
		logger: l,
	}
}

// RunServer blocks until the server is closed. A closed server is not an
// error.
func (h *httpServer) RunServer() error {
	h.logger.Info().Str("address", h.server.Addr).Msg("launching HTTP server")
	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%w: %s: %w", errListenerFailed, h.name, err)
	}
	return nil
}

func (h *httpServer) Shutdown(ctx context.Context) error {
	if err := h.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s server shutdown: %w", h.name, err)
	}
	h.logger.Info().Msg("HTTP server stopped")
	return nil
}
