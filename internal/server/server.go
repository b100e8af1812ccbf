package server

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-posts-api/internal/config"
	"github.com/MKhiriev/go-posts-api/internal/handler"
	"github.com/MKhiriev/go-posts-api/internal/logger"
)

const defaultShutdownTimeout = 10 * time.Second

type server struct {
	servers         []*httpServer
	shutdownTimeout time.Duration
	logger          *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.StructuredConfig, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.Server.HTTPAddress == "" {
		return nil, errNoAPIListener
	}

	api, err := handlers.HTTP.Init()
	if err != nil {
		return nil, fmt.Errorf("error initializing API handler: %w", err)
	}

	timeout := cfg.Server.RequestTimeout
	s := &server{
		servers:         []*httpServer{newHTTPServer("api", cfg.Server.HTTPAddress, api, timeout, logger)},
		shutdownTimeout: defaultShutdownTimeout,
		logger:          logger,
	}
	if timeout > s.shutdownTimeout {
		s.shutdownTimeout = timeout
	}

	if cfg.Server.OpsAddress != "" {
		s.servers = append(s.servers, newHTTPServer("ops", cfg.Server.OpsAddress, handlers.HTTP.InitOps(), timeout, logger))
	}

	return s, nil
}

func (s *server) RunServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	errCh := make(chan error, len(s.servers))
	for _, srv := range s.servers {
		go func() {
			errCh <- srv.RunServer()
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop signal received")
	case runErr = <-errCh:
		s.logger.Error().Err(runErr).Msg("listener failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return errors.Join(runErr, err)
	}
	if runErr == nil {
		s.logger.Info().Msg("server shut down gracefully")
	}
	return runErr
}

func (s *server) Shutdown(ctx context.Context) error {
	var errs []error
	for _, srv := range s.servers {
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
