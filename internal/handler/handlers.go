package handler

import (
	"context"

	"github.com/MKhiriev/go-posts-api/internal/config"
	"github.com/MKhiriev/go-posts-api/internal/handler/http"
	"github.com/MKhiriev/go-posts-api/internal/logger"
	"github.com/MKhiriev/go-posts-api/internal/metrics"
	"github.com/MKhiriev/go-posts-api/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the transport handlers. ctx bounds background work
// owned by the handlers, such as rate limiter eviction.
func NewHandlers(ctx context.Context, services *service.Services, cfg config.StructuredConfig,
	m *metrics.ServerMetrics, readiness http.ReadinessFunc, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	h, err := http.NewHandler(ctx, services, cfg, m, readiness, logger)
	if err != nil {
		return nil, err
	}

	return &Handlers{HTTP: h}, nil
}
