package http

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-posts-api/internal/config"
	"github.com/MKhiriev/go-posts-api/internal/logger"
	"github.com/MKhiriev/go-posts-api/internal/metrics"
	"github.com/MKhiriev/go-posts-api/internal/ratelimit"
	"github.com/MKhiriev/go-posts-api/internal/sanitize"
	"github.com/MKhiriev/go-posts-api/internal/service"
	"github.com/MKhiriev/go-posts-api/internal/session"
)

// ReadinessFunc reports whether the server can take traffic, e.g. by pinging
// the database.
type ReadinessFunc func(ctx context.Context) error

type Handler struct {
	services *service.Services
	cfg      config.StructuredConfig

	sessions  *session.Manager
	limiter   *ratelimit.Limiter
	sanitizer *sanitize.Sanitizer
	metrics   *metrics.ServerMetrics
	readiness ReadinessFunc

	// deniedLog throttles the aggregate "rate limiting active" warning.
	deniedLog *rate.Sometimes

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. ctx bounds the rate limiter's
// eviction goroutine.
func NewHandler(ctx context.Context, services *service.Services, cfg config.StructuredConfig,
	m *metrics.ServerMetrics, readiness ReadinessFunc, logger *logger.Logger) (*Handler, error) {
	sessions, err := session.NewManager(session.Options{
		Name:    cfg.Security.Session.Name,
		Signed:  cfg.Security.Session.Signed,
		Secure:  cfg.Security.Session.Secure,
		SignKey: cfg.Security.Session.SignKey,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating session manager: %w", err)
	}
	if !cfg.Security.Session.Signed || !cfg.Security.Session.Secure {
		logger.Warn().
			Bool("signed", cfg.Security.Session.Signed).
			Bool("secure", cfg.Security.Session.Secure).
			Msg("session cookie is not signed or not restricted to HTTPS")
	}

	if m == nil {
		m = metrics.New()
	}

	h := &Handler{
		services:  services,
		cfg:       cfg,
		sessions:  sessions,
		sanitizer: sanitize.New(),
		metrics:   m,
		readiness: readiness,
		deniedLog: &rate.Sometimes{Interval: time.Minute},
		logger:    logger,
	}

	h.limiter = ratelimit.New(ctx,
		ratelimit.WithLimit(cfg.Security.RateLimit.Max, cfg.Security.RateLimit.Window),
		ratelimit.WithOnFirstDenied(h.onFirstDenied),
		ratelimit.WithOnDenied(h.onDenied),
	)

	logger.Info().Msg("http handler created")
	return h, nil
}
