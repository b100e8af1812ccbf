package http

import (
	"net"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-posts-api/internal/pipeline"
	"github.com/MKhiriev/go-posts-api/internal/ratelimit"
)

const (
	stageRateLimit = "rate-limit"

	rateLimitedPrefix = "/api"
)

// rateLimitStage counts requests under /api per client. Rejections are
// written by the limiter and end the chain without an error.
func (h *Handler) rateLimitStage() pipeline.Stage {
	disabled := h.cfg.Security.RateLimit.Disabled

	return pipeline.FromMiddleware(stageRateLimit, h.limiter.Middleware(ratelimit.MiddlewareOptions{
		Key: h.clientIP,
		Skip: func(r *http.Request) bool {
			return disabled || !underPrefix(r.URL.Path, rateLimitedPrefix)
		},
		Message: h.cfg.Security.RateLimit.Message,
	}))
}

// clientIP returns the leftmost X-Forwarded-For address when proxies are
// trusted, otherwise the peer address.
func (h *Handler) clientIP(r *http.Request) string {
	if !h.cfg.Server.IgnoreForwardedFor {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (h *Handler) onFirstDenied(key string) {
	h.logger.Warn().Str("client", key).Msg("client exceeded rate limit")
}

func (h *Handler) onDenied(key string) {
	h.metrics.IncRateLimitDenied()
	h.deniedLog.Do(func() {
		h.logger.Warn().Int("tracked_clients", h.limiter.Len()).Msg("requests are being rate limited")
	})
}

func underPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
