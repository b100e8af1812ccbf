package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/MKhiriev/go-posts-api/internal/pipeline"
)

const operationName = "go-posts-api"

// newPipeline declares the API: the global stages in execution order, then
// one route per resource with its own identity stage.
func (h *Handler) newPipeline() (*pipeline.Pipeline, error) {
	return pipeline.New(pipeline.Config{
		Stages: []pipeline.Stage{
			decompressBodyStage(),
			h.decodeBodyStage(),
			securityHeadersStage(),
			h.sanitizeStage(),
			h.corsStage(),
			h.rateLimitStage(),
			h.sessionStage(),
		},
		Routes: []pipeline.Route{
			{
				Prefix:  userPrefix,
				Stages:  []pipeline.Stage{h.identityStage(false)},
				Handler: h.userRouter(),
			},
			{
				Prefix:  postPrefix,
				Stages:  []pipeline.Stage{h.identityStage(true)},
				Handler: h.postRouter(),
			},
		},
		ErrorHandler: h.handleError,
		Logger:       h.logger,
	})
}

// Init returns the public API handler.
func (h *Handler) Init() (http.Handler, error) {
	p, err := h.newPipeline()
	if err != nil {
		return nil, fmt.Errorf("error building request pipeline: %w", err)
	}

	h.logger.Info().
		Strs("stages", p.StageNames()).
		Strs("routes", p.Prefixes()).
		Msg("request pipeline built")

	return otelhttp.NewHandler(h.withTraceID(h.withLogging(h.metrics.Middleware(p))), operationName), nil
}

// InitOps returns the operational handler: metrics, probes and build info.
func (h *Handler) InitOps() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	router.Get("/healthz", h.healthz)
	router.Get("/readyz", h.readyz)
	router.Get("/version", h.getAppInfo)

	return router
}
