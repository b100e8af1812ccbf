package http

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/MKhiriev/go-posts-api/internal/pipeline"
)

const stageCORS = "cors"

// corsStage answers preflight requests itself and decorates the rest with
// the CORS response headers.
func (h *Handler) corsStage() pipeline.Stage {
	return pipeline.FromMiddleware(stageCORS, cors.Handler(cors.Options{
		AllowedOrigins: h.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
	}))
}
