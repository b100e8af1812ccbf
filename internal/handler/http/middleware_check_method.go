// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-posts-api/internal/pipeline"
)

// abortNotFound hands an unknown sub-path to the terminal error handler.
//
// It is registered as both the NotFound and the MethodNotAllowed handler of
// the resource routers, so a known path requested with an unsupported
// method is reported as 404 rather than 405, which keeps route existence
// hidden from callers.
func abortNotFound(w http.ResponseWriter, r *http.Request) {
	pipeline.Abort(w, r, pipeline.NotFoundError())
}

// newResourceRouter returns a chi router whose unmatched requests end in the
// pipeline's error handler.
func newResourceRouter() *chi.Mux {
	router := chi.NewRouter()
	router.NotFound(abortNotFound)
	router.MethodNotAllowed(abortNotFound)
	return router
}

// mounted records prefix in the shared chi route context, so the route
// pattern seen by the metrics middleware is the full path template.
func mounted(prefix string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			rctx.RoutePatterns = append(rctx.RoutePatterns, prefix+"/*")
		}
		next.ServeHTTP(w, r)
	})
}
