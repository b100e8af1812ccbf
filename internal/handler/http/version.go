package http

import (
	"net/http"

	"github.com/MKhiriev/go-posts-api/internal/utils"
)

// getAppInfo reports build metadata, the storage driver and uptime.
func (h *Handler) getAppInfo(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.GetAppInfo(r.Context()), http.StatusOK)
}

// healthz reports liveness; it never touches dependencies.
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// readyz reports whether the server's dependencies are reachable.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	if h.readiness != nil {
		if err := h.readiness(r.Context()); err != nil {
			h.logger.Warn().Err(err).Msg("readiness check failed")
			utils.WriteJSON(w, map[string]string{"status": "unavailable"}, http.StatusServiceUnavailable)
			return
		}
	}
	utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
