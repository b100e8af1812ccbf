package http

import "github.com/MKhiriev/go-posts-api/internal/pipeline"

const stageSession = "session"

func (h *Handler) sessionStage() pipeline.Stage {
	return pipeline.Func(stageSession, func(ex *pipeline.Exchange) pipeline.Result {
		ex.Writer, ex.Request = h.sessions.Attach(ex.Writer, ex.Request)
		return pipeline.Proceed()
	})
}
