package http

import (
	"encoding/json"

	"github.com/MKhiriev/go-posts-api/internal/pipeline"
)

const stageSanitize = "sanitize"

// sanitizeStage strips operator keys and neutralises markup in the decoded
// body and the query string. The cleaned body is re-encoded into the request
// so routers decoding it themselves see the same values.
func (h *Handler) sanitizeStage() pipeline.Stage {
	return pipeline.Func(stageSanitize, func(ex *pipeline.Exchange) pipeline.Result {
		if ex.Body != nil {
			clean := h.sanitizer.Value(ex.Body)
			raw, err := json.Marshal(clean)
			if err != nil {
				return pipeline.Fail(pipeline.UnhandledError(err))
			}
			ex.Body = clean
			setBody(ex.Request, raw)
		}

		if ex.Request.URL.RawQuery != "" {
			r := ex.Request.Clone(ex.Request.Context())
			r.URL.RawQuery = h.sanitizer.Query(r.URL.Query()).Encode()
			ex.Request = r
		}

		return pipeline.Proceed()
	})
}
