package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-posts-api/internal/logger"
	"github.com/MKhiriev/go-posts-api/internal/pipeline"
	"github.com/MKhiriev/go-posts-api/internal/utils"
)

const (
	stageDecodeBody = "decode-body"

	unsupportedMediaTypeMessage = "Content-Type must be application/json"
)

// decodeBodyStage parses JSON request bodies into Exchange.Body and restores
// the raw bytes for downstream readers. Empty bodies pass through; any other
// body must be JSON so that nothing reaches a router without being sanitized.
func (h *Handler) decodeBodyStage() pipeline.Stage {
	limit := h.cfg.Security.BodyLimit

	return pipeline.Func(stageDecodeBody, func(ex *pipeline.Exchange) pipeline.Result {
		r := ex.Request
		if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
			return pipeline.Proceed()
		}
		if r.ContentLength > limit {
			return pipeline.Fail(tooLarge())
		}

		raw, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
		_ = r.Body.Close()
		if err != nil {
			logger.FromRequest(r).Err(err).Msg("error reading request body")
			return pipeline.Fail(pipeline.ValidationError(pipeline.Message{Message: "could not read request body"}))
		}
		if int64(len(raw)) > limit {
			return pipeline.Fail(tooLarge())
		}

		setBody(r, raw)
		if len(bytes.TrimSpace(raw)) == 0 {
			return pipeline.Proceed()
		}
		if !utils.IsJSONContentType(r.Header.Get("Content-Type")) {
			return pipeline.Fail(unsupportedMediaType())
		}

		var body any
		if err = json.Unmarshal(raw, &body); err != nil {
			logger.FromRequest(r).Debug().Err(err).Msg("malformed JSON body")
			return pipeline.Fail(pipeline.ValidationError(pipeline.Message{Message: "invalid JSON body"}))
		}
		ex.Body = body

		return pipeline.Proceed()
	})
}

func unsupportedMediaType() *pipeline.Error {
	return pipeline.NewError(pipeline.KindValidation, utils.ErrUnsupportedMediaType,
		pipeline.Message{Message: unsupportedMediaTypeMessage}).
		WithStatus(http.StatusUnsupportedMediaType)
}

func tooLarge() *pipeline.Error {
	return pipeline.ValidationError(pipeline.Message{Message: "request entity too large"}).
		WithStatus(http.StatusRequestEntityTooLarge)
}

// setBody replaces the body of r with raw.
func setBody(r *http.Request, raw []byte) {
	r.Body = io.NopCloser(bytes.NewReader(raw))
	r.ContentLength = int64(len(raw))
	r.Header.Set("Content-Length", strconv.Itoa(len(raw)))
	r.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(raw)), nil
	}
}
