package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-posts-api/internal/logger"
	"github.com/MKhiriev/go-posts-api/internal/pipeline"
	"github.com/MKhiriev/go-posts-api/internal/service"
	"github.com/MKhiriev/go-posts-api/internal/store"
	"github.com/MKhiriev/go-posts-api/internal/utils"
	"github.com/MKhiriev/go-posts-api/internal/validators"
)

type errorKind struct {
	target  error
	kind    pipeline.Kind
	message string
	status  int
}

// errorKinds is matched in order; the first sentinel found in the chain wins.
var errorKinds = []errorKind{
	{service.ErrNotPostOwner, pipeline.KindForbidden, "Forbidden", 0},

	{service.ErrTokenIsExpiredOrInvalid, pipeline.KindUnauthorized, "Not authorized", 0},
	{ErrNoCurrentUser, pipeline.KindUnauthorized, "Not authorized", 0},

	{service.ErrPostNotFound, pipeline.KindNotFound, "Not Found", 0},
	{store.ErrPostNotFound, pipeline.KindNotFound, "Not Found", 0},

	{service.ErrEmailInUse, pipeline.KindValidation, "Email in use", 0},
	{service.ErrInvalidCredentials, pipeline.KindValidation, "Invalid credentials", 0},
	{service.ErrInvalidDataProvided, pipeline.KindValidation, "Invalid data provided", 0},

	{utils.ErrUnsupportedMediaType, pipeline.KindValidation, unsupportedMediaTypeMessage, http.StatusUnsupportedMediaType},
	{utils.ErrInvalidBody, pipeline.KindValidation, "invalid JSON body", 0},
	{utils.ErrEmptyBody, pipeline.KindValidation, "Request body is required", 0},
	{ErrInvalidPostID, pipeline.KindValidation, "Post id must be a positive integer", 0},
}

// toPipelineError classifies err. Errors already classified pass through;
// validation field errors keep one message per field; anything not in
// errorKinds is unhandled.
func toPipelineError(err error) *pipeline.Error {
	var pe *pipeline.Error
	if errors.As(err, &pe) {
		return pe
	}

	var fieldErrs validators.FieldErrors
	if errors.As(err, &fieldErrs) {
		messages := make([]pipeline.Message, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			messages = append(messages, pipeline.Message{Message: fe.Message, Field: fe.Field})
		}
		return pipeline.NewError(pipeline.KindValidation, err, messages...)
	}

	for _, ek := range errorKinds {
		if errors.Is(err, ek.target) {
			pe = pipeline.NewError(ek.kind, err, pipeline.Message{Message: ek.message})
			if ek.status != 0 {
				pe = pe.WithStatus(ek.status)
			}
			return pe
		}
	}

	return pipeline.UnhandledError(err)
}

// handleError is the terminal error stage of the API pipeline.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	pe := toPipelineError(err)
	log := logger.FromContextOr(r.Context(), h.logger)

	if pe.Kind == pipeline.KindUnhandled {
		log.Error().Err(err).Str("uri", r.RequestURI).Msg("unhandled error")
	} else {
		log.Debug().Err(err).Str("kind", pe.Kind.String()).Int("status", pe.StatusCode()).Msg("request failed")
	}
	h.metrics.IncError(pe.Kind.String())

	pipeline.RenderError(w, pe)
}
