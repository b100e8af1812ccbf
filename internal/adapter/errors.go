package adapter

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-posts-api/internal/pipeline"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrRequestTooLarge     = errors.New("request entity too large")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")

	ErrEmptyAddress = errors.New("empty address")
)

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int

	// Messages are the entries of the JSON error body. Rate-limit
	// rejections carry a plain text body, kept as a single message.
	Messages []pipeline.Message

	kind error
}

func (e *APIError) Error() string {
	texts := make([]string, 0, len(e.Messages))
	for _, m := range e.Messages {
		if m.Field != "" {
			texts = append(texts, m.Field+": "+m.Message)
			continue
		}
		texts = append(texts, m.Message)
	}
	if len(texts) == 0 {
		return e.kind.Error()
	}
	return e.kind.Error() + ": " + strings.Join(texts, "; ")
}

func (e *APIError) Unwrap() error {
	return e.kind
}
