package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-posts-api/internal/pipeline"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:            ErrBadRequest,
	http.StatusUnauthorized:          ErrUnauthorized,
	http.StatusForbidden:             ErrForbidden,
	http.StatusNotFound:              ErrNotFound,
	http.StatusRequestEntityTooLarge: ErrRequestTooLarge,
	http.StatusTooManyRequests:       ErrTooManyRequests,
	http.StatusInternalServerError:   ErrInternalServerError,
}

func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	kind, ok := statusErrors[resp.StatusCode()]
	if !ok {
		kind = fmt.Errorf("%w %d", ErrUnexpectedStatus, resp.StatusCode())
	}

	apiErr := &APIError{StatusCode: resp.StatusCode(), kind: kind}

	var body pipeline.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &body); err == nil && len(body.Errors) > 0 {
		apiErr.Messages = body.Errors
	} else if text := strings.TrimSpace(resp.String()); text != "" {
		apiErr.Messages = []pipeline.Message{{Message: text}}
	}

	return apiErr
}
