// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for rendering.
type Kind int

const (
	KindUnhandled Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindForbidden
)

var kindNames = map[Kind]string{
	KindUnhandled:    "unhandled",
	KindValidation:   "validation",
	KindNotFound:     "not_found",
	KindUnauthorized: "unauthorized",
	KindForbidden:    "forbidden",
}

var kindStatus = map[Kind]int{
	KindUnhandled:    http.StatusInternalServerError,
	KindValidation:   http.StatusBadRequest,
	KindNotFound:     http.StatusNotFound,
	KindUnauthorized: http.StatusUnauthorized,
	KindForbidden:    http.StatusForbidden,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnhandled]
}

// Status returns the default HTTP status code for the kind.
func (k Kind) Status() int {
	if status, ok := kindStatus[k]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// GenericMessage is rendered for every unhandled failure in place of the
// real error.
const GenericMessage = "Something went wrong"

// Message is a single entry of an error response.
type Message struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ErrorResponse is the JSON body of every failure response.
type ErrorResponse struct {
	Errors []Message `json:"errors"`
}

// Error is a classified failure travelling to the terminal error handler.
type Error struct {
	Kind     Kind
	Messages []Message

	// Err is the underlying cause. It is logged, never rendered.
	Err error

	status int
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case len(e.Messages) > 0:
		return fmt.Sprintf("%s: %s", e.Kind, e.Messages[0].Message)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithStatus overrides the status code of a validation error, e.g. 413 for
// oversized bodies. Overrides on other kinds are ignored.
func (e *Error) WithStatus(code int) *Error {
	if e.Kind == KindValidation && code >= 400 && code < 500 {
		e.status = code
	}
	return e
}

// StatusCode returns the HTTP status code to render.
func (e *Error) StatusCode() int {
	if e.status != 0 {
		return e.status
	}
	return e.Kind.Status()
}

// Serialize returns the messages safe to send to the client.
func (e *Error) Serialize() []Message {
	if e.Kind == KindUnhandled {
		return []Message{{Message: GenericMessage}}
	}
	if len(e.Messages) == 0 {
		return []Message{{Message: http.StatusText(e.StatusCode())}}
	}
	return e.Messages
}

// NewError builds an Error of the given kind.
func NewError(kind Kind, err error, messages ...Message) *Error {
	return &Error{Kind: kind, Err: err, Messages: messages}
}

// ValidationError reports malformed input.
func ValidationError(messages ...Message) *Error {
	return NewError(KindValidation, nil, messages...)
}

// NotFoundError reports an unknown route or resource.
func NotFoundError() *Error {
	return NewError(KindNotFound, nil, Message{Message: "Not Found"})
}

// UnauthorizedError reports a missing or invalid identity.
func UnauthorizedError() *Error {
	return NewError(KindUnauthorized, nil, Message{Message: "Not authorized"})
}

// ForbiddenError reports an identity lacking permission.
func ForbiddenError() *Error {
	return NewError(KindForbidden, nil, Message{Message: "Forbidden"})
}

// UnhandledError wraps an uncategorised failure.
func UnhandledError(err error) *Error {
	return NewError(KindUnhandled, err)
}

// AsError returns err as an *Error, classifying anything else as unhandled.
func AsError(err error) *Error {
	var pe *Error
	if errors.As(err, &pe) {
		return pe
	}
	return UnhandledError(err)
}
