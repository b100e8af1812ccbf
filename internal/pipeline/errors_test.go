// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_StatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{name: "validation", err: ValidationError(), want: http.StatusBadRequest},
		{name: "validation override", err: ValidationError().WithStatus(http.StatusRequestEntityTooLarge), want: http.StatusRequestEntityTooLarge},
		{name: "override ignored outside 4xx", err: ValidationError().WithStatus(http.StatusOK), want: http.StatusBadRequest},
		{name: "override ignored for other kinds", err: NotFoundError().WithStatus(http.StatusGone), want: http.StatusNotFound},
		{name: "not found", err: NotFoundError(), want: http.StatusNotFound},
		{name: "unauthorized", err: UnauthorizedError(), want: http.StatusUnauthorized},
		{name: "forbidden", err: ForbiddenError(), want: http.StatusForbidden},
		{name: "unhandled", err: UnhandledError(errors.New("x")), want: http.StatusInternalServerError},
		{name: "unknown kind", err: NewError(Kind(99), nil), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestError_SerializeHidesUnhandledDetails(t *testing.T) {
	err := NewError(KindUnhandled, errors.New("pq: relation users does not exist"), Message{Message: "internal"})
	assert.Equal(t, []Message{{Message: GenericMessage}}, err.Serialize())
}

func TestError_SerializeDefaultsToStatusText(t *testing.T) {
	assert.Equal(t, []Message{{Message: "Bad Request"}}, ValidationError().Serialize())
}

func TestAsError(t *testing.T) {
	wrapped := fmt.Errorf("router: %w", ForbiddenError())
	assert.Equal(t, KindForbidden, AsError(wrapped).Kind)

	plain := errors.New("plain")
	got := AsError(plain)
	assert.Equal(t, KindUnhandled, got.Kind)
	assert.ErrorIs(t, got, plain)
}

func TestError_Error(t *testing.T) {
	assert.Equal(t, "not_found: Not Found", NotFoundError().Error())
	assert.Equal(t, "unhandled: boom", UnhandledError(errors.New("boom")).Error())
	assert.Equal(t, "validation", ValidationError().Error())
}
