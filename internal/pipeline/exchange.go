// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import (
	"context"
	"net/http"
)

type exchangeKey struct{}

// Exchange is the per-request state threaded through all stages by pointer.
//
// Stages attach values by replacing Request with Request.WithContext and may
// wrap Writer; they never replace the Exchange itself. The Exchange lives
// until ServeHTTP returns.
type Exchange struct {
	Request *http.Request
	Writer  http.ResponseWriter

	// Body is the decoded JSON body, set by the body-decoding stage.
	// It is nil when the request carried no JSON.
	Body any

	tracker *responseWriter
	err     error
}

func newExchange(w http.ResponseWriter, r *http.Request) *Exchange {
	tracker := &responseWriter{ResponseWriter: w}
	ex := &Exchange{Writer: tracker, tracker: tracker}
	ex.Request = r.WithContext(context.WithValue(r.Context(), exchangeKey{}, ex))
	return ex
}

// ExchangeFrom returns the Exchange serving the request that owns ctx.
func ExchangeFrom(ctx context.Context) (*Exchange, bool) {
	ex, ok := ctx.Value(exchangeKey{}).(*Exchange)
	return ex, ok
}

// Committed reports whether the response status has been sent.
func (ex *Exchange) Committed() bool {
	return ex.tracker.wroteHeader
}

// Status returns the committed status code, or 0.
func (ex *Exchange) Status() int {
	return ex.tracker.status
}

// Err returns the failure recorded for the request, if any.
func (ex *Exchange) Err() error {
	return ex.err
}

// Failed reports whether a failure has been recorded.
func (ex *Exchange) Failed() bool {
	return ex.err != nil
}

// fail records err unless a failure is already recorded; only the first
// failure of a request reaches the error handler.
func (ex *Exchange) fail(err error) {
	if ex.err == nil && err != nil {
		ex.err = err
	}
}

// Abort signals a failure from code running inside the pipeline, typically a
// route handler. The handler must return without writing after calling it.
//
// Outside a pipeline there is no terminal stage to defer to, so the error is
// rendered immediately.
func Abort(w http.ResponseWriter, r *http.Request, err error) {
	if ex, ok := ExchangeFrom(r.Context()); ok {
		ex.fail(err)
		return
	}
	RenderError(w, err)
}
