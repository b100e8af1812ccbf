// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import "net/http"

type action int

const (
	actionProceed action = iota
	actionRespond
	actionFail
)

// Result is the outcome of a single stage.
type Result struct {
	action action
	err    error
}

// Proceed continues with the next stage.
func Proceed() Result {
	return Result{action: actionProceed}
}

// Respond stops the chain: the stage has written the response itself.
func Respond() Result {
	return Result{action: actionRespond}
}

// Fail stops the chain and hands err to the terminal error handler.
// A nil err is reported as an unhandled failure.
func Fail(err error) Result {
	if err == nil {
		err = UnhandledError(nil)
	}
	return Result{action: actionFail, err: err}
}

// Stage is one unit of the ordered chain.
type Stage interface {
	Name() string
	Handle(ex *Exchange) Result
}

type stageFunc struct {
	name string
	fn   func(ex *Exchange) Result
}

func (s stageFunc) Name() string               { return s.name }
func (s stageFunc) Handle(ex *Exchange) Result { return s.fn(ex) }

// Func adapts a plain function to a Stage.
func Func(name string, fn func(ex *Exchange) Result) Stage {
	return stageFunc{name: name, fn: fn}
}

// FromMiddleware adapts conventional func(http.Handler) http.Handler
// middleware to a Stage.
//
// The continuation passed to mw records the request and writer of its first
// invocation; later invocations are ignored. If mw returns without invoking
// it, the stage resolves to Respond. Middleware that calls Abort resolves to
// Fail. Work mw performs after next returns runs before the rest of the
// chain, so only middleware that acts on the way in should be adapted.
func FromMiddleware(name string, mw func(http.Handler) http.Handler) Stage {
	return Func(name, func(ex *Exchange) Result {
		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if called {
				return
			}
			called = true
			ex.Request = r
			ex.Writer = w
		})

		mw(next).ServeHTTP(ex.Writer, ex.Request)

		switch {
		case ex.Failed():
			return Fail(ex.err)
		case !called:
			return Respond()
		default:
			return Proceed()
		}
	})
}
