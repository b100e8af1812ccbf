// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctxKey string

// recorder collects the names of executed stages and handlers.
type recorder struct {
	calls []string
}

func (rec *recorder) stage(name string) Stage {
	return Func(name, func(ex *Exchange) Result {
		rec.calls = append(rec.calls, name)
		return Proceed()
	})
}

func (rec *recorder) handler(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.calls = append(rec.calls, name+" "+r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
}

func decodeErrors(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func serve(t *testing.T, p *Pipeline, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	p.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestNew_SnapshotsStages(t *testing.T) {
	rec := &recorder{}
	stages := []Stage{rec.stage("a"), rec.stage("b")}

	p, err := New(Config{Stages: stages})
	require.NoError(t, err)

	stages[0] = rec.stage("mutated")
	assert.Equal(t, []string{"a", "b"}, p.StageNames())
}

func TestNew_Validation(t *testing.T) {
	h := http.NotFoundHandler()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "nil stage", cfg: Config{Stages: []Stage{nil}}, wantErr: ErrNilStage},
		{name: "nil route stage", cfg: Config{Routes: []Route{{Prefix: "/a", Stages: []Stage{nil}, Handler: h}}}, wantErr: ErrNilStage},
		{name: "relative prefix", cfg: Config{Routes: []Route{{Prefix: "a", Handler: h}}}, wantErr: ErrInvalidPrefix},
		{name: "root prefix", cfg: Config{Routes: []Route{{Prefix: "/", Handler: h}}}, wantErr: ErrInvalidPrefix},
		{name: "nil handler", cfg: Config{Routes: []Route{{Prefix: "/a"}}}, wantErr: ErrNilHandler},
		{name: "duplicate", cfg: Config{Routes: []Route{{Prefix: "/a", Handler: h}, {Prefix: "/a/", Handler: h}}}, wantErr: ErrDuplicateRoute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestServeHTTP_StageOrderAndDispatch(t *testing.T) {
	rec := &recorder{}
	p, err := New(Config{
		Stages: []Stage{rec.stage("body"), rec.stage("headers"), rec.stage("session")},
		Routes: []Route{
			{Prefix: "/api/v1/user", Handler: rec.handler("user")},
			{Prefix: "/api/v1/post", Stages: []Stage{rec.stage("identity")}, Handler: rec.handler("post")},
		},
	})
	require.NoError(t, err)

	w := serve(t, p, http.MethodGet, "/api/v1/post/7")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"body", "headers", "session", "identity", "post /7"}, rec.calls)

	rec.calls = nil
	serve(t, p, http.MethodPost, "/api/v1/user")
	assert.Equal(t, []string{"body", "headers", "session", "user /"}, rec.calls)
}

func TestServeHTTP_LongestPrefixWins(t *testing.T) {
	rec := &recorder{}
	p, err := New(Config{
		Routes: []Route{
			{Prefix: "/api", Handler: rec.handler("api")},
			{Prefix: "/api/v1/post", Handler: rec.handler("post")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/api/v1/post", "/api"}, p.Prefixes())

	serve(t, p, http.MethodGet, "/api/v1/post/1")
	serve(t, p, http.MethodGet, "/api/v1/postal")
	assert.Equal(t, []string{"post /1", "api /v1/postal"}, rec.calls)
}

func TestServeHTTP_FallbackNotFound(t *testing.T) {
	rec := &recorder{}
	p, err := New(Config{
		Stages: []Stage{rec.stage("body")},
		Routes: []Route{{Prefix: "/api/v1/user", Handler: rec.handler("user")}},
	})
	require.NoError(t, err)

	for _, target := range []string{"/", "/api", "/api/v1/users", "/nope?x=1"} {
		w := serve(t, p, http.MethodGet, target)
		assert.Equal(t, http.StatusNotFound, w.Code, target)
		assert.Equal(t, []Message{{Message: "Not Found"}}, decodeErrors(t, w).Errors, target)
	}
	assert.Equal(t, []string{"body", "body", "body", "body"}, rec.calls)
}

func TestServeHTTP_RouteStageFailureSkipsHandler(t *testing.T) {
	rec := &recorder{}
	deny := Func("identity", func(ex *Exchange) Result {
		return Fail(UnauthorizedError())
	})
	p, err := New(Config{
		Routes: []Route{{Prefix: "/api/v1/post", Stages: []Stage{deny}, Handler: rec.handler("post")}},
	})
	require.NoError(t, err)

	w := serve(t, p, http.MethodDelete, "/api/v1/post/1")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, rec.calls)
}

func TestServeHTTP_RespondShortCircuits(t *testing.T) {
	rec := &recorder{}
	limit := Func("ratelimit", func(ex *Exchange) Result {
		http.Error(ex.Writer, "slow down", http.StatusTooManyRequests)
		return Respond()
	})
	p, err := New(Config{
		Stages: []Stage{limit, rec.stage("session")},
		Routes: []Route{{Prefix: "/api", Handler: rec.handler("api")}},
	})
	require.NoError(t, err)

	w := serve(t, p, http.MethodGet, "/api/x")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "slow down\n", w.Body.String())
	assert.Empty(t, rec.calls)
}

func TestServeHTTP_StageMutationsVisibleDownstream(t *testing.T) {
	attach := Func("attach", func(ex *Exchange) Result {
		ex.Request = ex.Request.WithContext(context.WithValue(ex.Request.Context(), ctxKey("k"), "v"))
		ex.Body = map[string]any{"a": 1.0}
		return Proceed()
	})

	var seen any
	var body any
	p, err := New(Config{
		Stages: []Stage{attach},
		Routes: []Route{{Prefix: "/a", Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = r.Context().Value(ctxKey("k"))
			ex, ok := ExchangeFrom(r.Context())
			require.True(t, ok)
			body = ex.Body
		})}},
	})
	require.NoError(t, err)

	serve(t, p, http.MethodGet, "/a")
	assert.Equal(t, "v", seen)
	assert.Equal(t, map[string]any{"a": 1.0}, body)
}

func TestServeHTTP_AbortFromHandler(t *testing.T) {
	p, err := New(Config{
		Routes: []Route{{Prefix: "/a", Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Abort(w, r, ValidationError(Message{Message: "Email in use", Field: "email"}))
			Abort(w, r, ForbiddenError())
		})}},
	})
	require.NoError(t, err)

	w := serve(t, p, http.MethodPost, "/a")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []Message{{Message: "Email in use", Field: "email"}}, decodeErrors(t, w).Errors)
}

func TestServeHTTP_PanicYieldsSingleResponse(t *testing.T) {
	calls := 0
	errHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		calls++
		RenderError(w, err)
	}

	t.Run("handler", func(t *testing.T) {
		calls = 0
		p, err := New(Config{
			ErrorHandler: errHandler,
			Routes: []Route{{Prefix: "/a", Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic("db exploded: password=hunter2")
			})}},
		})
		require.NoError(t, err)

		w := serve(t, p, http.MethodGet, "/a")

		assert.Equal(t, 1, calls)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, []Message{{Message: GenericMessage}}, decodeErrors(t, w).Errors)
		assert.NotContains(t, w.Body.String(), "hunter2")
	})

	t.Run("stage", func(t *testing.T) {
		calls = 0
		rec := &recorder{}
		boom := Func("boom", func(ex *Exchange) Result { panic(errors.New("boom")) })
		p, err := New(Config{
			ErrorHandler: errHandler,
			Stages:       []Stage{boom, rec.stage("after")},
		})
		require.NoError(t, err)

		w := serve(t, p, http.MethodGet, "/a")

		assert.Equal(t, 1, calls)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Empty(t, rec.calls)
	})
}

func TestServeHTTP_FailureAfterCommitIsNotRendered(t *testing.T) {
	calls := 0
	p, err := New(Config{
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) { calls++ },
		Routes: []Route{{Prefix: "/a", Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte("partial"))
			Abort(w, r, errors.New("late"))
		})}},
	})
	require.NoError(t, err)

	w := serve(t, p, http.MethodGet, "/a")

	assert.Equal(t, 0, calls)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "partial", w.Body.String())
}

func TestServeHTTP_ErrorHandlerPanicStillResponds(t *testing.T) {
	p, err := New(Config{
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) { panic("renderer broke") },
	})
	require.NoError(t, err)

	w := serve(t, p, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestServeHTTP_CustomFallback(t *testing.T) {
	p, err := New(Config{
		Fallback: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}),
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusTeapot, serve(t, p, http.MethodGet, "/x").Code)
}

func TestFromMiddleware(t *testing.T) {
	t.Run("proceeds with replaced request", func(t *testing.T) {
		mw := func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Mw", "1")
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey("mw"), true)))
				next.ServeHTTP(w, r)
			})
		}

		var fromCtx any
		p, err := New(Config{
			Stages: []Stage{FromMiddleware("mw", mw)},
			Routes: []Route{{Prefix: "/a", Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fromCtx = r.Context().Value(ctxKey("mw"))
			})}},
		})
		require.NoError(t, err)

		w := serve(t, p, http.MethodGet, "/a")
		assert.Equal(t, "1", w.Header().Get("X-Mw"))
		assert.Equal(t, true, fromCtx)
	})

	t.Run("responds when next is not called", func(t *testing.T) {
		rec := &recorder{}
		mw := func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
		}
		p, err := New(Config{
			Stages: []Stage{FromMiddleware("preflight", mw), rec.stage("after")},
		})
		require.NoError(t, err)

		w := serve(t, p, http.MethodOptions, "/a")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, rec.calls)
	})

	t.Run("fails when middleware aborts", func(t *testing.T) {
		mw := func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Abort(w, r, ForbiddenError())
			})
		}
		p, err := New(Config{Stages: []Stage{FromMiddleware("guard", mw)}})
		require.NoError(t, err)

		assert.Equal(t, http.StatusForbidden, serve(t, p, http.MethodGet, "/a").Code)
	})
}

func TestAbort_OutsidePipelineRendersImmediately(t *testing.T) {
	w := httptest.NewRecorder()
	Abort(w, httptest.NewRequest(http.MethodGet, "/", nil), NotFoundError())

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}
