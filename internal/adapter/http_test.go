// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-posts-api/internal/pipeline"
	"github.com/MKhiriev/go-posts-api/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) APIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewHTTPAPIClient(srv.URL, time.Second)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "localhost:8080", want: "http://localhost:8080"},
		{raw: " https://api.example.com/ ", want: "https://api.example.com"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSignUp_KeepsSessionCookie(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/user/signup":
			var creds models.Credentials
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			assert.Equal(t, "ann@example.com", creds.Email)

			http.SetCookie(w, &http.Cookie{Name: "jwt", Value: "session-value", Path: "/"})
			writeJSON(w, http.StatusCreated, models.CurrentUser{ID: 1, Email: creds.Email})
		case "/api/v1/user/currentuser":
			cookie, err := r.Cookie("jwt")
			if err != nil {
				writeJSON(w, http.StatusOK, models.CurrentUserResponse{})
				return
			}
			assert.Equal(t, "session-value", cookie.Value)
			writeJSON(w, http.StatusOK, models.CurrentUserResponse{CurrentUser: &models.CurrentUser{ID: 1}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	user, err := c.SignUp(context.Background(), models.Credentials{Email: "ann@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	current, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, int64(1), current.ID)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		kind     error
		messages []pipeline.Message
	}{
		{
			name:     "validation",
			status:   http.StatusBadRequest,
			body:     `{"errors":[{"message":"Title is required","field":"title"}]}`,
			kind:     ErrBadRequest,
			messages: []pipeline.Message{{Message: "Title is required", Field: "title"}},
		},
		{
			name:     "forbidden",
			status:   http.StatusForbidden,
			body:     `{"errors":[{"message":"Forbidden"}]}`,
			kind:     ErrForbidden,
			messages: []pipeline.Message{{Message: "Forbidden"}},
		},
		{
			name:     "rate limited",
			status:   http.StatusTooManyRequests,
			body:     "Too many requests",
			kind:     ErrTooManyRequests,
			messages: []pipeline.Message{{Message: "Too many requests"}},
		},
		{
			name:   "unexpected",
			status: http.StatusTeapot,
			kind:   ErrUnexpectedStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.CreatePost(context.Background(), models.CreatePostRequest{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.messages, apiErr.Messages)
		})
	}
}

func TestPostRequests(t *testing.T) {
	title := "New"
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/post":
			writeJSON(w, http.StatusOK, []models.Post{{ID: 2}, {ID: 1}})
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/post/2":
			writeJSON(w, http.StatusOK, models.Post{ID: 2, Title: "Old"})
		case r.Method == http.MethodPut && r.URL.Path == "/api/v1/post/2":
			var req models.UpdatePostRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Nil(t, req.Content)
			updated := models.Post{ID: 2}
			if req.Title != nil {
				updated.Title = *req.Title
			}
			writeJSON(w, http.StatusOK, updated)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/v1/post/2":
			w.WriteHeader(http.StatusNoContent)
		default:
			writeJSON(w, http.StatusNotFound, pipeline.ErrorResponse{Errors: []pipeline.Message{{Message: "Not Found"}}})
		}
	})
	ctx := context.Background()

	posts, err := c.ListPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	post, err := c.GetPost(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Old", post.Title)

	post, err = c.UpdatePost(ctx, 2, models.UpdatePostRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New", post.Title)

	require.NoError(t, c.DeletePost(ctx, 2))

	_, err = c.GetPost(ctx, 3)
	assert.ErrorIs(t, err, ErrNotFound)
}
