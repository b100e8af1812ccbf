// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed Go client for the go-posts-api HTTP API.
//
// The session is carried by the cookie the server issues on sign-up and
// sign-in; the client keeps it in its cookie jar and replays it on every
// later request. Failed requests return an *APIError wrapping a sentinel
// chosen by status code, so callers can use [errors.Is] (e.g. [ErrForbidden]
// for 403) and still read the server's messages.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-posts-api/models"
)

// APIClient is the client side of the public API.
type APIClient interface {
	// SignUp registers a user and starts a session.
	SignUp(ctx context.Context, credentials models.Credentials) (models.CurrentUser, error)

	// SignIn starts a session for an existing user.
	SignIn(ctx context.Context, credentials models.Credentials) (models.CurrentUser, error)

	// SignOut clears the session.
	SignOut(ctx context.Context) error

	// CurrentUser returns the session's user, or nil when signed out.
	CurrentUser(ctx context.Context) (*models.CurrentUser, error)

	CreatePost(ctx context.Context, req models.CreatePostRequest) (models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, id int64) (models.Post, error)

	// UpdatePost applies the non-nil fields of req to the post.
	UpdatePost(ctx context.Context, id int64, req models.UpdatePostRequest) (models.Post, error)

	DeletePost(ctx context.Context, id int64) error
}
