// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrInvalidPostID is returned when the {id} path segment is not a
	// positive integer.
	ErrInvalidPostID = errors.New("invalid post id")

	// ErrNoSession is returned when a router runs outside the session stage.
	ErrNoSession = errors.New("no session attached to request")

	// ErrNoCurrentUser is returned when a protected router runs without a
	// resolved identity.
	ErrNoCurrentUser = errors.New("no current user attached to request")
)
