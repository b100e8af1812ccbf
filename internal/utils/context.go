// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// HTTP response writing, an HTTP client, JWT token generation
// and validation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-posts-api/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// CurrentUserCtxKey is the key used to store the resolved identity in the context.
var CurrentUserCtxKey = contextKey("currentUser")

// WithCurrentUser returns a copy of ctx carrying the resolved identity.
func WithCurrentUser(ctx context.Context, user models.CurrentUser) context.Context {
	return context.WithValue(ctx, CurrentUserCtxKey, user)
}

// CurrentUserFromContext retrieves the identity attached by identity resolution.
//
// Returns the user and an ok flag:
//   - ok == true : identity is present
//   - ok == false: value is missing or has an unexpected type
func CurrentUserFromContext(ctx context.Context) (models.CurrentUser, bool) {
	user, ok := ctx.Value(CurrentUserCtxKey).(models.CurrentUser)
	return user, ok
}
