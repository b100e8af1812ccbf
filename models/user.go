package models

import "time"

// User represents an account entity used for authentication.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the unique identifier of the user.
	ID int64 `json:"id"`

	// Email is the unique login identifier of the user.
	Email string `json:"email"`

	// Password stores the bcrypt hash of the user's password.
	// It is never serialized.
	Password string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// CurrentUser is the identity payload resolved from a verified session token.
// It is attached to the request context by identity resolution.
type CurrentUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Credentials is the body of the sign-up and sign-in requests.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CurrentUserResponse is returned by the current-user endpoint.
// CurrentUser is nil when the request carries no valid session.
type CurrentUserResponse struct {
	CurrentUser *CurrentUser `json:"currentUser"`
}
