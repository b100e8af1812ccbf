package store

import (
	"context"

	"github.com/MKhiriev/go-posts-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	// CreateUser inserts a user and returns it with server-assigned fields.
	// A taken email yields ErrEmailAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail returns ErrUserNotFound when no account matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// PostRepository persists posts.
type PostRepository interface {
	CreatePost(ctx context.Context, post models.Post) (models.Post, error)
	// ListPosts returns all posts, newest first.
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, id int64) (models.Post, error)
	UpdatePost(ctx context.Context, update models.PostUpdate) (models.Post, error)
	DeletePost(ctx context.Context, id int64) error
}

// ErrorClassificator interprets driver errors.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}
