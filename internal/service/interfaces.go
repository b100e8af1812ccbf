package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-posts-api/models"
)

// AuthService registers users, checks credentials and issues the session JWT.
type AuthService interface {
	SignUp(ctx context.Context, credentials models.Credentials) (models.User, error)
	SignIn(ctx context.Context, credentials models.Credentials) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// PostService manages posts. Update and delete are allowed to the author only.
type PostService interface {
	CreatePost(ctx context.Context, authorID int64, req models.CreatePostRequest) (models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, id int64) (models.Post, error)
	UpdatePost(ctx context.Context, update models.PostUpdate) (models.Post, error)
	DeletePost(ctx context.Context, id, authorID int64) error
}

// AppInfoService reports the running build.
type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.AppInfo
}
