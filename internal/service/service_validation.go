package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-posts-api/internal/validators"
	"github.com/MKhiriev/go-posts-api/models"
)

// AuthValidationService checks credentials before sign-up and sign-in.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewUserValidator(),
	}
}

func (v *AuthValidationService) Wrap(inner AuthService) AuthService {
	v.inner = inner
	return v
}

func (v *AuthValidationService) SignUp(ctx context.Context, credentials models.Credentials) (models.User, error) {
	if err := v.validator.Validate(ctx, credentials); err != nil {
		return models.User{}, fmt.Errorf("error validating sign up: %w", err)
	}
	return v.inner.SignUp(ctx, credentials)
}

// SignIn only checks the email format; password rules apply at sign-up.
func (v *AuthValidationService) SignIn(ctx context.Context, credentials models.Credentials) (models.User, error) {
	if err := v.validator.Validate(ctx, credentials, validators.FieldEmail); err != nil {
		return models.User{}, fmt.Errorf("error validating sign in: %w", err)
	}
	return v.inner.SignIn(ctx, credentials)
}

func (v *AuthValidationService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return v.inner.CreateToken(ctx, user)
}

func (v *AuthValidationService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return v.inner.ParseToken(ctx, tokenString)
}

// PostValidationService checks post bodies before they reach storage.
type PostValidationService struct {
	inner     PostService
	validator validators.Validator
}

func NewPostValidationService() PostServiceWrapper {
	return &PostValidationService{
		validator: validators.NewPostValidator(),
	}
}

func (v *PostValidationService) Wrap(inner PostService) PostService {
	v.inner = inner
	return v
}

func (v *PostValidationService) CreatePost(ctx context.Context, authorID int64, req models.CreatePostRequest) (models.Post, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Post{}, fmt.Errorf("error validating post: %w", err)
	}
	return v.inner.CreatePost(ctx, authorID, req)
}

func (v *PostValidationService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return v.inner.ListPosts(ctx)
}

func (v *PostValidationService) GetPost(ctx context.Context, id int64) (models.Post, error) {
	return v.inner.GetPost(ctx, id)
}

func (v *PostValidationService) UpdatePost(ctx context.Context, update models.PostUpdate) (models.Post, error) {
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Post{}, fmt.Errorf("error validating post update: %w", err)
	}
	return v.inner.UpdatePost(ctx, update)
}

func (v *PostValidationService) DeletePost(ctx context.Context, id, authorID int64) error {
	return v.inner.DeletePost(ctx, id, authorID)
}
