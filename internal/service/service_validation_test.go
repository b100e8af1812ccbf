package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-posts-api/internal/mock"
	"github.com/MKhiriev/go-posts-api/internal/validators"
	"github.com/MKhiriev/go-posts-api/models"
)

func TestAuthValidationService_RejectsBeforeInner(t *testing.T) {
	inner := mock.NewMockAuthService(gomock.NewController(t))
	svc := NewAuthValidationService().Wrap(inner)

	_, err := svc.SignUp(context.Background(), models.Credentials{Email: "bad", Password: "x"})
	assert.ErrorIs(t, err, validators.ErrInvalidInput)

	var fe validators.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Len(t, fe, 2)
}

func TestAuthValidationService_SignInChecksEmailOnly(t *testing.T) {
	inner := mock.NewMockAuthService(gomock.NewController(t))
	svc := NewAuthValidationService().Wrap(inner)
	creds := models.Credentials{Email: "a@b.io", Password: "x"}

	inner.EXPECT().SignIn(gomock.Any(), creds).Return(models.User{ID: 1}, nil)

	user, err := svc.SignIn(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

func TestAuthValidationService_DelegatesTokens(t *testing.T) {
	inner := mock.NewMockAuthService(gomock.NewController(t))
	svc := NewAuthValidationService().Wrap(inner)

	inner.EXPECT().ParseToken(gomock.Any(), "raw").Return(models.Token{UserID: 2}, nil)

	token, err := svc.ParseToken(context.Background(), "raw")
	require.NoError(t, err)
	assert.Equal(t, int64(2), token.UserID)
}

func TestPostValidationService(t *testing.T) {
	inner := mock.NewMockPostService(gomock.NewController(t))
	svc := NewPostValidationService().Wrap(inner)
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, 1, models.CreatePostRequest{Title: "", Content: "c"})
	assert.ErrorIs(t, err, validators.ErrInvalidInput)

	req := models.CreatePostRequest{Title: "t", Content: "c"}
	inner.EXPECT().CreatePost(ctx, int64(1), req).Return(models.Post{ID: 3}, nil)
	post, err := svc.CreatePost(ctx, 1, req)
	require.NoError(t, err)
	assert.Equal(t, int64(3), post.ID)

	empty := ""
	_, err = svc.UpdatePost(ctx, models.PostUpdate{ID: 3, AuthorID: 1, Content: &empty})
	assert.ErrorIs(t, err, validators.ErrInvalidInput)

	inner.EXPECT().DeletePost(ctx, int64(3), int64(1)).Return(nil)
	assert.NoError(t, svc.DeletePost(ctx, 3, 1))
}
