package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-posts-api/internal/logger"
	"github.com/MKhiriev/go-posts-api/internal/mock"
	"github.com/MKhiriev/go-posts-api/internal/store"
	"github.com/MKhiriev/go-posts-api/models"
)

func newTestPostSvc(t *testing.T) (PostService, *mock.MockPostRepository) {
	t.Helper()
	repo := mock.NewMockPostRepository(gomock.NewController(t))
	return NewPostService(repo, logger.Nop()), repo
}

func TestPostService_CreatePost(t *testing.T) {
	svc, repo := newTestPostSvc(t)
	ctx := context.Background()

	repo.EXPECT().CreatePost(ctx, models.Post{Title: "t", Content: "c", AuthorID: 4}).
		Return(models.Post{ID: 1, Title: "t", Content: "c", AuthorID: 4}, nil)

	post, err := svc.CreatePost(ctx, 4, models.CreatePostRequest{Title: "t", Content: "c"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), post.ID)
}

func TestPostService_CreatePost_NoAuthor(t *testing.T) {
	svc, _ := newTestPostSvc(t)

	_, err := svc.CreatePost(context.Background(), 0, models.CreatePostRequest{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestPostService_GetPost_NotFound(t *testing.T) {
	svc, repo := newTestPostSvc(t)

	repo.EXPECT().GetPost(gomock.Any(), int64(2)).Return(models.Post{}, store.ErrPostNotFound)

	_, err := svc.GetPost(context.Background(), 2)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostService_ListPosts_Error(t *testing.T) {
	svc, repo := newTestPostSvc(t)
	dbErr := errors.New("boom")

	repo.EXPECT().ListPosts(gomock.Any()).Return(nil, dbErr)

	_, err := svc.ListPosts(context.Background())
	assert.ErrorIs(t, err, dbErr)
}

func TestPostService_UpdatePost(t *testing.T) {
	title := "new"
	update := models.PostUpdate{ID: 5, AuthorID: 1, Title: &title}

	t.Run("owner", func(t *testing.T) {
		svc, repo := newTestPostSvc(t)
		gomock.InOrder(
			repo.EXPECT().GetPost(gomock.Any(), int64(5)).Return(models.Post{ID: 5, AuthorID: 1}, nil),
			repo.EXPECT().UpdatePost(gomock.Any(), update).Return(models.Post{ID: 5, AuthorID: 1, Title: title}, nil),
		)

		post, err := svc.UpdatePost(context.Background(), update)
		require.NoError(t, err)
		assert.Equal(t, title, post.Title)
	})

	t.Run("non owner", func(t *testing.T) {
		svc, repo := newTestPostSvc(t)
		repo.EXPECT().GetPost(gomock.Any(), int64(5)).Return(models.Post{ID: 5, AuthorID: 2}, nil)

		_, err := svc.UpdatePost(context.Background(), update)
		assert.ErrorIs(t, err, ErrNotPostOwner)
	})

	t.Run("missing", func(t *testing.T) {
		svc, repo := newTestPostSvc(t)
		repo.EXPECT().GetPost(gomock.Any(), int64(5)).Return(models.Post{}, store.ErrPostNotFound)

		_, err := svc.UpdatePost(context.Background(), update)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("deleted concurrently", func(t *testing.T) {
		svc, repo := newTestPostSvc(t)
		repo.EXPECT().GetPost(gomock.Any(), int64(5)).Return(models.Post{ID: 5, AuthorID: 1}, nil)
		repo.EXPECT().UpdatePost(gomock.Any(), update).Return(models.Post{}, store.ErrPostNotFound)

		_, err := svc.UpdatePost(context.Background(), update)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestPostService_DeletePost(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		svc, repo := newTestPostSvc(t)
		repo.EXPECT().GetPost(gomock.Any(), int64(5)).Return(models.Post{ID: 5, AuthorID: 1}, nil)
		repo.EXPECT().DeletePost(gomock.Any(), int64(5)).Return(nil)

		assert.NoError(t, svc.DeletePost(context.Background(), 5, 1))
	})

	t.Run("non owner", func(t *testing.T) {
		svc, repo := newTestPostSvc(t)
		repo.EXPECT().GetPost(gomock.Any(), int64(5)).Return(models.Post{ID: 5, AuthorID: 1}, nil)

		assert.ErrorIs(t, svc.DeletePost(context.Background(), 5, 3), ErrNotPostOwner)
	})
}
