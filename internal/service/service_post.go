package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-posts-api/internal/logger"
	"github.com/MKhiriev/go-posts-api/internal/store"
	"github.com/MKhiriev/go-posts-api/models"
)

type postService struct {
	postRepository store.PostRepository
	logger         *logger.Logger
}

func NewPostService(postRepository store.PostRepository, logger *logger.Logger) PostService {
	return &postService{
		postRepository: postRepository,
		logger:         logger,
	}
}

func (s *postService) CreatePost(ctx context.Context, authorID int64, req models.CreatePostRequest) (models.Post, error) {
	if authorID <= 0 {
		return models.Post{}, ErrInvalidDataProvided
	}

	post, err := s.postRepository.CreatePost(ctx, models.Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: authorID,
	})
	if err != nil {
		return models.Post{}, fmt.Errorf("error creating post: %w", err)
	}

	return post, nil
}

func (s *postService) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := s.postRepository.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return posts, nil
}

func (s *postService) GetPost(ctx context.Context, id int64) (models.Post, error) {
	post, err := s.postRepository.GetPost(ctx, id)
	if err != nil {
		return models.Post{}, mapPostError(err)
	}
	return post, nil
}

// UpdatePost applies a partial update on behalf of update.AuthorID.
func (s *postService) UpdatePost(ctx context.Context, update models.PostUpdate) (models.Post, error) {
	if err := s.checkOwner(ctx, update.ID, update.AuthorID); err != nil {
		return models.Post{}, err
	}

	post, err := s.postRepository.UpdatePost(ctx, update)
	if err != nil {
		return models.Post{}, mapPostError(err)
	}
	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, id, authorID int64) error {
	if err := s.checkOwner(ctx, id, authorID); err != nil {
		return err
	}

	if err := s.postRepository.DeletePost(ctx, id); err != nil {
		return mapPostError(err)
	}
	return nil
}

func (s *postService) checkOwner(ctx context.Context, id, userID int64) error {
	post, err := s.postRepository.GetPost(ctx, id)
	if err != nil {
		return mapPostError(err)
	}

	if post.AuthorID != userID {
		logger.FromContextOr(ctx, s.logger).Warn().
			Int64("post_id", id).
			Int64("user_id", userID).
			Msg("post mutation by non-author")
		return ErrNotPostOwner
	}
	return nil
}

func mapPostError(err error) error {
	if errors.Is(err, store.ErrPostNotFound) {
		return ErrPostNotFound
	}
	return fmt.Errorf("post storage error: %w", err)
}
