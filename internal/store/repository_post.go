// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-posts-api/internal/logger"
	"github.com/MKhiriev/go-posts-api/models"
)

const postColumns = "id, title, content, author_id, created_at, updated_at"

type postRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewPostRepository(db *DB, logger *logger.Logger) PostRepository {
	logger.Debug().Msg("creating post repository")
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (models.Post, error) {
	var p models.Post
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *postRepository) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	now := time.Now().UTC()
	query, args, err := r.db.builder.
		Insert(post.TableName()).
		Columns("title", "content", "author_id", "created_at", "updated_at").
		Values(post.Title, post.Content, post.AuthorID, now, now).
		Suffix("RETURNING " + postColumns).
		ToSql()
	if err != nil {
		return models.Post{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanPost(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*postRepository.CreatePost").Msg("error inserting post")
		return models.Post{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

func (r *postRepository) ListPosts(ctx context.Context) ([]models.Post, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(postColumns).
		From(models.Post{}.TableName()).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var rows *sql.Rows
	err = r.db.retry(ctx, func() error {
		var queryErr error
		rows, queryErr = r.db.QueryContext(ctx, query, args...)
		return queryErr
	})
	if err != nil {
		log.Err(err).Str("func", "*postRepository.ListPosts").Msg("error listing posts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return posts, nil
}

func (r *postRepository) GetPost(ctx context.Context, id int64) (models.Post, error) {
	query, args, err := r.db.builder.
		Select(postColumns).
		From(models.Post{}.TableName()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Post{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var post models.Post
	err = r.db.retry(ctx, func() error {
		var scanErr error
		post, scanErr = scanPost(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Post{}, ErrPostNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*postRepository.GetPost").Msg("error getting post")
		return models.Post{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return post, nil
}

// UpdatePost applies the non-nil fields of update. Ownership is checked by
// the caller; the author filter here only guards against a post changing
// hands between the check and the write.
func (r *postRepository) UpdatePost(ctx context.Context, update models.PostUpdate) (models.Post, error) {
	builder := r.db.builder.
		Update(models.Post{}.TableName()).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": update.ID, "author_id": update.AuthorID}).
		Suffix("RETURNING " + postColumns)

	if update.Title != nil {
		builder = builder.Set("title", *update.Title)
	}
	if update.Content != nil {
		builder = builder.Set("content", *update.Content)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return models.Post{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanPost(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Post{}, ErrPostNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*postRepository.UpdatePost").Msg("error updating post")
		return models.Post{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

func (r *postRepository) DeletePost(ctx context.Context, id int64) error {
	query, args, err := r.db.builder.
		Delete(models.Post{}.TableName()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*postRepository.DeletePost").Msg("error deleting post")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrPostNotFound
	}

	return nil
}
