package models

import "time"

// Post is a text entry authored by a user.
type Post struct {
	// ID is the unique identifier of the post.
	ID int64 `json:"id"`

	// Title is a short non-empty headline.
	Title string `json:"title"`

	// Content is the post body.
	Content string `json:"content"`

	// AuthorID references the owning user. Only the author may
	// update or delete the post.
	AuthorID int64 `json:"author_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Post model.
func (p Post) TableName() string {
	return "posts"
}

// CreatePostRequest is the body of a post creation request.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdatePostRequest is the body of a post update request.
// Only non-nil fields are updated.
type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// PostUpdate carries a partial update together with the identifiers
// needed to enforce ownership.
type PostUpdate struct {
	ID       int64
	AuthorID int64
	Title    *string
	Content  *string
}
