package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-posts-api/models"
)

const (
	FieldTitle   = "title"
	FieldContent = "content"

	MaxTitleLength = 200
)

var postFields = []string{FieldTitle, FieldContent}

type PostValidator struct{}

func NewPostValidator() Validator {
	return &PostValidator{}
}

func (v *PostValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreatePostRequest:
		return v.validateCreate(value, fields...)
	case *models.CreatePostRequest:
		return v.validateCreate(*value, fields...)

	case models.PostUpdate:
		return v.validateUpdate(value, fields...)
	case *models.PostUpdate:
		return v.validateUpdate(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *PostValidator) validateCreate(req models.CreatePostRequest, fields ...string) error {
	selected, err := scope(postFields, fields)
	if err != nil {
		return err
	}

	var errs collector
	if selected[FieldTitle] {
		checkTitle(&errs, req.Title)
	}
	if selected[FieldContent] {
		checkContent(&errs, req.Content)
	}
	return errs.err()
}

// validateUpdate checks only the fields present in the update.
func (v *PostValidator) validateUpdate(update models.PostUpdate, fields ...string) error {
	selected, err := scope(postFields, fields)
	if err != nil {
		return err
	}

	var errs collector
	if selected[FieldTitle] && update.Title != nil {
		checkTitle(&errs, *update.Title)
	}
	if selected[FieldContent] && update.Content != nil {
		checkContent(&errs, *update.Content)
	}
	return errs.err()
}

func checkTitle(errs *collector, title string) {
	switch {
	case strings.TrimSpace(title) == "":
		errs.add(FieldTitle, "Title is required")
	case utf8.RuneCountInString(title) > MaxTitleLength:
		errs.add(FieldTitle, "Title must be at most 200 characters")
	}
}

func checkContent(errs *collector, content string) {
	if strings.TrimSpace(content) == "" {
		errs.add(FieldContent, "Content is required")
	}
}
