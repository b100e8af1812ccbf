package utils

import "errors"

var (
	ErrEmptyBody   = errors.New("empty request body")
	ErrInvalidBody = errors.New("invalid JSON body")

	ErrUnsupportedMediaType = errors.New("request body is not JSON")
)
