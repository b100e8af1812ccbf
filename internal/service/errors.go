package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrEmailInUse          = errors.New("email in use")
	ErrInvalidCredentials  = errors.New("invalid credentials")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrPostNotFound = errors.New("post not found")
	ErrNotPostOwner = errors.New("user is not the author of the post")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
