package service

// AuthServiceWrapper decorates an AuthService, e.g. with input validation.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// PostServiceWrapper decorates a PostService, e.g. with input validation.
type PostServiceWrapper interface {
	Wrap(PostService) PostService
}
