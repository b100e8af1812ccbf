package store

import "github.com/MKhiriev/go-posts-api/internal/logger"

// Repositories groups every repository backed by one database handle.
type Repositories struct {
	UserRepository UserRepository
	PostRepository PostRepository
}

func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository: NewUserRepository(db, log),
		PostRepository: NewPostRepository(db, log),
	}
}
