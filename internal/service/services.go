package service

import (
	"github.com/MKhiriev/go-posts-api/internal/config"
	"github.com/MKhiriev/go-posts-api/internal/logger"
	"github.com/MKhiriev/go-posts-api/internal/store"
	"github.com/MKhiriev/go-posts-api/models"
)

type Services struct {
	AuthService    AuthService
	PostService    PostService
	AppInfoService AppInfoService
}

// NewServices builds the services with input validation applied in front
// of the auth and post services.
func NewServices(repos *store.Repositories, cfg config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(build, cfg.Storage.DB.Driver, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthValidationService().Wrap(NewAuthService(repos.UserRepository, cfg.App, logger)),
		PostService:    NewPostValidationService().Wrap(NewPostService(repos.PostRepository, logger)),
		AppInfoService: appInfo,
	}, nil
}
