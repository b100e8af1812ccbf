package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-posts-api/internal/logger"
	"github.com/MKhiriev/go-posts-api/models"
)

type appInfoService struct {
	build     models.AppBuildInfo
	driver    string
	startedAt time.Time
	now       func() time.Time

	logger *logger.Logger
}

func NewAppInfoService(build models.AppBuildInfo, driver string, logger *logger.Logger) (AppInfoService, error) {
	if build.BuildVersion() == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		build:     build,
		driver:    driver,
		startedAt: time.Now(),
		now:       time.Now,
		logger:    logger,
	}, nil
}

func (s *appInfoService) GetAppInfo(ctx context.Context) models.AppInfo {
	return models.AppInfo{
		Version:   s.build.BuildVersion(),
		BuildDate: s.build.BuildDate(),
		Commit:    s.build.BuildCommit(),
		Driver:    s.driver,
		Uptime:    s.now().Sub(s.startedAt),
	}
}
