package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-posts-api/internal/logger"
	"github.com/MKhiriev/go-posts-api/models"
)

func TestNewAppInfoService_EmptyVersion_ReturnsError(t *testing.T) {
	svc, err := NewAppInfoService(models.NewAppBuildInfo("", "", ""), "pgx", logger.Nop())

	assert.Nil(t, svc)
	assert.True(t, errors.Is(err, ErrVersionIsNotSpecified))
}

func TestAppInfoService_GetAppInfo(t *testing.T) {
	svc, err := NewAppInfoService(models.NewAppBuildInfo("1.2.3", "2026-01-01", "abc123"), "sqlite3", logger.Nop())
	require.NoError(t, err)

	impl := svc.(*appInfoService)
	impl.now = func() time.Time { return impl.startedAt.Add(time.Minute) }

	info := svc.GetAppInfo(context.Background())
	assert.Equal(t, models.AppInfo{
		Version:   "1.2.3",
		BuildDate: "2026-01-01",
		Commit:    "abc123",
		Driver:    "sqlite3",
		Uptime:    time.Minute,
	}, info)
}
