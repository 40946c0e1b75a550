package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-account-keeper/internal/config"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/models"
)

type appInfoService struct {
	appVersion string
	startedAt  time.Time
	now        func() time.Time

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	now := time.Now
	return &appInfoService{
		appVersion: cfg.Version,
		startedAt:  now().UTC(),
		now:        now,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

func (s *appInfoService) GetAppInfo(ctx context.Context) models.AppInfoResponse {
	return models.AppInfoResponse{
		Version:       s.appVersion,
		StartedAt:     s.startedAt,
		UptimeSeconds: int64(s.now().Sub(s.startedAt) / time.Second),
	}
}
