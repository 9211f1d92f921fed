package service

import (
	"context"

	"github.com/MKhiriev/crm-gateway/models"
)

type appInfoService struct {
	info models.BuildInfo
}

// NewAppInfoService serves the build metadata the binary was linked with.
func NewAppInfoService(info models.BuildInfo) AppInfoService {
	return &appInfoService{info: info}
}

func (s *appInfoService) GetBuildInfo(ctx context.Context) models.BuildInfo {
	return s.info
}
