package service

import (
	"github.com/MKhiriev/crm-gateway/internal/config"
	"github.com/MKhiriev/crm-gateway/internal/logger"
	"github.com/MKhiriev/crm-gateway/internal/metrics"
	"github.com/MKhiriev/crm-gateway/internal/notify"
	"github.com/MKhiriev/crm-gateway/internal/store"
	"github.com/MKhiriev/crm-gateway/models"
)

type Services struct {
	AuthService    AuthService
	AppInfoService AppInfoService
}

func NewServices(repositories *store.Repositories, notifier notify.ResetNotifier, cfg *config.StructuredConfig, m *metrics.Metrics, info models.BuildInfo, logger *logger.Logger) *Services {
	logger.Info().Msg("creating services...")

	return &Services{
		AuthService:    NewAuthService(repositories.CredentialRepository, notifier, cfg.App, WithMetrics(m)),
		AppInfoService: NewAppInfoService(info),
	}
}
