package store

import (
	"github.com/MKhiriev/crm-gateway/internal/adapter"
	"github.com/MKhiriev/crm-gateway/internal/config"
	"github.com/MKhiriev/crm-gateway/internal/logger"
)

// Repositories groups the stores used by the service layer.
type Repositories struct {
	CredentialRepository CredentialRepository
}

// NewRepositories wires the stores on top of the upstream executor.
func NewRepositories(executor adapter.Executor, cfg *config.StructuredConfig, logger *logger.Logger) *Repositories {
	logger.Info().Msg("creating repositories...")

	return &Repositories{
		CredentialRepository: NewCredentialRepository(executor, cfg.CRM.Module, cfg.App.BcryptCost, logger),
	}
}
