package handler

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/crm-gateway/internal/config"
	"github.com/MKhiriev/crm-gateway/internal/handler/http"
	"github.com/MKhiriev/crm-gateway/internal/logger"
	"github.com/MKhiriev/crm-gateway/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, gatherer prometheus.Gatherer, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{HTTP: http.NewHandler(services, cfg, gatherer, logger)}, nil
}
