package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unrolled/secure"

	"github.com/MKhiriev/crm-gateway/internal/config"
	"github.com/MKhiriev/crm-gateway/internal/logger"
	"github.com/MKhiriev/crm-gateway/internal/service"
	"github.com/MKhiriev/crm-gateway/internal/validators"
)

type Handler struct {
	services  *service.Services
	validator validators.Validator
	limits    config.Server
	secure    *secure.Secure
	metrics   http.Handler

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. gatherer backs GET /metrics; nil means
// the default prometheus registry.
func NewHandler(services *service.Services, cfg config.Server, gatherer prometheus.Gatherer, logger *logger.Logger) *Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		validator: validators.NewRequestValidator(),
		limits:    cfg,
		secure: secure.New(secure.Options{
			FrameDeny:             true,
			ContentTypeNosniff:    true,
			BrowserXssFilter:      true,
			ReferrerPolicy:        "no-referrer",
			ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		}),
		metrics: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		logger:  logger,
	}
}
