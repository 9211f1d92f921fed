package main

import (
	"context"
	"fmt"
	stdlog "log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MKhiriev/crm-gateway/internal/adapter"
	"github.com/MKhiriev/crm-gateway/internal/config"
	"github.com/MKhiriev/crm-gateway/internal/handler"
	"github.com/MKhiriev/crm-gateway/internal/logger"
	"github.com/MKhiriev/crm-gateway/internal/metrics"
	"github.com/MKhiriev/crm-gateway/internal/notify"
	"github.com/MKhiriev/crm-gateway/internal/server"
	"github.com/MKhiriev/crm-gateway/internal/service"
	"github.com/MKhiriev/crm-gateway/internal/store"
	"github.com/MKhiriev/crm-gateway/internal/tokencache"
	"github.com/MKhiriev/crm-gateway/internal/workers"
	"github.com/MKhiriev/crm-gateway/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(info)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		// the logger level comes from the config, so use the standard logger here
		stdlog.Fatalf("error getting configs: %v", err)
	}

	log := logger.NewLogger("crm-gateway", cfg.App.LogLevel)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	tokens := tokencache.New(
		adapter.NewOAuthRefresher(cfg.CRM, log),
		tokencache.WithSafetyMargin(cfg.CRM.TokenSafetyMargin),
		tokencache.WithRefreshTimeout(cfg.CRM.RequestTimeout),
		tokencache.WithMetrics(m),
		tokencache.WithLogger(log),
	)
	executor := adapter.NewCRMExecutor(cfg.CRM, tokens, m, log)

	repositories := store.NewRepositories(executor, cfg, log)
	services := service.NewServices(repositories, notify.New(cfg.Notify, log), cfg, m, info, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, registry, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	ws := workers.NewWorkers(
		workers.NewTokenKeeper(tokens, cfg.Workers.TokenWarmupInterval, log),
	)

	srv, err := server.NewServer(handlers, ws, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer(context.Background())
}

func printBuildInfo(info models.BuildInfo) {
	fmt.Printf("Build version: %s\n", info.Version)
	fmt.Printf("Build date: %s\n", info.Date)
	fmt.Printf("Build commit: %s\n", info.Commit)
}
