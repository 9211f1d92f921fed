package server

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MKhiriev/crm-gateway/internal/config"
	"github.com/MKhiriev/crm-gateway/internal/handler"
	"github.com/MKhiriev/crm-gateway/internal/logger"
	"github.com/MKhiriev/crm-gateway/internal/workers"
)

const shutdownTimeout = 15 * time.Second

type server struct {
	httpServer *httpServer
	workers    *workers.Workers
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, ws *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		workers:    ws,
		logger:     logger,
	}, nil
}

func (s *server) RunServer(ctx context.Context) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	var wg sync.WaitGroup
	if s.workers != nil {
		wg.Go(func() { s.workers.Run(ctx) })
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- s.httpServer.RunServer() }()

	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop signal received")
	case err := <-serveErr:
		if err != nil {
			s.logger.Err(err).Msg("HTTP server failed")
		}
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.Shutdown(shutdownCtx)

	wg.Wait()
	s.logger.Info().Msg("server shutdown gracefully")
}

func (s *server) Shutdown(ctx context.Context) {
	s.httpServer.Shutdown(ctx)
}
