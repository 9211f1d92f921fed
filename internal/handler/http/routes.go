package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/MKhiriev/crm-gateway/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.secure.Handler)
	if h.limits.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.limits.RequestTimeout))
	}

	router.Get("/health", h.health)
	router.Get("/version", h.getServerVersion)
	router.Method("GET", "/metrics", h.metrics)

	router.Group(func(r chi.Router) {
		r.Use(h.rateLimit("general", h.limits.GeneralRateLimit, h.limits.GeneralRateWindow, httprate.KeyByIP))

		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Use(h.rateLimit("auth", h.limits.AuthRateLimit, h.limits.AuthRateWindow, keyByIPAndUserAgent))
			r.Post("/api/users/login", h.login)
			r.Post("/api/users/reset-password", h.resetPassword)
		})
		r.With(h.rateLimit("reset", h.limits.ResetRateLimit, h.limits.ResetRateWindow, httprate.KeyByIP)).
			Post("/api/users/request-password-reset", h.requestPasswordReset)

		// routes with bearer authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.With(
				h.rateLimit("set-password", h.limits.AuthRateLimit, h.limits.AuthRateWindow, keyByIPAndUserAgent),
				h.requireScope(models.ScopeSession, models.ScopePasswordChange),
			).Post("/api/users/set-password", h.setPassword)
			r.With(h.requireScope(models.ScopeSession)).Get("/api/users/me", h.me)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
