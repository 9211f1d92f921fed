package http

import (
	"net/http"

	"github.com/MKhiriev/crm-gateway/internal/logger"
	"github.com/MKhiriev/crm-gateway/internal/service"
	"github.com/MKhiriev/crm-gateway/internal/utils"
	"github.com/MKhiriev/crm-gateway/models"
)

// auth enforces bearer authentication with gateway-issued tokens.
//
// On success the verified claims are stored in the request context with
// [utils.WithClaims]. Missing, malformed, expired and foreign tokens are
// answered with 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug().Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, http.StatusUnauthorized, ErrEmptyAuthorizationHeader.Error(), nil)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(err).Send()
			utils.WriteError(w, http.StatusUnauthorized, err.Error(), nil)
			return
		}

		ctx := r.Context()
		claims, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			logger.SecurityEvent(ctx, logger.SecurityWarning, "bearer_token_rejected", map[string]any{
				"token": logger.MaskToken(tokenString),
				"path":  r.URL.Path,
			})
			utils.WriteError(w, http.StatusUnauthorized, service.ErrTokenIsExpiredOrInvalid.Error(), nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithClaims(ctx, claims)))
	})
}

// requireScope lets a request through only when the claims stored by auth
// carry one of the allowed scopes.
func (h *Handler) requireScope(allowed ...models.TokenScope) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := utils.GetClaimsFromContext(r.Context())
			if !ok {
				utils.WriteError(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized), nil)
				return
			}

			if err := service.CheckScope(claims, allowed...); err != nil {
				logger.SecurityEvent(r.Context(), logger.SecurityWarning, "token_scope_rejected", map[string]any{
					"scope": string(claims.Scope),
					"path":  r.URL.Path,
				})
				h.writeServiceError(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
