package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/crm-gateway/internal/adapter"
	"github.com/MKhiriev/crm-gateway/internal/sanitize"
	"github.com/MKhiriev/crm-gateway/internal/service"
	"github.com/MKhiriev/crm-gateway/internal/store"
	"github.com/MKhiriev/crm-gateway/models"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid password", service.ErrInvalidPassword, http.StatusBadRequest},
		{"sanitizer", fmt.Errorf("x: %w", sanitize.ErrSuspiciousPattern), http.StatusBadRequest},
		{"reset token", store.ErrNotFoundOrExpired, http.StatusBadRequest},
		{"bad token", service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
		{"mismatch", store.ErrNotFoundOrMismatch, http.StatusUnauthorized},
		{"scope", service.ErrInsufficientScope, http.StatusForbidden},
		{"inactive", store.ErrAccountInactive, http.StatusForbidden},
		{"rejected", &adapter.UpstreamRejectedError{Status: 400}, http.StatusBadGateway},
		{"token rejected", fmt.Errorf("%w: %w", adapter.ErrTokenRejected, &adapter.UpstreamRejectedError{Status: 401}), http.StatusBadGateway},
		{"unavailable", adapter.ErrUpstreamUnavailable, http.StatusServiceUnavailable},
		{"5xx wraps rejection", fmt.Errorf("%w: %w", adapter.ErrUpstreamUnavailable, &adapter.UpstreamRejectedError{Status: 502}), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := statusFromError(tt.err)

			assert.Equal(t, tt.want, got)
			assert.NotContains(t, msg, "boom")
		})
	}
}

func TestStatusFromErrorKind(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, statusFromErrorKind(models.ErrorKindUpstreamUnavailable))
	assert.Equal(t, http.StatusBadGateway, statusFromErrorKind(models.ErrorKindUpstreamRejected))
	assert.Equal(t, http.StatusInternalServerError, statusFromErrorKind(models.ErrorKindInternal))
}
