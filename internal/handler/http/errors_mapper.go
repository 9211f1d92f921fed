package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/crm-gateway/internal/adapter"
	"github.com/MKhiriev/crm-gateway/internal/app"
	"github.com/MKhiriev/crm-gateway/internal/sanitize"
	"github.com/MKhiriev/crm-gateway/internal/service"
	"github.com/MKhiriev/crm-gateway/internal/store"
	"github.com/MKhiriev/crm-gateway/internal/validators"
	"github.com/MKhiriev/crm-gateway/models"
)

type errorStatus struct {
	target  error
	status  int
	message string
}

// errorStatuses is checked in order; the first match wins. Unavailability
// comes first because a 5xx answer is wrapped together with its rejection.
var errorStatuses = []errorStatus{
	{adapter.ErrUpstreamUnavailable, http.StatusServiceUnavailable, app.MsgServiceUnavailable},

	{validators.ErrInvalidRequest, http.StatusBadRequest, app.MsgValidationFailed},
	{service.ErrInvalidPassword, http.StatusBadRequest, app.MsgPasswordPolicy},
	{sanitize.ErrValidation, http.StatusBadRequest, app.MsgInvalidInput},
	{store.ErrNotFoundOrExpired, http.StatusBadRequest, app.MsgInvalidResetToken},

	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	{store.ErrNotFoundOrMismatch, http.StatusUnauthorized, app.MsgInvalidCredentials},

	{service.ErrInsufficientScope, http.StatusForbidden, app.MsgInsufficientScope},
	{store.ErrAccountInactive, http.StatusForbidden, app.MsgAccountInactive},

	{adapter.ErrTokenRejected, http.StatusBadGateway, app.MsgUpstreamFailed},
	{adapter.ErrRefreshRejected, http.StatusBadGateway, app.MsgUpstreamFailed},
	{adapter.ErrUpstreamRejected, http.StatusBadGateway, app.MsgUpstreamFailed},
	{adapter.ErrInvalidResponse, http.StatusBadGateway, app.MsgUpstreamFailed},
	{store.ErrMalformedResponse, http.StatusBadGateway, app.MsgUpstreamFailed},
	{store.ErrUpdateRejected, http.StatusBadGateway, app.MsgUpstreamFailed},
}

// statusFromError maps a service error to a status and a message that is
// safe to show to the caller.
func statusFromError(err error) (int, string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status, e.message
		}
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

func statusFromErrorKind(kind models.ErrorKind) int {
	switch kind {
	case models.ErrorKindUpstreamUnavailable:
		return http.StatusServiceUnavailable
	case models.ErrorKindUpstreamRejected:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
