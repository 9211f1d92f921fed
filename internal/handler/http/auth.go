package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/crm-gateway/internal/app"
	"github.com/MKhiriev/crm-gateway/internal/logger"
	"github.com/MKhiriev/crm-gateway/internal/utils"
	"github.com/MKhiriev/crm-gateway/internal/validators"
	"github.com/MKhiriev/crm-gateway/models"
)

const maxBodyBytes = 16 << 10

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	out := h.services.AuthService.Login(r.Context(), req.Email, req.Password)

	switch out.Kind {
	case models.OutcomeAuthenticated:
		utils.WriteJSON(w, models.LoginResponse{
			Success: true,
			Token:   out.Token,
			User:    out.Principal,
		}, http.StatusOK)
	case models.OutcomePasswordChangeRequired:
		utils.WriteJSON(w, models.LoginResponse{
			Success:                true,
			Message:                app.MsgPasswordChange,
			TempToken:              out.Token,
			RequiresPasswordChange: true,
			User:                   out.Principal,
		}, http.StatusOK)
	case models.OutcomeInvalidCredentials:
		utils.WriteError(w, http.StatusUnauthorized, app.MsgInvalidCredentials, nil)
	case models.OutcomeAccountInactive:
		utils.WriteError(w, http.StatusForbidden, app.MsgAccountInactive, nil)
	default:
		log.Error().Str("kind", string(out.Error)).Msg("login could not be decided")
		status := statusFromErrorKind(out.Error)
		utils.WriteError(w, status, http.StatusText(status), nil)
	}
}

func (h *Handler) setPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := utils.GetClaimsFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized), nil)
		return
	}

	var req models.SetPasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.services.AuthService.SetPassword(ctx, claims.Email, req.NewPassword); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Success: true, Message: app.MsgPasswordUpdated}, http.StatusOK)
}

// requestPasswordReset answers with the same message whether or not the
// address exists. Failures are only logged.
func (h *Handler) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.services.AuthService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		logger.FromRequest(r).Err(err).Msg("password reset request failed")
	}

	utils.WriteJSON(w, models.StatusResponse{Success: true, Message: app.MsgResetRequested}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.services.AuthService.ConsumeReset(r.Context(), req.Token, req.NewPassword); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.StatusResponse{Success: true, Message: app.MsgPasswordUpdated}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized), nil)
		return
	}

	resp := models.MeResponse{User: claims.Principal(), Scope: claims.Scope}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}

// decodeAndValidate reads a JSON body into dst and validates it. It writes
// the 400 answer itself and reports whether the handler may continue.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	log := logger.FromRequest(r)

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		log.Err(err).Msg(app.MsgInvalidDataProvided)
		utils.WriteError(w, http.StatusBadRequest, app.MsgInvalidDataProvided, nil)
		return false
	}

	if err := h.validator.Validate(r.Context(), dst); err != nil {
		var ve *validators.ValidationError
		if errors.As(err, &ve) {
			log.Debug().Err(err).Msg("request validation failed")
			utils.WriteError(w, http.StatusBadRequest, app.MsgValidationFailed, ve.Fields())
			return false
		}

		log.Err(err).Msg("request could not be validated")
		utils.WriteError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), nil)
		return false
	}

	return true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFromError(err)

	e := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		e = logger.FromRequest(r).Error()
	}
	e.Err(err).Int("status", status).Msgf("%s %s failed", r.Method, r.URL.Path)

	utils.WriteError(w, status, message, nil)
}
