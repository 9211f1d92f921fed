package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/crm-gateway/internal/logger"
	"github.com/MKhiriev/crm-gateway/internal/notify"
	"github.com/MKhiriev/crm-gateway/internal/sanitize"
	"github.com/MKhiriev/crm-gateway/internal/store"
	"github.com/MKhiriev/crm-gateway/models"
)

// RequestPasswordReset issues a reset token for email and hands it to the
// notifier.
//
// Unknown, malformed and inactive addresses return nil after the failure
// delay without issuing anything. When delivery fails the token is cleared
// again and nil is still returned.
func (a *authService) RequestPasswordReset(ctx context.Context, email string) error {
	issued, err := a.requestPasswordReset(ctx, email)
	if err != nil {
		a.record(ctx, opResetRequest, err)
		return err
	}
	if !issued {
		a.record(ctx, opResetRequest, store.ErrNotFoundOrMismatch)
		return nil
	}

	a.record(ctx, opResetRequest, nil)
	return nil
}

func (a *authService) requestPasswordReset(ctx context.Context, email string) (bool, error) {
	log := logger.FromContext(ctx)
	masked := map[string]any{"email": logger.MaskEmail(email)}

	cred, err := withTokenRetry(ctx, func(ctx context.Context) (models.Credential, error) {
		return a.credentials.FindByEmail(ctx, email)
	})
	switch {
	case err == nil:
	case errors.Is(err, sanitize.ErrValidation), errors.Is(err, store.ErrNotFoundOrMismatch):
		logger.SecurityEvent(ctx, logger.SecurityInfo, "password_reset_unknown_email", masked)
		return false, nil
	default:
		return false, fmt.Errorf("request password reset: %w", err)
	}

	if cred.IsInactive() {
		logger.SecurityEvent(ctx, logger.SecurityWarning, "password_reset_inactive_account", masked)
		return false, nil
	}

	token, err := withTokenRetry(ctx, func(ctx context.Context) (models.ResetToken, error) {
		return a.credentials.IssueResetToken(ctx, cred.ID)
	})
	if err != nil {
		return false, fmt.Errorf("request password reset: %w", err)
	}

	err = a.notifier.SendPasswordReset(ctx, notify.ResetMessage{
		Email:     cred.Email,
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
	})
	if err == nil {
		logger.SecurityEvent(ctx, logger.SecurityInfo, "password_reset_requested", masked)
		return true, nil
	}

	logger.SecurityEvent(ctx, logger.SecurityAlert, "password_reset_delivery_failed", map[string]any{
		"email": logger.MaskEmail(email),
		"token": logger.MaskToken(token.Value),
	})
	log.Err(err).Msg("reset delivery failed, clearing the issued token")

	clearErr := withTokenRetryErr(ctx, func(ctx context.Context) error {
		return a.credentials.ClearResetToken(ctx, cred.ID)
	})
	if clearErr != nil {
		log.Err(clearErr).Msg("undelivered reset token could not be cleared")
	}
	return true, nil
}

// ConsumeReset sets newPassword for the owner of token and clears the token
// before the password is written, so a token is accepted at most once.
// Concurrent calls with the same token are serialized in this process: while
// one is in progress the others fail with store.ErrNotFoundOrExpired.
// Unknown, malformed and expired tokens all yield store.ErrNotFoundOrExpired.
//
// If the password write fails after the token was cleared, the token is
// spent. The returned error wraps the upstream failure; callers should
// report it as retryable and ask the employee to request a new link.
func (a *authService) ConsumeReset(ctx context.Context, token, newPassword string) (bool, error) {
	err := a.consumeReset(ctx, token, newPassword)
	a.record(ctx, opResetConsume, err)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (a *authService) consumeReset(ctx context.Context, token, newPassword string) error {
	masked := map[string]any{"token": logger.MaskToken(token)}

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	if _, busy := a.consuming.LoadOrStore(token, struct{}{}); busy {
		logger.SecurityEvent(ctx, logger.SecurityWarning, "password_reset_token_reused", masked)
		return store.ErrNotFoundOrExpired
	}
	defer a.consuming.Delete(token)

	cred, err := withTokenRetry(ctx, func(ctx context.Context) (models.Credential, error) {
		return a.credentials.ConsumeResetToken(ctx, token)
	})
	switch {
	case err == nil:
	case errors.Is(err, sanitize.ErrValidation), errors.Is(err, store.ErrNotFoundOrExpired):
		logger.SecurityEvent(ctx, logger.SecurityWarning, "password_reset_token_rejected", masked)
		return store.ErrNotFoundOrExpired
	default:
		return fmt.Errorf("consume reset token: %w", err)
	}

	err = withTokenRetryErr(ctx, func(ctx context.Context) error {
		return a.credentials.ClearResetToken(ctx, cred.ID)
	})
	if err != nil {
		return fmt.Errorf("clear reset token: %w", err)
	}

	err = withTokenRetryErr(ctx, func(ctx context.Context) error {
		return a.credentials.SetCredentialByID(ctx, cred.ID, newPassword)
	})
	if err != nil {
		return fmt.Errorf("set password after reset: %w", err)
	}

	logger.SecurityEvent(ctx, logger.SecurityInfo, "password_reset_completed", map[string]any{
		"email": logger.MaskEmail(cred.Email),
	})
	return nil
}
