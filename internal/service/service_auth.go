// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/crm-gateway/internal/adapter"
	"github.com/MKhiriev/crm-gateway/internal/config"
	"github.com/MKhiriev/crm-gateway/internal/logger"
	"github.com/MKhiriev/crm-gateway/internal/metrics"
	"github.com/MKhiriev/crm-gateway/internal/notify"
	"github.com/MKhiriev/crm-gateway/internal/sanitize"
	"github.com/MKhiriev/crm-gateway/internal/store"
	"github.com/MKhiriev/crm-gateway/internal/utils"
	"github.com/MKhiriev/crm-gateway/models"
)

const (
	opLogin         = "login"
	opSetPassword   = "set_password"
	opResetRequest  = "reset_request"
	opResetConsume  = "reset_consume"
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
)

// authService is the concrete implementation of AuthService.
type authService struct {
	credentials store.CredentialRepository
	notifier    notify.ResetNotifier
	delay       Delayer
	metrics     *metrics.Metrics

	// tokenSignKey signs and verifies gateway tokens (HS256).
	tokenSignKey string
	tokenIssuer  string

	// sessionDuration is the lifetime of a normal session token.
	sessionDuration time.Duration
	// changeDuration is the lifetime of a password-change token.
	changeDuration time.Duration

	// consuming holds reset tokens whose consumption is in progress.
	consuming sync.Map
}

// AuthOption customises an AuthService.
type AuthOption func(*authService)

// WithDelayer replaces the random failure delay.
func WithDelayer(d Delayer) AuthOption {
	return func(s *authService) {
		s.delay = d
	}
}

// WithMetrics records outcomes in m.
func WithMetrics(m *metrics.Metrics) AuthOption {
	return func(s *authService) {
		s.metrics = m
	}
}

// NewAuthService constructs an AuthService on top of the credential store.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(credentials store.CredentialRepository, notifier notify.ResetNotifier, cfg config.App, opts ...AuthOption) AuthService {
	s := &authService{
		credentials:     credentials,
		notifier:        notifier,
		delay:           RandomDelay{Min: cfg.DelayMin, Max: cfg.DelayMax},
		tokenSignKey:    cfg.SessionSecret,
		tokenIssuer:     cfg.TokenIssuer,
		sessionDuration: cfg.TokenDuration,
		changeDuration:  cfg.PasswordChangeTokenDuration,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login verifies the password of email.
//
// Unknown accounts, wrong passwords and rejected input all end in
// OutcomeInvalidCredentials. Every outcome other than a verified password
// is delayed.
func (a *authService) Login(ctx context.Context, email, password string) models.AuthOutcome {
	outcome := a.login(ctx, email, password)
	if !outcome.Succeeded() {
		a.delay.Wait(ctx)
	}

	label := outcome.Kind.String()
	if outcome.Kind == models.OutcomeError {
		label = string(outcome.Error)
	}
	a.metrics.AuthOutcome(opLogin, label)
	return outcome
}

func (a *authService) login(ctx context.Context, email, password string) models.AuthOutcome {
	log := logger.FromContext(ctx)
	masked := map[string]any{"email": logger.MaskEmail(email)}

	cred, err := withTokenRetry(ctx, func(ctx context.Context) (models.Credential, error) {
		return a.credentials.VerifyCredential(ctx, email, password)
	})
	switch {
	case err == nil:
	case errors.Is(err, sanitize.ErrValidation):
		logger.SecurityEvent(ctx, logger.SecurityWarning, "login_input_rejected", masked)
		return models.AuthOutcome{Kind: models.OutcomeInvalidCredentials}
	case errors.Is(err, store.ErrNotFoundOrMismatch):
		logger.SecurityEvent(ctx, logger.SecurityWarning, "login_failed", masked)
		return models.AuthOutcome{Kind: models.OutcomeInvalidCredentials}
	case errors.Is(err, store.ErrAccountInactive):
		logger.SecurityEvent(ctx, logger.SecurityWarning, "login_inactive_account", masked)
		return models.AuthOutcome{Kind: models.OutcomeAccountInactive}
	default:
		log.Err(err).Msg("credential verification failed")
		return models.AuthOutcome{Kind: models.OutcomeError, Error: errorKind(err)}
	}

	principal := cred.Principal()
	if !cred.CustomPasswordSet {
		token, err := a.createToken(principal, models.ScopePasswordChange, a.changeDuration)
		if err != nil {
			log.Err(err).Msg("password change token creation failed")
			return models.AuthOutcome{Kind: models.OutcomeError, Error: models.ErrorKindInternal}
		}

		logger.SecurityEvent(ctx, logger.SecurityInfo, "login_password_change_required", masked)
		return models.AuthOutcome{Kind: models.OutcomePasswordChangeRequired, Principal: principal, Token: token.String()}
	}

	token, err := a.createToken(principal, models.ScopeSession, a.sessionDuration)
	if err != nil {
		log.Err(err).Msg("session token creation failed")
		return models.AuthOutcome{Kind: models.OutcomeError, Error: models.ErrorKindInternal}
	}

	logger.SecurityEvent(ctx, logger.SecurityInfo, "login_succeeded", masked)
	return models.AuthOutcome{Kind: models.OutcomeAuthenticated, Principal: principal, Token: token.String()}
}

// SetPassword stores newPassword for email after checking the password
// policy. Failures are delayed and returned unchanged apart from wrapping.
func (a *authService) SetPassword(ctx context.Context, email, newPassword string) (bool, error) {
	err := a.setPassword(ctx, email, newPassword)
	a.record(ctx, opSetPassword, err)
	if err != nil {
		return false, err
	}

	logger.SecurityEvent(ctx, logger.SecurityInfo, "password_set", map[string]any{
		"email": logger.MaskEmail(email),
	})
	return true, nil
}

func (a *authService) setPassword(ctx context.Context, email, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	err := withTokenRetryErr(ctx, func(ctx context.Context) error {
		return a.credentials.SetCredential(ctx, email, newPassword)
	})
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	return nil
}

// ParseToken validates a gateway-issued token. Any failure is normalised to
// ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, raw string) (models.SessionClaims, error) {
	claims, err := utils.ValidateAndParseJWTToken(raw, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.SessionClaims{}, ErrTokenIsExpiredOrInvalid
	}
	return claims, nil
}

// CheckScope returns ErrInsufficientScope unless claims carry one of allowed.
func CheckScope(claims models.SessionClaims, allowed ...models.TokenScope) error {
	for _, scope := range allowed {
		if claims.Scope == scope {
			return nil
		}
	}
	return ErrInsufficientScope
}

func (a *authService) createToken(principal models.Principal, scope models.TokenScope, dur time.Duration) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, principal.ID, principal.Email, scope, dur, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	return token, nil
}

// record delays failed operations and counts the outcome.
func (a *authService) record(ctx context.Context, operation string, err error) {
	if err != nil {
		a.delay.Wait(ctx)
	}
	a.metrics.AuthOutcome(operation, outcomeLabel(err))
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case isClientError(err):
		return outcomeRejected
	default:
		return string(errorKind(err))
	}
}

// errorKind classifies a failure that is not a credential outcome.
func errorKind(err error) models.ErrorKind {
	switch {
	case errors.Is(err, adapter.ErrUpstreamUnavailable):
		return models.ErrorKindUpstreamUnavailable
	case errors.Is(err, adapter.ErrUpstreamRejected),
		errors.Is(err, adapter.ErrTokenRejected),
		errors.Is(err, adapter.ErrRefreshRejected):
		return models.ErrorKindUpstreamRejected
	default:
		return models.ErrorKindInternal
	}
}

func isClientError(err error) bool {
	return errors.Is(err, sanitize.ErrValidation) ||
		errors.Is(err, ErrInvalidPassword) ||
		errors.Is(err, store.ErrNotFoundOrMismatch) ||
		errors.Is(err, store.ErrNotFoundOrExpired)
}
