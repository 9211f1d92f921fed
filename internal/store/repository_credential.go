// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/crm-gateway/internal/adapter"
	"github.com/MKhiriev/crm-gateway/internal/coql"
	"github.com/MKhiriev/crm-gateway/internal/logger"
	"github.com/MKhiriev/crm-gateway/internal/sanitize"
	"github.com/MKhiriev/crm-gateway/models"
)

const (
	// ResetTokenTTL is the fixed lifetime of a reset token.
	ResetTokenTTL = time.Hour

	resetTokenBytes     = 32
	resetTokenAttempts  = 16
	dummyPasswordSource = "crm-gateway timing equalizer"
)

// credentialRepository is the CRM-backed implementation of [CredentialRepository].
type credentialRepository struct {
	executor adapter.Executor
	module   string
	cost     int
	now      func() time.Time
	logger   *logger.Logger

	dummyHash func() []byte
}

// NewCredentialRepository constructs a [CredentialRepository] reading the
// given upstream module. New password hashes use bcrypt with cost.
func NewCredentialRepository(executor adapter.Executor, module string, cost int, logger *logger.Logger) CredentialRepository {
	logger.Debug().Str("module", module).Msg("creating credential repository")

	r := &credentialRepository{
		executor: executor,
		module:   module,
		cost:     max(cost, bcrypt.DefaultCost),
		now:      time.Now,
		logger:   logger,
	}
	r.dummyHash = sync.OnceValue(func() []byte {
		hash, err := bcrypt.GenerateFromPassword([]byte(dummyPasswordSource), r.cost)
		if err != nil {
			r.logger.Err(err).Msg("generating dummy hash")
		}
		return hash
	})

	return r
}

func (r *credentialRepository) FindByEmail(ctx context.Context, email string) (models.Credential, error) {
	lit, err := sanitize.Email(email)
	if err != nil {
		return models.Credential{}, fmt.Errorf("find credential: %w", err)
	}

	rec, found, err := r.selectOne(ctx, lookupFields, fieldEmail, lit)
	if err != nil {
		return models.Credential{}, fmt.Errorf("find credential: %w", err)
	}
	if !found {
		return models.Credential{}, ErrNotFoundOrMismatch
	}

	return rec.toCredential().Redacted(), nil
}

func (r *credentialRepository) VerifyCredential(ctx context.Context, email, password string) (models.Credential, error) {
	log := logger.FromContext(ctx)

	lit, err := sanitize.Email(email)
	if err != nil {
		return models.Credential{}, fmt.Errorf("verify credential: %w", err)
	}

	rec, found, err := r.selectOne(ctx, verifyFields, fieldEmail, lit)
	if err != nil {
		return models.Credential{}, fmt.Errorf("verify credential: %w", err)
	}
	if !found {
		r.compareDummy(password)
		return models.Credential{}, ErrNotFoundOrMismatch
	}

	credential := rec.toCredential()
	if credential.IsInactive() {
		return models.Credential{}, ErrAccountInactive
	}
	if credential.PasswordHash == "" {
		log.Warn().Str("record_id", credential.ID).Msg("credential record has no password hash")
		r.compareDummy(password)
		return models.Credential{}, ErrNotFoundOrMismatch
	}

	err = bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password))
	switch {
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return models.Credential{}, ErrNotFoundOrMismatch
	case err != nil:
		log.Err(err).Str("record_id", credential.ID).Msg("stored password hash is unusable")
		return models.Credential{}, ErrNotFoundOrMismatch
	}

	return credential.Redacted(), nil
}

func (r *credentialRepository) SetCredential(ctx context.Context, email, newPassword string) error {
	lit, err := sanitize.Email(email)
	if err != nil {
		return fmt.Errorf("set credential: %w", err)
	}

	rec, found, err := r.selectOne(ctx, idOnlyFields, fieldEmail, lit)
	if err != nil {
		return fmt.Errorf("set credential: %w", err)
	}
	if !found {
		return ErrNotFoundOrMismatch
	}

	return r.SetCredentialByID(ctx, rec.ID, newPassword)
}

func (r *credentialRepository) SetCredentialByID(ctx context.Context, userID, newPassword string) error {
	if !recordIDPattern.MatchString(userID) {
		return ErrInvalidRecordID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), r.cost)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}

	err = r.update(ctx, userID, map[string]any{
		fieldPassword:          string(hash),
		fieldCustomPasswordSet: true,
	})
	if err != nil {
		return fmt.Errorf("set credential: %w", err)
	}

	return nil
}

func (r *credentialRepository) IssueResetToken(ctx context.Context, userID string) (models.ResetToken, error) {
	if !recordIDPattern.MatchString(userID) {
		return models.ResetToken{}, ErrInvalidRecordID
	}

	value, err := generateResetToken()
	if err != nil {
		return models.ResetToken{}, err
	}
	expiresAt := r.now().Add(ResetTokenTTL).Truncate(time.Second)

	err = r.update(ctx, userID, map[string]any{
		fieldResetToken:       value,
		fieldResetTokenExpiry: expiresAt.Format(crmDateTime),
	})
	if err != nil {
		return models.ResetToken{}, fmt.Errorf("store reset token: %w", err)
	}

	logger.SecurityEvent(ctx, logger.SecurityInfo, "password_reset_token_stored", map[string]any{
		"user_id":    userID,
		"token":      logger.MaskToken(value),
		"expires_at": expiresAt,
	})

	return models.ResetToken{UserID: userID, Value: value, ExpiresAt: expiresAt}, nil
}

func (r *credentialRepository) ConsumeResetToken(ctx context.Context, token string) (models.Credential, error) {
	lit, err := sanitize.Token(token)
	if err != nil {
		return models.Credential{}, fmt.Errorf("consume reset token: %w", err)
	}

	rec, found, err := r.selectOne(ctx, resetFields, fieldResetToken, lit)
	if err != nil {
		return models.Credential{}, fmt.Errorf("consume reset token: %w", err)
	}
	if !found {
		return models.Credential{}, ErrNotFoundOrExpired
	}

	credential := rec.toCredential()
	// The upstream comparison may ignore case.
	if subtle.ConstantTimeCompare([]byte(credential.ResetToken), []byte(token)) != 1 {
		return models.Credential{}, ErrNotFoundOrExpired
	}
	if credential.ResetTokenExpiry == nil || !r.now().Before(*credential.ResetTokenExpiry) {
		logger.SecurityEvent(ctx, logger.SecurityWarning, "expired_password_reset_token_used", map[string]any{
			"user_id": credential.ID,
			"token":   logger.MaskToken(token),
		})
		return models.Credential{}, ErrNotFoundOrExpired
	}

	return credential.Redacted(), nil
}

func (r *credentialRepository) ClearResetToken(ctx context.Context, userID string) error {
	if !recordIDPattern.MatchString(userID) {
		return ErrInvalidRecordID
	}

	err := r.update(ctx, userID, map[string]any{
		fieldResetToken:       nil,
		fieldResetTokenExpiry: nil,
	})
	if err != nil {
		return fmt.Errorf("clear reset token: %w", err)
	}

	return nil
}

// selectOne runs a single-row query matching where = value.
func (r *credentialRepository) selectOne(ctx context.Context, fields []string, where string, value sanitize.Literal) (crmRecord, bool, error) {
	statement, err := coql.SelectOne(r.module, fields, where, value)
	if err != nil {
		return crmRecord{}, false, fmt.Errorf("%w: %w", ErrBuildingStatement, err)
	}

	raw, err := r.executor.Request(ctx, http.MethodPost, coqlPath, queryRequest{SelectQuery: statement})
	if err != nil {
		return crmRecord{}, false, err
	}

	records, err := decodeQuery(raw)
	if err != nil {
		return crmRecord{}, false, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if len(records) == 0 {
		return crmRecord{}, false, nil
	}
	if !recordIDPattern.MatchString(records[0].ID) {
		return crmRecord{}, false, fmt.Errorf("%w: record id", ErrMalformedResponse)
	}

	return records[0], true, nil
}

// update writes fields to the record and checks the per-record result code.
func (r *credentialRepository) update(ctx context.Context, userID string, fields map[string]any) error {
	path := "/" + r.module + "/" + userID

	raw, err := r.executor.Request(ctx, http.MethodPut, path, updateRequest{Data: []map[string]any{fields}})
	if err != nil {
		return err
	}

	var resp updateResponse
	if err = json.Unmarshal(raw, &resp); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if len(resp.Data) == 0 {
		return fmt.Errorf("%w: empty update result", ErrMalformedResponse)
	}
	if resp.Data[0].Code != updateSuccessCode {
		logger.FromContext(ctx).Warn().
			Str("record_id", userID).
			Str("code", resp.Data[0].Code).
			Msg("record update rejected")
		return fmt.Errorf("%w: %s", ErrUpdateRejected, resp.Data[0].Code)
	}

	return nil
}

// compareDummy spends one hash comparison so that unknown accounts take as
// long as wrong passwords.
func (r *credentialRepository) compareDummy(password string) {
	_ = bcrypt.CompareHashAndPassword(r.dummyHash(), []byte(password))
}

// generateResetToken returns a base64url token of 32 random bytes that the
// sanitizer accepts verbatim.
func generateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	for range resetTokenAttempts {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("%w: %w", ErrGeneratingToken, err)
		}
		value := base64.RawURLEncoding.EncodeToString(buf)
		if _, err := sanitize.Token(value); err == nil {
			return value, nil
		}
	}
	return "", ErrGeneratingToken
}
