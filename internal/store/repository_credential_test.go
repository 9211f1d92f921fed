package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/crm-gateway/internal/adapter"
	"github.com/MKhiriev/crm-gateway/internal/logger"
	"github.com/MKhiriev/crm-gateway/internal/mock"
	"github.com/MKhiriev/crm-gateway/internal/sanitize"
)

const testModule = "Colaboradores"

// fakeCRM is an in-memory stand-in for the upstream query and update
// endpoints. Like the real upstream it compares values case-insensitively.
type fakeCRM struct {
	mu      sync.Mutex
	records map[string]map[string]any
	queries []string
	updates int
}

var statementPattern = regexp.MustCompile(`^SELECT (.+) FROM (\w+) WHERE (\w+) = '((?:[^']|'')*)' LIMIT 1$`)

func newFakeCRM(records ...map[string]any) *fakeCRM {
	f := &fakeCRM{records: make(map[string]map[string]any)}
	for _, rec := range records {
		f.records[rec["id"].(string)] = rec
	}
	return f
}

func (f *fakeCRM) Request(_ context.Context, method, path string, payload any) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case method == http.MethodPost && path == coqlPath:
		return f.query(payload.(queryRequest).SelectQuery)
	case method == http.MethodPut && strings.HasPrefix(path, "/"+testModule+"/"):
		return f.update(strings.TrimPrefix(path, "/"+testModule+"/"), payload.(updateRequest))
	default:
		return nil, fmt.Errorf("unexpected request %s %s", method, path)
	}
}

func (f *fakeCRM) query(statement string) (json.RawMessage, error) {
	f.queries = append(f.queries, statement)

	m := statementPattern.FindStringSubmatch(statement)
	if m == nil {
		return nil, &adapter.UpstreamRejectedError{Status: http.StatusBadRequest, Code: "SYNTAX_ERROR"}
	}
	fields := strings.Split(m[1], ", ")
	where, value := m[3], strings.ReplaceAll(m[4], "''", "'")

	for _, rec := range f.records {
		v, ok := rec[where].(string)
		if !ok || !strings.EqualFold(v, value) {
			continue
		}
		row := make(map[string]any, len(fields))
		for _, field := range fields {
			row[field] = rec[field]
		}
		return json.Marshal(map[string]any{"data": []any{row}, "info": map[string]any{"count": 1}})
	}

	// 204 No Content is surfaced by the executor as an empty object.
	return json.RawMessage(`{}`), nil
}

func (f *fakeCRM) update(id string, req updateRequest) (json.RawMessage, error) {
	f.updates++

	rec, ok := f.records[id]
	if !ok {
		return nil, &adapter.UpstreamRejectedError{Status: http.StatusBadRequest, Code: "INVALID_DATA", Message: "the id given seems to be invalid"}
	}
	for k, v := range req.Data[0] {
		if v == nil {
			delete(rec, k)
			continue
		}
		rec[k] = v
	}
	return json.RawMessage(`{"data":[{"code":"SUCCESS","details":{"id":"` + id + `"},"message":"record updated","status":"success"}]}`), nil
}

func (f *fakeCRM) field(id, name string) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[id][name]
}

func newTestRepository(t *testing.T, executor adapter.Executor) *credentialRepository {
	t.Helper()
	return NewCredentialRepository(executor, testModule, 10, logger.Nop()).(*credentialRepository)
}

func employee(id, email string) map[string]any {
	return map[string]any{
		"id":                   id,
		fieldEmail:             email,
		fieldCustomPasswordSet: false,
		fieldActive:            true,
	}
}

// ── VerifyCredential / SetCredential ────────────────────────────────────────

func TestSetThenVerify_RoundTrip(t *testing.T) {
	crm := newFakeCRM(employee("1001", "jane.doe@example.com"))
	repo := newTestRepository(t, crm)
	ctx := context.Background()

	require.NoError(t, repo.SetCredential(ctx, "jane.doe@example.com", "Correct#Pass1"))
	assert.Equal(t, true, crm.field("1001", fieldCustomPasswordSet))

	got, err := repo.VerifyCredential(ctx, "Jane.Doe@example.com", "Correct#Pass1")
	require.NoError(t, err)
	assert.Equal(t, "1001", got.ID)
	assert.True(t, got.CustomPasswordSet)
	assert.Empty(t, got.PasswordHash, "hash must not leave the store")

	for _, wrong := range []string{"Correct#Pass2", "correct#pass1", "Correct#Pass1 ", ""} {
		_, err = repo.VerifyCredential(ctx, "jane.doe@example.com", wrong)
		assert.ErrorIs(t, err, ErrNotFoundOrMismatch, "password %q must not match", wrong)
	}
}

func TestSetCredential_StoresBcryptHash(t *testing.T) {
	crm := newFakeCRM(employee("1001", "jane.doe@example.com"))
	repo := newTestRepository(t, crm)

	require.NoError(t, repo.SetCredential(context.Background(), "jane.doe@example.com", "Correct#Pass1"))

	hash, _ := crm.field("1001", fieldPassword).(string)
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"), "unexpected hash %q", hash)
}

func TestSetCredential_UnknownEmail(t *testing.T) {
	crm := newFakeCRM()
	repo := newTestRepository(t, crm)

	err := repo.SetCredential(context.Background(), "ghost@example.com", "Correct#Pass1")

	assert.ErrorIs(t, err, ErrNotFoundOrMismatch)
	assert.Zero(t, crm.updates)
}

func TestVerifyCredential_UnknownEmail(t *testing.T) {
	repo := newTestRepository(t, newFakeCRM())

	_, err := repo.VerifyCredential(context.Background(), "ghost@example.com", "whatever1")

	assert.ErrorIs(t, err, ErrNotFoundOrMismatch)
}

func TestVerifyCredential_InactiveShortCircuits(t *testing.T) {
	rec := employee("1001", "jane.doe@example.com")
	rec[fieldActive] = false
	rec[fieldPassword] = "not-a-bcrypt-hash"
	repo := newTestRepository(t, newFakeCRM(rec))

	_, err := repo.VerifyCredential(context.Background(), "jane.doe@example.com", "anything1")

	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestVerifyCredential_UnsetActiveIsActive(t *testing.T) {
	rec := employee("1001", "jane.doe@example.com")
	delete(rec, fieldActive)
	crm := newFakeCRM(rec)
	repo := newTestRepository(t, crm)
	require.NoError(t, repo.SetCredential(context.Background(), "jane.doe@example.com", "Correct#Pass1"))

	got, err := repo.VerifyCredential(context.Background(), "jane.doe@example.com", "Correct#Pass1")

	require.NoError(t, err)
	assert.Nil(t, got.Active)
}

func TestVerifyCredential_MissingHashIsMismatch(t *testing.T) {
	repo := newTestRepository(t, newFakeCRM(employee("1001", "jane.doe@example.com")))

	_, err := repo.VerifyCredential(context.Background(), "jane.doe@example.com", "anything1")

	assert.ErrorIs(t, err, ErrNotFoundOrMismatch)
}

func TestVerifyCredential_StatementShape(t *testing.T) {
	crm := newFakeCRM()
	repo := newTestRepository(t, crm)

	_, _ = repo.VerifyCredential(context.Background(), "Jane.Doe@Example.com", "x")

	require.Len(t, crm.queries, 1)
	assert.Equal(t,
		"SELECT id, Email, Password_Intranet, Contrasena_Personalizada_Establecida, Activo FROM Colaboradores WHERE Email = 'jane.doe@example.com' LIMIT 1",
		crm.queries[0])
}

func TestVerifyCredential_InjectionNeverReachesUpstream(t *testing.T) {
	payloads := []string{
		"' OR '1'='1",
		"admin@example.com' OR '1'='1",
		"x@example.com'; DROP TABLE Colaboradores; --",
		"a@b.co\x00",
		"a@b.co /* */",
	}

	for _, p := range payloads {
		crm := newFakeCRM(employee("1001", "admin@example.com"))
		repo := newTestRepository(t, crm)

		_, err := repo.VerifyCredential(context.Background(), p, "whatever1")

		assert.ErrorIs(t, err, sanitize.ErrValidation, "payload %q", p)
		assert.Empty(t, crm.queries, "payload %q reached upstream", p)
	}
}

func TestFindByEmail(t *testing.T) {
	rec := employee("1001", "jane.doe@example.com")
	rec[fieldPassword] = "$2a$10$abcdefghijklmnopqrstuv"
	repo := newTestRepository(t, newFakeCRM(rec))

	got, err := repo.FindByEmail(context.Background(), "jane.doe@example.com")
	require.NoError(t, err)
	assert.Equal(t, "1001", got.ID)
	assert.Equal(t, "jane.doe@example.com", got.Email)
	assert.Empty(t, got.PasswordHash)

	_, err = repo.FindByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFoundOrMismatch)
}

// ── Reset tokens ────────────────────────────────────────────────────────────

func TestResetToken_IssueConsumeClear(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	crm := newFakeCRM(employee("1001", "jane.doe@example.com"))
	repo := newTestRepository(t, crm)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	issued, err := repo.IssueResetToken(ctx, "1001")
	require.NoError(t, err)
	assert.Equal(t, "1001", issued.UserID)
	assert.Equal(t, now.Add(time.Hour), issued.ExpiresAt)
	assert.Len(t, issued.Value, 43)
	_, err = sanitize.Token(issued.Value)
	assert.NoError(t, err)
	assert.Equal(t, issued.Value, crm.field("1001", fieldResetToken))
	assert.Equal(t, "2026-03-01T11:00:00+00:00", crm.field("1001", fieldResetTokenExpiry))

	got, err := repo.ConsumeResetToken(ctx, issued.Value)
	require.NoError(t, err)
	assert.Equal(t, "1001", got.ID)
	assert.Empty(t, got.ResetToken)

	require.NoError(t, repo.ClearResetToken(ctx, "1001"))
	assert.Nil(t, crm.field("1001", fieldResetToken))

	_, err = repo.ConsumeResetToken(ctx, issued.Value)
	assert.ErrorIs(t, err, ErrNotFoundOrExpired)
}

func TestConsumeResetToken_Expired(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	crm := newFakeCRM(employee("1001", "jane.doe@example.com"))
	repo := newTestRepository(t, crm)
	repo.now = func() time.Time { return now }

	issued, err := repo.IssueResetToken(context.Background(), "1001")
	require.NoError(t, err)

	repo.now = func() time.Time { return now.Add(time.Hour) }
	_, err = repo.ConsumeResetToken(context.Background(), issued.Value)

	assert.ErrorIs(t, err, ErrNotFoundOrExpired)
}

func TestConsumeResetToken_CaseVariantRejected(t *testing.T) {
	rec := employee("1001", "jane.doe@example.com")
	rec[fieldResetToken] = "Xk9PwN4sYc7HdJ2fGb6AeUq8Zr3LmT1v"
	rec[fieldResetTokenExpiry] = time.Now().Add(time.Hour).Format(crmDateTime)
	repo := newTestRepository(t, newFakeCRM(rec))

	_, err := repo.ConsumeResetToken(context.Background(), "xk9pwn4syc7hdj2fgb6aeuq8zr3lmt1v")

	assert.ErrorIs(t, err, ErrNotFoundOrExpired)
}

func TestConsumeResetToken_Unknown(t *testing.T) {
	repo := newTestRepository(t, newFakeCRM(employee("1001", "jane.doe@example.com")))

	_, err := repo.ConsumeResetToken(context.Background(), "Xk9PwN4sYc7HdJ2fGb6AeUq8Zr3LmT1v")

	assert.ErrorIs(t, err, ErrNotFoundOrExpired)
}

func TestConsumeResetToken_MalformedTokenNeverReachesUpstream(t *testing.T) {
	crm := newFakeCRM()
	repo := newTestRepository(t, crm)

	for _, token := range []string{"short", "has space in it", "aaaaaaaaaaaa", "' OR '1'='1' --"} {
		_, err := repo.ConsumeResetToken(context.Background(), token)
		assert.ErrorIs(t, err, sanitize.ErrValidation, "token %q", token)
	}
	assert.Empty(t, crm.queries)
}

func TestRecordIDValidation(t *testing.T) {
	crm := newFakeCRM()
	repo := newTestRepository(t, crm)
	ctx := context.Background()

	for _, id := range []string{"", "abc", "1001/../other", "1 OR 1"} {
		_, err := repo.IssueResetToken(ctx, id)
		assert.ErrorIs(t, err, ErrInvalidRecordID)
		assert.ErrorIs(t, repo.ClearResetToken(ctx, id), ErrInvalidRecordID)
		assert.ErrorIs(t, repo.SetCredentialByID(ctx, id, "Correct#Pass1"), ErrInvalidRecordID)
	}
	assert.Zero(t, crm.updates)
}

func TestGenerateResetToken(t *testing.T) {
	seen := make(map[string]struct{})
	for range 200 {
		value, err := generateResetToken()
		require.NoError(t, err)

		_, err = sanitize.Token(value)
		require.NoError(t, err)

		_, dup := seen[value]
		require.False(t, dup)
		seen[value] = struct{}{}
	}
}

// ── Upstream failures ───────────────────────────────────────────────────────

func TestUpdate_RejectedCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mock.NewMockExecutor(ctrl)
	executor.EXPECT().
		Request(gomock.Any(), http.MethodPut, "/Colaboradores/1001", gomock.Any()).
		Return(json.RawMessage(`{"data":[{"code":"MANDATORY_NOT_FOUND","status":"error"}]}`), nil)

	repo := newTestRepository(t, executor)
	err := repo.ClearResetToken(context.Background(), "1001")

	assert.ErrorIs(t, err, ErrUpdateRejected)
}

func TestUpdate_EmptyResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mock.NewMockExecutor(ctrl)
	executor.EXPECT().Request(gomock.Any(), http.MethodPut, gomock.Any(), gomock.Any()).Return(json.RawMessage(`{}`), nil)

	repo := newTestRepository(t, executor)
	err := repo.ClearResetToken(context.Background(), "1001")

	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestVerifyCredential_UpstreamErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mock.NewMockExecutor(ctrl)
	executor.EXPECT().
		Request(gomock.Any(), http.MethodPost, coqlPath, gomock.Any()).
		Return(nil, fmt.Errorf("%w: dial tcp: timeout", adapter.ErrUpstreamUnavailable))

	repo := newTestRepository(t, executor)
	_, err := repo.VerifyCredential(context.Background(), "jane.doe@example.com", "whatever1")

	assert.ErrorIs(t, err, adapter.ErrUpstreamUnavailable)
	assert.False(t, errors.Is(err, ErrNotFoundOrMismatch))
}

func TestVerifyCredential_MalformedRecordID(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mock.NewMockExecutor(ctrl)
	executor.EXPECT().
		Request(gomock.Any(), http.MethodPost, coqlPath, gomock.Any()).
		Return(json.RawMessage(`{"data":[{"id":"../../settings","Email":"jane.doe@example.com"}]}`), nil)

	repo := newTestRepository(t, executor)
	_, err := repo.VerifyCredential(context.Background(), "jane.doe@example.com", "whatever1")

	assert.ErrorIs(t, err, ErrMalformedResponse)
}
