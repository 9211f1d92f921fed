package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/crm-gateway/internal/service"
	"github.com/MKhiriev/crm-gateway/internal/utils"
	"github.com/MKhiriev/crm-gateway/models"
)

func executeAuth(h *Handler, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	rr := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rr, req)
	return rr
}

func TestAuth_RejectsMalformedHeaders(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{name: "missing", header: "", wantMsg: ErrEmptyAuthorizationHeader.Error()},
		{name: "scheme only", header: "Bearer", wantMsg: utils.ErrInvalidAuthorizationHeader.Error()},
		{name: "wrong scheme", header: "Basic " + testBearer, wantMsg: utils.ErrInvalidAuthorizationHeader.Error()},
		{name: "extra parts", header: "Bearer a b", wantMsg: utils.ErrInvalidAuthorizationHeader.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, generousLimits())
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("next must not be called")
			})

			rr := executeAuth(env.h, tt.header, next)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, tt.wantMsg, decodeBody[models.ErrorResponse](t, rr).Message)
		})
	}
}

func TestAuth_RejectsInvalidToken(t *testing.T) {
	env := newTestEnv(t, generousLimits())
	env.auth.EXPECT().ParseToken(gomock.Any(), testBearer).Return(models.SessionClaims{}, service.ErrTokenIsExpiredOrInvalid)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not be called")
	})

	rr := executeAuth(env.h, "Bearer "+testBearer, next)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, service.ErrTokenIsExpiredOrInvalid.Error(), decodeBody[models.ErrorResponse](t, rr).Message)
}

func TestAuth_StoresClaimsInContext(t *testing.T) {
	env := newTestEnv(t, generousLimits())
	claims := claimsWithScope(models.ScopeSession)
	env.auth.EXPECT().ParseToken(gomock.Any(), testBearer).Return(claims, nil)

	var got models.SessionClaims
	var ok bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = utils.GetClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	rr := executeAuth(env.h, "bearer "+testBearer, next)

	require.Equal(t, http.StatusNoContent, rr.Code)
	require.True(t, ok)
	assert.Equal(t, claims, got)
}

func TestRequireScope(t *testing.T) {
	env := newTestEnv(t, generousLimits())
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mw := env.h.requireScope(models.ScopeSession)

	// no claims at all
	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// wrong scope
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(utils.WithClaims(req.Context(), claimsWithScope(models.ScopePasswordChange)))
	rr = httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// allowed scope
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(utils.WithClaims(req.Context(), claimsWithScope(models.ScopeSession)))
	rr = httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}
