package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/crm-gateway/internal/logger"
)

func TestWithLogging_WritesAccessLine(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: logger.Nop()}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("hello"))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/users/reset-password?token=secret-value", nil)
	req = req.WithContext(zerolog.New(&buf).WithContext(req.Context()))

	rr := httptest.NewRecorder()
	h.withLogging(next).ServeHTTP(rr, req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "/api/users/reset-password", entry["route"])
	assert.Equal(t, "POST", entry["method"])
	assert.EqualValues(t, http.StatusAccepted, entry["status"])
	assert.EqualValues(t, 5, entry["size"])
	assert.Contains(t, entry, "duration")
	assert.NotContains(t, buf.String(), "secret-value")
}

func TestWithLogging_ImplicitStatus(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: logger.Nop()}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req = req.WithContext(zerolog.New(&buf).WithContext(req.Context()))
	h.withLogging(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"status":200`)
}
