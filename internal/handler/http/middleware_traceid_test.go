package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/crm-gateway/internal/logger"
)

func executeWithTraceID(h *Handler, incoming string) *httptest.ResponseRecorder {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if incoming != "" {
		req.Header.Set(traceIDHeader, incoming)
	}

	rr := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rr, req)
	return rr
}

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name         string
		incoming     string
		wantIncoming bool
	}{
		{name: "reuses plain id", incoming: "my-custom-trace-id", wantIncoming: true},
		{name: "reuses uuid", incoming: "550e8400-e29b-41d4-a716-446655440000", wantIncoming: true},
		{name: "generates when missing", incoming: ""},
		{name: "replaces id with spaces", incoming: "a b"},
		{name: "replaces id with quotes", incoming: `x"}{"admin":true`},
		{name: "replaces overlong id", incoming: strings.Repeat("a", 65)},
	}

	h := &Handler{logger: logger.Nop()}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := executeWithTraceID(h, tt.incoming)

			got := rr.Header().Get(traceIDHeader)
			if tt.wantIncoming {
				assert.Equal(t, tt.incoming, got)
				return
			}
			_, err := uuid.Parse(got)
			assert.NoError(t, err, "generated trace id %q", got)
		})
	}
}

func TestWithTraceID_UniquePerRequest(t *testing.T) {
	h := &Handler{logger: logger.Nop()}

	first := executeWithTraceID(h, "").Header().Get(traceIDHeader)
	second := executeWithTraceID(h, "").Header().Get(traceIDHeader)

	assert.NotEqual(t, first, second)
}
