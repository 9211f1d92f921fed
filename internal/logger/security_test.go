package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSecurityEvent(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	tests := []struct {
		level     SecurityLevel
		wantLevel string
	}{
		{SecurityInfo, "info"},
		{SecurityWarning, "warn"},
		{SecurityAlert, "error"},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			var buf bytes.Buffer
			ctx := zerolog.New(&buf).WithContext(context.Background())

			SecurityEvent(ctx, tt.level, "login failed", map[string]any{"email": MaskEmail("jane@example.com")})

			entry := decodeEntry(t, &buf)
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, string(tt.level), entry["severity"])
			assert.Equal(t, SecuritySource, entry["source"])
			assert.Equal(t, "login failed", entry["event"])
			assert.Equal(t, true, entry["security"])
			assert.Equal(t, "jan***", entry["email"])
			assert.NotContains(t, buf.String(), "jane@example.com")
		})
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, "jan***", MaskEmail("jane@example.com"))
	assert.Equal(t, "***", MaskEmail("ab"))
	assert.Equal(t, "", MaskEmail(""))

	assert.Equal(t, "abcdefgh***", MaskToken("abcdefghijklmnop"))
	assert.Equal(t, "***", MaskToken("abcdefgh"))
	assert.Equal(t, "ñañ***", MaskEmail("ñañaña@example.com"))
}
