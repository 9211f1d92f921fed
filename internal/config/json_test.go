package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")

	jsonBody := `{
		"app": {
			"session_secret": "q8Zr3LmT1vXk9PwN4sYc7HdJ2fGb6AeU",
			"token_issuer": "intranet",
			"token_duration": "2h",
			"delay_min": "10ms",
			"bcrypt_cost": 11
		},
		"crm": {
			"api_url": "https://www.zohoapis.eu/crm/v2",
			"client_id": "id",
			"request_timeout": "5s",
			"module": "Staff"
		},
		"server": {
			"http_address": "localhost:8080",
			"auth_rate_limit": 7,
			"reset_rate_window": "2h"
		},
		"workers": { "token_warmup_interval": "90s" },
		"notify": { "webhook_url": "https://mail.internal/send" }
	}`
	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	cfg, err := parseJSON(p)
	require.NoError(t, err)

	assert.Equal(t, "q8Zr3LmT1vXk9PwN4sYc7HdJ2fGb6AeU", cfg.App.SessionSecret)
	assert.Equal(t, "intranet", cfg.App.TokenIssuer)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, 10*time.Millisecond, cfg.App.DelayMin)
	assert.Equal(t, 11, cfg.App.BcryptCost)
	assert.Equal(t, "https://www.zohoapis.eu/crm/v2", cfg.CRM.APIURL)
	assert.Equal(t, 5*time.Second, cfg.CRM.RequestTimeout)
	assert.Equal(t, "Staff", cfg.CRM.Module)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 7, cfg.Server.AuthRateLimit)
	assert.Equal(t, 2*time.Hour, cfg.Server.ResetRateWindow)
	assert.Equal(t, 90*time.Second, cfg.Workers.TokenWarmupInterval)
	assert.Equal(t, "https://mail.internal/send", cfg.Notify.WebhookURL)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"app": `), 0o600))

	_, err := parseJSON(p)
	assert.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"string", `"1m30s"`, 90 * time.Second, false},
		{"nanoseconds", `1000000000`, time.Second, false},
		{"bad string", `"soon"`, 0, true},
		{"bool", `true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := Duration(15 * time.Second).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"15s"`, string(b))
}
