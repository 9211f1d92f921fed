// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionSecret = "q8Zr3LmT1vXk9PwN4sYc7HdJ2fGb6AeU"

func TestParseEnv_AllFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_SESSION_SECRET":                 testSessionSecret,
		"APP_TOKEN_ISSUER":                   "intranet",
		"APP_TOKEN_DURATION":                 "2h",
		"APP_PASSWORD_CHANGE_TOKEN_DURATION": "10m",
		"APP_DELAY_MIN":                      "20ms",
		"APP_DELAY_MAX":                      "40ms",
		"APP_BCRYPT_COST":                    "12",
		"APP_LOG_LEVEL":                      "debug",

		"CRM_API_URL":             "https://www.zohoapis.com/crm/v2",
		"CRM_TOKEN_URL":           "https://accounts.zoho.eu/oauth/v2/token",
		"CRM_CLIENT_ID":           "client-id",
		"CRM_CLIENT_SECRET":       "client-secret",
		"CRM_REFRESH_TOKEN":       "refresh-token",
		"CRM_REQUEST_TIMEOUT":     "5s",
		"CRM_TOKEN_SAFETY_MARGIN": "2m",
		"CRM_MODULE":              "Employees",

		"SERVER_ADDRESS":         "localhost:8080",
		"SERVER_REQUEST_TIMEOUT": "45s",
		"SERVER_AUTH_RATE_LIMIT": "10",

		"WORKERS_TOKEN_WARMUP_INTERVAL": "1m",

		"NOTIFY_WEBHOOK_URL":     "https://mail.internal/send",
		"NOTIFY_RESET_LINK_BASE": "https://intranet.example.org/reset",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, testSessionSecret, cfg.App.SessionSecret)
	assert.Equal(t, "intranet", cfg.App.TokenIssuer)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, 10*time.Minute, cfg.App.PasswordChangeTokenDuration)
	assert.Equal(t, 20*time.Millisecond, cfg.App.DelayMin)
	assert.Equal(t, 40*time.Millisecond, cfg.App.DelayMax)
	assert.Equal(t, 12, cfg.App.BcryptCost)
	assert.Equal(t, "debug", cfg.App.LogLevel)

	assert.Equal(t, "https://www.zohoapis.com/crm/v2", cfg.CRM.APIURL)
	assert.Equal(t, "https://accounts.zoho.eu/oauth/v2/token", cfg.CRM.TokenURL)
	assert.Equal(t, "client-id", cfg.CRM.ClientID)
	assert.Equal(t, "client-secret", cfg.CRM.ClientSecret)
	assert.Equal(t, "refresh-token", cfg.CRM.RefreshToken)
	assert.Equal(t, 5*time.Second, cfg.CRM.RequestTimeout)
	assert.Equal(t, 2*time.Minute, cfg.CRM.TokenSafetyMargin)
	assert.Equal(t, "Employees", cfg.CRM.Module)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 10, cfg.Server.AuthRateLimit)

	assert.Equal(t, time.Minute, cfg.Workers.TokenWarmupInterval)

	assert.Equal(t, "https://mail.internal/send", cfg.Notify.WebhookURL)
	assert.Equal(t, "https://intranet.example.org/reset", cfg.Notify.ResetLinkBase)
}

func TestParseEnv_Defaults(t *testing.T) {
	setEnvVars(t, map[string]string{})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "crm-gateway", cfg.App.TokenIssuer)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, 15*time.Minute, cfg.App.PasswordChangeTokenDuration)
	assert.Equal(t, 50*time.Millisecond, cfg.App.DelayMin)
	assert.Equal(t, 300*time.Millisecond, cfg.App.DelayMax)
	assert.Equal(t, 10, cfg.App.BcryptCost)

	assert.Equal(t, "https://accounts.zoho.com/oauth/v2/token", cfg.CRM.TokenURL)
	assert.Equal(t, 15*time.Second, cfg.CRM.RequestTimeout)
	assert.Equal(t, 60*time.Second, cfg.CRM.TokenSafetyMargin)
	assert.Equal(t, "Colaboradores", cfg.CRM.Module)
	assert.Empty(t, cfg.CRM.APIURL)

	assert.Equal(t, ":3001", cfg.Server.HTTPAddress)
	assert.Equal(t, 5, cfg.Server.AuthRateLimit)
	assert.Equal(t, 15*time.Minute, cfg.Server.AuthRateWindow)
	assert.Equal(t, 3, cfg.Server.ResetRateLimit)
	assert.Equal(t, time.Hour, cfg.Server.ResetRateWindow)
	assert.Equal(t, 100, cfg.Server.GeneralRateLimit)

	assert.Equal(t, 5*time.Minute, cfg.Workers.TokenWarmupInterval)
	assert.Empty(t, cfg.Notify.WebhookURL)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{"APP_TOKEN_DURATION": "forever"})

	err := parseEnv(&StructuredConfig{})
	assert.ErrorIs(t, err, ErrInvalidEnvConfig)
	assert.Contains(t, err.Error(), "TokenDuration")
}

func TestParseEnv_InvalidInt(t *testing.T) {
	setEnvVars(t, map[string]string{"APP_BCRYPT_COST": "high"})

	err := parseEnv(&StructuredConfig{})
	assert.Error(t, err)
}

func TestParseEnvFrom_ErrorHidesValue(t *testing.T) {
	err := parseEnvFrom(&StructuredConfig{}, map[string]string{
		"APP_BCRYPT_COST":    "s3cr3t-looking-value",
		"CRM_CLIENT_SECRET":  "client-secret",
		"APP_SESSION_SECRET": "session-secret",
	})

	require.ErrorIs(t, err, ErrInvalidEnvConfig)
	assert.Contains(t, err.Error(), "BcryptCost")
	assert.NotContains(t, err.Error(), "s3cr3t-looking-value")
}

func TestParseEnvFrom_IgnoresProcessEnvironment(t *testing.T) {
	setEnvVars(t, map[string]string{"CRM_MODULE": "FromProcess"})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnvFrom(cfg, map[string]string{"CRM_MODULE": "FromMap"}))

	assert.Equal(t, "FromMap", cfg.CRM.Module)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",

		"APP_SESSION_SECRET",
		"APP_TOKEN_ISSUER",
		"APP_TOKEN_DURATION",
		"APP_PASSWORD_CHANGE_TOKEN_DURATION",
		"APP_DELAY_MIN",
		"APP_DELAY_MAX",
		"APP_BCRYPT_COST",
		"APP_LOG_LEVEL",

		"CRM_API_URL",
		"CRM_TOKEN_URL",
		"CRM_CLIENT_ID",
		"CRM_CLIENT_SECRET",
		"CRM_REFRESH_TOKEN",
		"CRM_REQUEST_TIMEOUT",
		"CRM_TOKEN_SAFETY_MARGIN",
		"CRM_MODULE",
		"CRM_BREAKER_TIMEOUT",

		"SERVER_ADDRESS",
		"SERVER_REQUEST_TIMEOUT",
		"SERVER_AUTH_RATE_LIMIT",
		"SERVER_AUTH_RATE_WINDOW",
		"SERVER_RESET_RATE_LIMIT",
		"SERVER_RESET_RATE_WINDOW",
		"SERVER_GENERAL_RATE_LIMIT",
		"SERVER_GENERAL_RATE_WINDOW",

		"WORKERS_TOKEN_WARMUP_INTERVAL",

		"NOTIFY_WEBHOOK_URL",
		"NOTIFY_RESET_LINK_BASE",
		"NOTIFY_TIMEOUT",
	}
	for _, k := range keys {
		if old, ok := os.LookupEnv(k); ok {
			require.NoError(t, os.Unsetenv(k))
			t.Cleanup(func() { _ = os.Setenv(k, old) })
		}
	}
}
