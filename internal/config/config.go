// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// crm-gateway service. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
//   - envDefault: value used when the variable is unset.
type StructuredConfig struct {
	// App holds session token and authentication policy settings.
	App App `envPrefix:"APP_"`

	// CRM holds upstream CRM endpoint and OAuth client settings.
	CRM CRM `envPrefix:"CRM_"`

	// Server holds network, timeout and rate limit settings of the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Notify holds the password reset delivery settings.
	Notify Notify `envPrefix:"NOTIFY_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds session token and authentication policy values.
type App struct {
	// SessionSecret signs gateway-issued tokens. At least 32 characters and
	// not a well-known placeholder.
	// Env: APP_SESSION_SECRET
	SessionSecret string `env:"SESSION_SECRET"`

	// TokenIssuer is the "iss" claim of issued tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER" envDefault:"crm-gateway"`

	// TokenDuration is the lifetime of a session token.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION" envDefault:"1h"`

	// PasswordChangeTokenDuration is the lifetime of the scoped token issued
	// when the employee must replace the initial password.
	// Env: APP_PASSWORD_CHANGE_TOKEN_DURATION
	PasswordChangeTokenDuration time.Duration `env:"PASSWORD_CHANGE_TOKEN_DURATION" envDefault:"15m"`

	// DelayMin and DelayMax bound the random delay added to failed
	// authentication attempts.
	// Env: APP_DELAY_MIN, APP_DELAY_MAX
	DelayMin time.Duration `env:"DELAY_MIN" envDefault:"50ms"`
	DelayMax time.Duration `env:"DELAY_MAX" envDefault:"300ms"`

	// BcryptCost is the work factor for new password hashes.
	// Env: APP_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	// LogLevel is the zerolog level name.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// CRM holds the upstream endpoint and OAuth client settings.
type CRM struct {
	// APIURL is the base URL of the CRM REST API,
	// e.g. "https://www.zohoapis.com/crm/v2".
	// Env: CRM_API_URL
	APIURL string `env:"API_URL"`

	// TokenURL is the OAuth token endpoint.
	// Env: CRM_TOKEN_URL
	TokenURL string `env:"TOKEN_URL" envDefault:"https://accounts.zoho.com/oauth/v2/token"`

	// ClientID, ClientSecret and RefreshToken authenticate the
	// refresh-token grant.
	// Env: CRM_CLIENT_ID, CRM_CLIENT_SECRET, CRM_REFRESH_TOKEN
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RefreshToken string `env:"REFRESH_TOKEN"`

	// RequestTimeout bounds every upstream call.
	// Env: CRM_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`

	// TokenSafetyMargin is how long before expiry a cached access token is
	// considered stale. At least 60s.
	// Env: CRM_TOKEN_SAFETY_MARGIN
	TokenSafetyMargin time.Duration `env:"TOKEN_SAFETY_MARGIN" envDefault:"60s"`

	// Module is the CRM module holding employee credentials.
	// Env: CRM_MODULE
	Module string `env:"MODULE" envDefault:"Colaboradores"`

	// BreakerTimeout is how long the circuit breaker stays open.
	// Env: CRM_BREAKER_TIMEOUT
	BreakerTimeout time.Duration `env:"BREAKER_TIMEOUT" envDefault:"30s"`
}

// Server holds network, timeout and rate limit settings for the inbound
// transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS" envDefault:":3001"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	// AuthRateLimit login attempts are allowed per AuthRateWindow for one
	// client IP and user agent.
	// Env: SERVER_AUTH_RATE_LIMIT, SERVER_AUTH_RATE_WINDOW
	AuthRateLimit  int           `env:"AUTH_RATE_LIMIT" envDefault:"5"`
	AuthRateWindow time.Duration `env:"AUTH_RATE_WINDOW" envDefault:"15m"`

	// ResetRateLimit reset requests are allowed per ResetRateWindow for one
	// client IP.
	// Env: SERVER_RESET_RATE_LIMIT, SERVER_RESET_RATE_WINDOW
	ResetRateLimit  int           `env:"RESET_RATE_LIMIT" envDefault:"3"`
	ResetRateWindow time.Duration `env:"RESET_RATE_WINDOW" envDefault:"1h"`

	// GeneralRateLimit requests are allowed per GeneralRateWindow for one
	// client IP on every route.
	// Env: SERVER_GENERAL_RATE_LIMIT, SERVER_GENERAL_RATE_WINDOW
	GeneralRateLimit  int           `env:"GENERAL_RATE_LIMIT" envDefault:"100"`
	GeneralRateWindow time.Duration `env:"GENERAL_RATE_WINDOW" envDefault:"15m"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// TokenWarmupInterval is how often the access token is checked and
	// refreshed ahead of demand. Zero disables the worker.
	// Env: WORKERS_TOKEN_WARMUP_INTERVAL
	TokenWarmupInterval time.Duration `env:"TOKEN_WARMUP_INTERVAL" envDefault:"5m"`
}

// Notify holds password reset delivery settings.
type Notify struct {
	// WebhookURL is the mail relay endpoint reset messages are posted to.
	// When empty, reset messages are only logged (masked).
	// Env: NOTIFY_WEBHOOK_URL
	WebhookURL string `env:"WEBHOOK_URL"`

	// ResetLinkBase is the reset page URL; the token is appended as
	// the "token" query parameter.
	// Env: NOTIFY_RESET_LINK_BASE
	ResetLinkBase string `env:"RESET_LINK_BASE" envDefault:"http://localhost:3000/reset-password"`

	// Timeout bounds a single delivery request.
	// Env: NOTIFY_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// GetStructuredConfig loads, merges, and validates the service
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(osArgs()).
		withJSON().
		build()
}
