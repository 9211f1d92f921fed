package config

import "errors"

// Validation errors returned by [StructuredConfig.validate]. Any of them is
// fatal at startup.
var (
	// ErrMissingUpstreamConfig indicates that the CRM URL or one of the OAuth
	// client credentials is missing.
	ErrMissingUpstreamConfig = errors.New("missing upstream CRM configuration")
	// ErrInvalidUpstreamConfig indicates malformed CRM settings
	// (for example, a relative URL or a safety margin below 60s).
	ErrInvalidUpstreamConfig = errors.New("invalid upstream CRM configuration")
	// ErrInsecureSessionSecret indicates a missing, short or well-known
	// session signing secret.
	ErrInsecureSessionSecret = errors.New("insecure session secret")
	// ErrInvalidAppConfigs indicates invalid authentication policy settings.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates invalid HTTP server settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidEnvConfig indicates an environment variable that could not be
	// converted to its field type.
	ErrInvalidEnvConfig = errors.New("invalid environment configuration")
	// ErrInvalidNotifyConfigs indicates invalid reset delivery settings.
	ErrInvalidNotifyConfigs = errors.New("invalid notify configuration")
)
