// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	minSessionSecretLength = 32
	minSecretDistinctChars = 8
	minTokenSafetyMargin   = 60 * time.Second
	minBcryptCost          = 10
)

// placeholderFragments mark secrets copied from documentation and tutorials.
var placeholderFragments = []string{
	"changeme",
	"change-me",
	"change_me",
	"change-this",
	"change_this",
	"your-secret",
	"your_secret",
	"yoursecret",
	"secret-key",
	"secret_key",
	"supersecret",
	"placeholder",
	"example",
	"default",
	"password",
	"123456",
}

// validate checks that the final merged [StructuredConfig] satisfies all
// service invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if err := cfg.CRM.validate(); err != nil {
		return err
	}
	if err := validateSessionSecret(cfg.App.SessionSecret); err != nil {
		return err
	}
	if err := cfg.App.validate(); err != nil {
		return err
	}
	if err := cfg.Server.validate(); err != nil {
		return err
	}
	return cfg.Notify.validate()
}

func (c CRM) validate() error {
	if c.APIURL == "" || c.ClientID == "" || c.ClientSecret == "" || c.RefreshToken == "" {
		return ErrMissingUpstreamConfig
	}
	for name, raw := range map[string]string{"api url": c.APIURL, "token url": c.TokenURL} {
		if !isAbsoluteHTTPURL(raw) {
			return fmt.Errorf("%w: %s must be an absolute http(s) URL", ErrInvalidUpstreamConfig, name)
		}
	}
	if c.TokenSafetyMargin < minTokenSafetyMargin {
		return fmt.Errorf("%w: token safety margin must be at least %s", ErrInvalidUpstreamConfig, minTokenSafetyMargin)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidUpstreamConfig)
	}
	if c.Module == "" {
		return fmt.Errorf("%w: module is required", ErrInvalidUpstreamConfig)
	}
	return nil
}

func validateSessionSecret(secret string) error {
	if len(secret) < minSessionSecretLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrInsecureSessionSecret, minSessionSecretLength)
	}

	lower := strings.ToLower(secret)
	for _, fragment := range placeholderFragments {
		if strings.Contains(lower, fragment) {
			return fmt.Errorf("%w: looks like a placeholder value", ErrInsecureSessionSecret)
		}
	}

	distinct := make(map[rune]struct{})
	for _, r := range secret {
		distinct[r] = struct{}{}
	}
	if len(distinct) < minSecretDistinctChars {
		return fmt.Errorf("%w: too few distinct characters", ErrInsecureSessionSecret)
	}

	return nil
}

func (a App) validate() error {
	switch {
	case a.TokenIssuer == "":
		return fmt.Errorf("%w: token issuer is required", ErrInvalidAppConfigs)
	case a.TokenDuration <= 0 || a.PasswordChangeTokenDuration <= 0:
		return fmt.Errorf("%w: token durations must be positive", ErrInvalidAppConfigs)
	case a.DelayMin < 0 || a.DelayMax < a.DelayMin:
		return fmt.Errorf("%w: delay bounds must satisfy 0 <= min <= max", ErrInvalidAppConfigs)
	case a.BcryptCost < minBcryptCost || a.BcryptCost > bcrypt.MaxCost:
		return fmt.Errorf("%w: bcrypt cost must be within %d..%d", ErrInvalidAppConfigs, minBcryptCost, bcrypt.MaxCost)
	}
	return nil
}

func (s Server) validate() error {
	switch {
	case s.HTTPAddress == "":
		return fmt.Errorf("%w: address is required", ErrInvalidServerConfigs)
	case s.RequestTimeout <= 0:
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidServerConfigs)
	case s.AuthRateLimit <= 0 || s.ResetRateLimit <= 0 || s.GeneralRateLimit <= 0:
		return fmt.Errorf("%w: rate limits must be positive", ErrInvalidServerConfigs)
	case s.AuthRateWindow <= 0 || s.ResetRateWindow <= 0 || s.GeneralRateWindow <= 0:
		return fmt.Errorf("%w: rate windows must be positive", ErrInvalidServerConfigs)
	}
	return nil
}

func (n Notify) validate() error {
	if n.WebhookURL != "" && !isAbsoluteHTTPURL(n.WebhookURL) {
		return fmt.Errorf("%w: webhook url must be an absolute http(s) URL", ErrInvalidNotifyConfigs)
	}
	if !isAbsoluteHTTPURL(n.ResetLinkBase) {
		return fmt.Errorf("%w: reset link base must be an absolute http(s) URL", ErrInvalidNotifyConfigs)
	}
	return nil
}

func isAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
