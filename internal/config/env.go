// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from the process environment through the `env`,
// `envPrefix` and `envDefault` tags of [StructuredConfig].
func parseEnv(cfg *StructuredConfig) error {
	return parseEnvFrom(cfg, env.ToMap(os.Environ()))
}

// parseEnvFrom reads cfg from environ. Errors name the offending fields but
// never carry the raw values, several of which are secrets.
func parseEnvFrom(cfg *StructuredConfig, environ map[string]string) error {
	err := env.ParseWithOptions(cfg, env.Options{Environment: environ})
	if err == nil {
		return nil
	}

	var agg env.AggregateError
	if !errors.As(err, &agg) {
		return fmt.Errorf("%w: %w", ErrInvalidEnvConfig, err)
	}

	fields := make([]string, 0, len(agg.Errors))
	for _, e := range agg.Errors {
		var pe env.ParseError
		if errors.As(e, &pe) {
			fields = append(fields, pe.Name)
			continue
		}
		fields = append(fields, "unknown")
	}
	return fmt.Errorf("%w: cannot parse %s", ErrInvalidEnvConfig, strings.Join(fields, ", "))
}
