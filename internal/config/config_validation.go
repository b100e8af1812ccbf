// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants the server relies on at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	sec := cfg.Security
	if sec.BodyLimit <= 0 {
		return fmt.Errorf("%w: body limit must be positive", ErrInvalidSecurityConfigs)
	}
	if !sec.RateLimit.Disabled && (sec.RateLimit.Max <= 0 || sec.RateLimit.Window <= 0) {
		return fmt.Errorf("%w: rate limit needs positive max and window", ErrInvalidSecurityConfigs)
	}
	if sec.Session.Name == "" {
		return fmt.Errorf("%w: empty session cookie name", ErrInvalidSecurityConfigs)
	}
	if sec.Session.Signed && sec.Session.SignKey == "" {
		return fmt.Errorf("%w: signed session requires a sign key", ErrInvalidSecurityConfigs)
	}

	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		return ErrInvalidTracingConfigs
	}

	return nil
}
