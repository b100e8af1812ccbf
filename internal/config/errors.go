package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates missing token settings.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates a missing API listener address.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStorageConfigs indicates an unsupported driver or empty DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSecurityConfigs indicates inconsistent pipeline settings.
	ErrInvalidSecurityConfigs = errors.New("invalid security configuration")
	// ErrInvalidTracingConfigs indicates tracing enabled without an endpoint.
	ErrInvalidTracingConfigs = errors.New("invalid tracing configuration")
)
