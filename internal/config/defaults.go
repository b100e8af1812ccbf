// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"

	DefaultRateLimitMessage = "Too many requests from this IP, please try again in an hour!"
)

// defaults returns the configuration used when no source overrides a field.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-posts-api",
			TokenDuration: 24 * time.Hour,
			LogLevel:      "debug",
			Version:       "dev",
		},
		Server: Server{
			HTTPAddress:    ":8080",
			RequestTimeout: 30 * time.Second,
		},
		Storage: Storage{
			DB: DB{
				Driver: DriverPostgres,
			},
		},
		Security: Security{
			BodyLimit: 100 << 10,
			CORS: CORS{
				AllowedOrigins: []string{"*"},
			},
			RateLimit: RateLimit{
				Max:     100,
				Window:  60 * time.Minute,
				Message: DefaultRateLimitMessage,
			},
			Session: Session{
				Name: "jwt",
			},
		},
		Tracing: Tracing{
			SampleRatio: 1,
		},
	}
}
