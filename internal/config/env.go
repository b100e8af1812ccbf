// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from environment variables using caarlos0/env.
// Fields are mapped via the `env` and `envPrefix` tags on [StructuredConfig]
// and its nested types. Unset variables leave fields at their zero value so
// that earlier sources survive the merge.
func parseEnv(cfg *StructuredConfig) error {
	parsed, err := env.ParseAs[StructuredConfig]()
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	*cfg = parsed
	return nil
}
