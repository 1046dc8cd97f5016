// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from variables such as STORAGE_DB_DATABASE_URI or
// WORKERS_MIGRATION_RESUME_INTERVAL. Unset variables leave zero values for
// the later sources to fill.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}
