// SPDX-License-Identifier: Apache-2.0

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup. Defaults are merged before
// validation runs, so only genuinely broken combinations fail here.
func (cfg *StructuredConfig) validate() error {
	if cfg.Sync.MaxAttempts < 1 {
		return ErrInvalidSyncConfigs
	}
	if cfg.Sync.DebounceWindow <= 0 || cfg.Sync.AttemptTimeout <= 0 || cfg.Sync.ExitTimeout <= 0 {
		return ErrInvalidSyncConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Sync.MaxAttempts < 1 {
		return ErrInvalidSyncConfigs
	}

	return nil
}
