// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks the merged [StructuredConfig]. Only values that would make
// every command fail are rejected here; origin presence is a client concern
// checked by [ClientConfig.validate].
func (cfg *StructuredConfig) validate() error {
	if cfg.API.RequestTimeout < 0 {
		return ErrInvalidAPIConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if strings.TrimSpace(cfg.API.Origin) == "" || cfg.API.RequestTimeout < 0 {
		return ErrInvalidAPIConfigs
	}

	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	return nil
}
