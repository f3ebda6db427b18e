// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// voice-gateway client. It is populated by merging values from a .env file,
// environment variables, command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix : prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       : direct environment variable name for scalar fields.
//   - envDefault: value used when the variable is not set.
type StructuredConfig struct {
	// API holds the backend origin, the locale scope and transport settings.
	API API `envPrefix:"API_"`

	// Storage holds the local session store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Log holds logging settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// API holds the settings of the outbound REST gateway.
type API struct {
	// Origin is the scheme and host of the web application
	// (e.g. "https://voice.example.org"). The versioned API root is derived
	// from it.
	// Env: API_ORIGIN
	Origin string `env:"ORIGIN"`

	// Locale is the optional language scope (e.g. "fr", "pt-BR").
	// Env: API_LOCALE
	Locale string `env:"LOCALE"`

	// RequestTimeout is handed to the transport as its own timeout.
	// Zero keeps the transport default (no deadline).
	// Env: API_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration of local persistence.
type Storage struct {
	// DB holds the sqlite session database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local sqlite session database.
type DB struct {
	// DSN is the sqlite file path (e.g. "session.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN" envDefault:"session.db"`
}

// Log holds logging settings.
type Log struct {
	// Level is a zerolog level name ("debug", "info", "warn", ...).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL" envDefault:"info"`
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources in the following priority order (last source wins for
// non-zero fields):
//  1. .env file in the working directory (only fills unset variables)
//  2. Environment variables
//  3. Command-line flags parsed from args
//  4. JSON file (path resolved from sources 2 and 3)
//
// The positional arguments left after flag parsing are returned alongside
// the config.
func GetStructuredConfig(args []string) (*StructuredConfig, []string, error) {
	b := newConfigBuilder().
		withDotEnv(defaultDotEnvPath).
		withEnv().
		withFlags(args).
		withJSON()

	cfg, err := b.build()
	return cfg, b.rest, err
}
