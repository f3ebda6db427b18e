package config

import (
	"fmt"
	"time"
)

// ClientAPI holds the settings used to build the request gateway.
type ClientAPI struct {
	// Origin is the web application origin the API root is derived from.
	Origin string
	// Locale is the initial locale scope; empty means global.
	Locale string
	// RequestTimeout is the transport timeout; zero keeps the default.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the sqlite file that persists the session identifier.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientLog holds logging settings of the client.
type ClientLog struct {
	Level string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// API contains the gateway origin, locale and transport timeout.
	API ClientAPI
	// Storage contains client storage settings.
	Storage ClientStorage
	// Log contains logging settings.
	Log ClientLog
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration. args are the command-line arguments
// without the program name; the positional arguments left after flag parsing
// are returned as the second value. A config that fails validation is still
// returned together with the error, so commands that need no backend can run.
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	cfg, rest, err := GetStructuredConfig(args)
	if err != nil {
		return nil, nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, rest, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		API: ClientAPI{
			Origin:         cfg.API.Origin,
			Locale:         cfg.API.Locale,
			RequestTimeout: cfg.API.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Log: ClientLog{Level: cfg.Log.Level},
	}
}
