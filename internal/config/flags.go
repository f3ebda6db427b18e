package config

import (
	"flag"
	"fmt"
	"time"
)

// ParseFlags parses the global configuration flags from args (without the
// program name) and returns the resulting config together with the
// positional arguments that follow the flags.
//
// Flags:
//
//	-origin web application origin (e.g. https://voice.example.org)
//	-locale locale scope (e.g. fr)
//	-d session database DSN
//	-request-timeout transport timeout (e.g. "30s"), 0 keeps the default
//	-log-level zerolog level
//	-c/-config json file path with configs
func ParseFlags(args []string) (*StructuredConfig, []string, error) {
	var (
		origin         string
		locale         string
		databaseDSN    string
		requestTimeout time.Duration
		logLevel       string
		jsonConfigPath string
	)

	fs := flag.NewFlagSet("voice-client", flag.ContinueOnError)
	fs.StringVar(&origin, "origin", "", "Web application origin")
	fs.StringVar(&locale, "locale", "", "Locale scope")
	fs.StringVar(&databaseDSN, "d", "", "Session database DSN")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Transport timeout (e.g., 30s, 1m)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		API: API{
			Origin:         origin,
			Locale:         locale,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Log:          Log{Level: logLevel},
		JSONFilePath: jsonConfigPath,
	}, fs.Args(), nil
}
