package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/voice-gateway/internal/client"
	"github.com/MKhiriev/voice-gateway/internal/config"
	"github.com/MKhiriev/voice-gateway/internal/logger"
	"github.com/MKhiriev/voice-gateway/internal/session"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup happens before exit.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if cfg != nil && (len(args) == 0 || args[0] == "version") {
		printBuildInfo()
		fmt.Print(client.Usage())
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error getting configs:", err)
		return 2
	}

	log := logger.NewClientLogger("voice-client", cfg.Log.Level)

	store, err := session.NewSQLiteStore(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Error().Err(err).Msg("create session storage")
		return 1
	}
	defer store.Close()

	app, err := client.NewApp(ctx, cfg.API, store, prometheus.DefaultRegisterer, os.Stdout, log)
	if err != nil {
		log.Error().Err(err).Msg("init client app error")
		return 1
	}

	if err = app.Run(ctx, args); err != nil {
		log.Err(err).Strs("args", args).Msg("command failed")
		if errors.Is(err, client.ErrUsage) || errors.Is(err, client.ErrUnknownCommand) {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		return 1
	}

	return 0
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
