package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-account-keeper/internal/adapter"
	"github.com/MKhiriev/go-account-keeper/internal/client"
	"github.com/MKhiriev/go-account-keeper/internal/config"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/tui"
	"github.com/MKhiriev/go-account-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	level := "warn"
	if os.Getenv("ACCOUNT_CLIENT_DEBUG") != "" {
		level = "debug"
	}
	log, _ := logger.NewLogger("go-account-client").WithLevel(level)

	args := os.Args[1:]
	if len(args) > 0 && args[0] == "build-info" {
		fmt.Print(info)
		return
	}

	// configuration comes from the environment, .env and the CONFIG file;
	// the command line belongs to the commands
	cfg, err := config.GetClientConfig(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	accounts, err := adapter.NewHTTPAccountAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	tokens, err := client.NewFileTokenStore(os.Getenv("ACCOUNT_CLIENT_TOKEN_FILE"))
	if err != nil {
		log.Fatal().Err(err).Msg("create token store")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(args) > 0 && args[0] == "interactive" {
		if err = tui.New(accounts, tokens, log).Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	app := client.NewApp(accounts, tokens, os.Stdout, log)
	if err = app.Run(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, client.ErrUsage) || errors.Is(err, client.ErrUnknownCommand) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
