package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-account-keeper/internal/config"
	"github.com/MKhiriev/go-account-keeper/internal/handler"
	"github.com/MKhiriev/go-account-keeper/internal/handler/http"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/notify"
	"github.com/MKhiriev/go-account-keeper/internal/server"
	"github.com/MKhiriev/go-account-keeper/internal/service"
	"github.com/MKhiriev/go-account-keeper/internal/store"
	"github.com/MKhiriev/go-account-keeper/internal/workers"
	"github.com/MKhiriev/go-account-keeper/models"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(info)

	log, err := logger.NewLogger("go-account-server").WithLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Warn().Err(err).Msg("keeping default log level")
	}
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if info.HasVersion() {
		cfg.App.Version = info.BuildVersion()
	}

	log.Debug().
		Str("address", cfg.Server.HTTPAddress).
		Str("smtp_host", cfg.Mail.SMTPHost).
		Bool("mail_async", cfg.Mail.Async).
		Msg("received configs")

	db, err := store.NewConnect(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	outbox, background := newOutbox(cfg.Mail, log)

	services, err := service.NewServices(store.NewAccountStore(db, log), outbox, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log,
		http.WithAdminToken(cfg.App.AdminToken),
		http.WithRetryClassifier(db.IsRetryable),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, background, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}

// newOutbox builds the mail delivery chain: SMTP, or the log without a
// relay, optionally behind the asynchronous dispatcher, always behind
// BestEffort.
func newOutbox(cfg config.Mail, log *logger.Logger) (*notify.BestEffort, *workers.Workers) {
	var notifier notify.Notifier
	if cfg.SMTPHost != "" {
		notifier = notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.Username,
			Password: cfg.Password,
			Sender:   cfg.Sender,
		})
	} else {
		log.Warn().Msg("no SMTP host configured, e-mails are written to the log")
		notifier = notify.NewLogNotifier(log)
	}

	if !cfg.Async {
		return notify.NewBestEffort(notifier, log, prometheus.DefaultRegisterer), workers.NewWorkers()
	}

	dispatcher := workers.NewNotificationDispatcher(notifier, cfg.QueueSize, log, prometheus.DefaultRegisterer)
	outbox := notify.NewBestEffort(dispatcher, log, prometheus.DefaultRegisterer)
	dispatcher.OnFailure(outbox.Record)

	return outbox, workers.NewWorkers(dispatcher)
}
