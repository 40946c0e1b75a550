package server

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-account-keeper/internal/config"
	"github.com/MKhiriev/go-account-keeper/internal/handler"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/workers"
)

const defaultShutdownTimeout = 10 * time.Second

type server struct {
	httpServer      *httpServer
	workers         *workers.Workers
	shutdownTimeout time.Duration
	logger          *logger.Logger
}

// NewServer builds the server for handlers. background may be nil.
func NewServer(handlers *handler.Handlers, background *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	s := &server{
		workers:         background,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}

	if handlers != nil && handlers.HTTP != nil && cfg.HTTPAddress != "" {
		s.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if s.httpServer == nil {
		return nil, errNoServersAreCreated
	}

	if s.workers == nil {
		s.workers = workers.NewWorkers()
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = defaultShutdownTimeout
	}

	return s, nil
}

func (s *server) RunServer() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return s.run(ctx)
}

// run serves until ctx is done or the listener fails. The HTTP server is
// shut down first so that no request can enqueue work for a stopped worker.
func (s *server) run(ctx context.Context) error {
	workersCtx, stopWorkers := context.WithCancel(context.WithoutCancel(ctx))
	defer stopWorkers()

	workersDone := make(chan error, 1)
	go func() {
		s.logger.Info().Int("workers", s.workers.Len()).Msg("Launching background workers")
		workersDone <- s.workers.Run(workersCtx)
	}()

	serveDone := make(chan error, 1)
	go func() {
		s.logger.Info().Msg("Launching HTTP server")
		serveDone <- s.httpServer.RunServer()
	}()

	var errs []error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop signal received")
	case err := <-serveDone:
		errs = append(errs, err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", errShutdownFailed, err))
	}

	stopWorkers()
	if err := <-workersDone; err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", errWorkersFailed, err))
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
