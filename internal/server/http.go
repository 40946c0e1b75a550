package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-account-keeper/internal/config"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/go-chi/chi/v5/middleware"
)

const readHeaderTimeout = 10 * time.Second

type httpServer struct {
	server *http.Server
	logger *logger.Logger
}

// newHTTPServer serves handler on cfg.HTTPAddress. A positive
// cfg.RequestTimeout cancels the context of slower requests.
func newHTTPServer(handler http.Handler, cfg config.Server, logger *logger.Logger) *httpServer {
	if cfg.RequestTimeout > 0 {
		handler = middleware.Timeout(cfg.RequestTimeout)(handler)
	}

	return &httpServer{
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logger: logger,
	}
}

// RunServer blocks until the server is shut down. A closed server is not
// an error.
func (h *httpServer) RunServer() error {
	h.logger.Info().Str("address", h.server.Addr).Msg("HTTP server listening")
	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		h.logger.Err(err).Str("func", "httpServer.RunServer").Msg("HTTP server ListenAndServe")
		return err
	}
	return nil
}

func (h *httpServer) Shutdown(ctx context.Context) error {
	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Err(err).Str("func", "httpServer.Shutdown").Msg("HTTP server Shutdown")
		return err
	}
	return nil
}
