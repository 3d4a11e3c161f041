// Package api exposes the aggregated entry set and cached health results over
// a small read-only HTTP API. Toggles stay CLI-only: they are local file
// mutations and get no remote write surface.
package api

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hashicorp/go-hclog"

	internalcmd "github.com/mcpscope/mcpscope/internal/cmd"
	"github.com/mcpscope/mcpscope/internal/config"
	"github.com/mcpscope/mcpscope/internal/contracts"
	"github.com/mcpscope/mcpscope/internal/errors"
)

// DefaultShutdownTimeout bounds graceful API server shutdown.
const DefaultShutdownTimeout = 10 * time.Second

// Server manages the HTTP status API.
// NewServer should be used to create instances of Server.
type Server struct {
	logger     hclog.Logger
	aggregator contracts.EntryAggregator
	prober     contracts.HealthProber
	addr       string
	cors       config.CORSSettings

	shutdownTimeout time.Duration
}

// NewServer creates a status API server over the aggregator and probe engine.
func NewServer(
	logger hclog.Logger,
	aggregator contracts.EntryAggregator,
	prober contracts.HealthProber,
	settings config.APISettings,
) (*Server, error) {
	if aggregator == nil {
		return nil, fmt.Errorf("aggregator cannot be nil")
	}
	if prober == nil {
		return nil, fmt.Errorf("prober cannot be nil")
	}

	addr := strings.TrimSpace(settings.Addr)
	if addr == "" {
		addr = config.DefaultAPIAddr
	}

	return &Server{
		logger:          logger.Named("api"),
		aggregator:      aggregator,
		prober:          prober,
		addr:            addr,
		cors:            settings.CORS,
		shutdownTimeout: DefaultShutdownTimeout,
	}, nil
}

// Start starts the API server and blocks until the context is canceled or an
// error occurs.
func (s *Server) Start(ctx context.Context) error {
	mux := chi.NewMux()
	mux.Use(middleware.StripSlashes)

	if s.cors.Enable {
		s.applyCORS(mux)
	}

	humaConfig := huma.DefaultConfig("mcpscope status API", internalcmd.Version())
	router := humachi.New(mux, humaConfig)

	huma.NewErrorWithContext = errorHandler(s.logger)

	apiPathPrefix, err := url.JoinPath("/api", "v1")
	if err != nil {
		return err
	}

	v1 := huma.NewGroup(router, apiPathPrefix)
	RegisterServerRoutes(v1, s.aggregator, s.prober, "/servers")
	RegisterHealthRoutes(v1, s.aggregator, s.prober, "/health")

	srv := &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("Starting status API server", "address", s.addr, "prefix", apiPathPrefix)
		if err := srv.ListenAndServe(); err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		s.logger.Info("Shutting down status API server...")
		_ = srv.Shutdown(shutdownCtx)
		s.logger.Info("Shutdown complete")
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// applyCORS applies CORS middleware to the router based on the configured settings.
func (s *Server) applyCORS(mux *chi.Mux) {
	s.logger.Info("Enabling CORS", "origins", s.cors.Origins)

	corsOptions := cors.Options{
		AllowedOrigins: s.cors.Origins,
		AllowedMethods: s.cors.Methods,
		AllowedHeaders: s.cors.Headers,
	}

	for i, origin := range corsOptions.AllowedOrigins {
		if origin == "*" {
			corsOptions.AllowedOrigins = []string{"*"}
			break
		}
		corsOptions.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	mux.Use(cors.Handler(corsOptions))
}

// mapError maps application domain errors to appropriate HTTP status codes.
// Errors defined in internal/errors without an explicit case here fall
// through to HTTP 500.
func mapError(logger hclog.Logger, err error) huma.StatusError {
	switch {
	case stdErrors.Is(err, errors.ErrEntryNotFound):
		return huma.Error404NotFound(err.Error())
	case stdErrors.Is(err, errors.ErrHealthNotTracked):
		return huma.Error404NotFound(err.Error())
	case stdErrors.Is(err, errors.ErrAmbiguousEntry):
		return huma.Error400BadRequest(err.Error())
	default:
		logger.Error("Unexpected API error", "error", err)
		return huma.Error500InternalServerError("Internal server error", err)
	}
}

// errorHandler wraps mapError so domain errors surfacing from handlers are
// translated consistently, while huma-originated errors keep their status.
func errorHandler(logger hclog.Logger) func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
	return func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
		for _, err := range errs {
			if mapped := mapError(logger, err); mapped.GetStatus() != http.StatusInternalServerError {
				return mapped
			}
		}
		return huma.NewError(status, msg, errs...)
	}
}
