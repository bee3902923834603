// Package apiserver implements the bite REST API consumed by the admin
// client.
package apiserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/bite-admin/bite/pkg/model"
	"github.com/bite-admin/bite/pkg/observability"
	"github.com/bite-admin/bite/pkg/store"
)

// ServerOptions holds optional configuration for the Server.
type ServerOptions struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// AllowedOrigins lists the origins allowed for CORS. Empty allows any
	// origin, which is what a locally served admin UI needs.
	AllowedOrigins []string
	// Version is reported by GET /api/version.
	Version string
	Logger  *slog.Logger
}

// DefaultServerOptions returns sensible defaults.
func DefaultServerOptions() ServerOptions {
	return ServerOptions{
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		Version:      "dev",
	}
}

// Server is the bite HTTP API server.
type Server struct {
	httpServer *http.Server
	store      store.Store
	metrics    *observability.Metrics
	logger     *slog.Logger
	mux        *http.ServeMux
	opts       ServerOptions

	customers *resource[model.Customer]
	products  *resource[model.Product]
}

// NewServer creates a Server wired to the given Store.
func NewServer(s store.Store, opts ServerOptions) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	srv := &Server{
		store:   s,
		metrics: observability.NewMetrics(),
		logger:  logger,
		mux:     http.NewServeMux(),
		opts:    opts,
	}
	srv.customers = &resource[model.Customer]{
		records:  s.Customers(),
		match:    model.MatchCustomer,
		validate: model.ValidateCustomer,
		setID:    func(c *model.Customer, id string) { c.ID = id },
		metrics:  srv.metrics,
	}
	srv.products = &resource[model.Product]{
		records:  s.Products(),
		match:    model.MatchProduct,
		validate: model.ValidateProduct,
		setID:    func(p *model.Product, id string) { p.ID = id },
		metrics:  srv.metrics,
	}
	srv.registerRoutes()
	srv.httpServer = &http.Server{
		Handler:      srv.applyMiddleware(srv.mux),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  opts.IdleTimeout,
	}
	return srv
}

// SyncRecordGauges sets the record gauges from the store contents. Call it
// once after start-up when the store may already hold data.
func (s *Server) SyncRecordGauges(ctx context.Context) error {
	customers, err := s.store.Customers().List(ctx)
	if err != nil {
		return err
	}
	products, err := s.store.Products().List(ctx)
	if err != nil {
		return err
	}
	s.metrics.SetRecords("customer", len(customers))
	s.metrics.SetRecords("product", len(products))
	return nil
}

// ListenAndServe starts the HTTP server on the given address. It returns nil
// after a graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	s.httpServer.Addr = addr
	s.logger.Info("bite API server listening", "addr", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// GracefulShutdown performs a graceful shutdown of the HTTP server.
func (s *Server) GracefulShutdown(ctx context.Context) error {
	s.logger.Info("bite API server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the root http.Handler (useful for testing with httptest).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Metrics returns the server's metrics.
func (s *Server) Metrics() *observability.Metrics {
	return s.metrics
}
