package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/custodia-labs/leasefill/internal/core/domain"
	"github.com/custodia-labs/leasefill/internal/core/ports/driving"
	"github.com/custodia-labs/leasefill/internal/logger"
)

// ServiceName identifies the service in health and docs responses.
const ServiceName = "Gerador de Contratos Casa da Ana"

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

const shutdownTimeout = 10 * time.Second

// Config holds what the HTTP surface reports about itself.
type Config struct {
	// Version is reported by /health and /api-docs.
	Version string

	// Settings are the resolved application settings.
	Settings domain.AppSettings
}

// Server serves the contract pipeline over HTTP.
type Server struct {
	cfg       Config
	contracts driving.ContractService
	log       *logger.Logger

	schemaDoc map[string]any
	validator *jsonschema.Schema

	// fileExists reports whether the template is present.
	fileExists func(string) bool
}

// NewServer creates a server for the given pipeline.
func NewServer(cfg Config, contracts driving.ContractService, log *logger.Logger) (*Server, error) {
	doc := requestSchema(contracts.Schema())
	validator, err := compileSchema(doc)
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:        cfg,
		contracts:  contracts,
		log:        log,
		schemaDoc:  doc,
		validator:  validator,
		fileExists: fileExists,
	}, nil
}

// Handler returns the routed handler with panic recovery and request IDs.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/generate-contract", s.handleGenerate)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/config", s.handleConfig)
	mux.HandleFunc("/api-docs", s.handleDocs)
	mux.HandleFunc("/", s.handleNotFound)
	return s.withRequestID(s.withRecovery(mux))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Listening on %s", listener.Addr())
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		s.log.Debug("%s %s [%s]", r.Method, r.URL.Path, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.log.Error("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				s.respondError(w, http.StatusInternalServerError, errorResponse{
					Error: msgInternal,
					Kind:  string(domain.KindInternal),
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
