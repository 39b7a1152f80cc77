// Package server exposes the import entry points over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/recipepipe/core/importer"
)

const (
	// RequestTimeout bounds one request end to end.
	RequestTimeout = 30 * time.Second
	// MaxBodyBytes bounds request bodies; base64 photos are the largest.
	MaxBodyBytes = 10 << 20

	shutdownTimeout = 10 * time.Second
)

// Server serves the import API.
type Server struct {
	importer *importer.Importer
	log      *zap.Logger
}

// New creates a Server around im. A nil logger disables logging.
func New(im *importer.Importer, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{importer: im, log: log}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(RequestTimeout))
	r.Use(middleware.RequestSize(MaxBodyBytes))

	r.Route("/api", func(r chi.Router) {
		r.Use(corsMiddleware)

		r.Options("/*", func(w http.ResponseWriter, r *http.Request) {})
		r.Get("/health", s.handleHealth)
		r.Post("/import", s.handleImport)
		r.Post("/parse-recipe", s.handleParseRecipe)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server: listening", zap.String("addr", addr), zap.Bool("ai", s.importer.AIEnabled()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listening on %s: %w", addr, err)
	case <-ctx.Done():
		s.log.Info("server: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}
