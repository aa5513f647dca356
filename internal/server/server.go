// Package server exposes the upload and data endpoints over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/imts-dashboard/imts-go/internal/config"
	"github.com/imts-dashboard/imts-go/internal/storage"
	"github.com/imts-dashboard/imts-go/pkg/imts/layout"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// multipartSlack is allowed on top of the file limit for form overhead.
const multipartSlack = 1 << 20

// Server handles dataset uploads and serves the generated document.
type Server struct {
	cfg      *config.Config
	layout   layout.Layout
	store    *storage.LocalStore
	log      zerolog.Logger
	maxBytes int64
	now      func() time.Time

	// mu serializes store, promote and extract across uploads.
	mu     sync.Mutex
	router *chi.Mux
}

// Option configures a Server.
type Option func(*Server)

// WithClock sets the clock shared by upload naming and document metadata.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a server and registers its routes.
func New(cfg *config.Config, l layout.Layout, logger zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		layout:   l,
		log:      logger,
		maxBytes: cfg.Server.MaxUploadBytes(),
		now:      time.Now,
		router:   chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.store = storage.NewLocalStore(cfg.Paths.UploadsDir, cfg.Paths.DataDir, s.maxBytes, storage.WithClock(s.now))
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(hlog.NewHandler(s.log))
	s.router.Use(hlog.RequestIDHandler("req_id", "Request-Id"))
	s.router.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/upload", s.handleUpload)
	s.router.Get("/api/data-info", s.handleDataInfo)
	s.router.Get("/api/uploads", s.handleUploads)
	s.router.Get("/data.json", s.handleDataFile)

	if s.cfg.Server.StaticDir != "" {
		s.router.Handle("/*", spaHandler(s.cfg.Server.StaticDir))
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on the configured port until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Server.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", srv.Addr).Msgf("upload server running on http://localhost:%s", s.cfg.Server.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		grace := time.Duration(s.cfg.Server.ShutdownGrace) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		s.log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
