package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/klauspost/compress/gzhttp"

	"github.com/spektr-org/vizdeck/internal/config"
)

// ============================================================================
// HTTP SERVER: Upload a file, get charts back
// ============================================================================
// Every POST endpoint takes a multipart form with the file under "file".
// Nothing is kept between requests: each upload is parsed, rendered and
// dropped.
// ============================================================================

// Server serves the chart API.
type Server struct {
	cfg    *config.Config
	router chi.Router
}

// New builds the router with middleware and routes registered.
func New(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// PNG is already compressed; only JSON and SVG bodies are gzipped.
	gzip, err := gzhttp.NewWrapper(
		gzhttp.ContentTypes([]string{"application/json", "image/svg+xml"}),
	)
	if err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Chart-Title", "X-Artifact-ID"},
		MaxAge:         300,
	}))

	r.Use(func(next http.Handler) http.Handler { return gzip(next) })

	s.registerRoutes(r)
	s.router = r
	return s, nil
}

func (s *Server) registerRoutes(r chi.Router) {
	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/kinds", s.handleKinds)
		r.Post("/classify", s.handleClassify)
		r.Post("/preview", s.handlePreview)
		r.Post("/chart", s.handleChart)
		r.Post("/dashboard", s.handleDashboard)
	})
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs until ctx is cancelled, then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 vizdeck: listening on %s", s.cfg.Server.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("🛑 vizdeck: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.RequestTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
