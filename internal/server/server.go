package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dvega-dev/bibliago/internal/app"
	"github.com/dvega-dev/bibliago/internal/utils"
)

// Server exposes the cache layer's operations as a local JSON API for a
// front end. It owns no state of its own; everything goes through the
// orchestrator.
type Server struct {
	orch   *app.Orchestrator
	logger *utils.Logger
	addr   string
}

// NewServer creates a server around an orchestrator
func NewServer(orch *app.Orchestrator, addr string, logger *utils.Logger) *Server {
	return &Server{
		orch:   orch,
		logger: logger.WithComponent("server"),
		addr:   addr,
	}
}

// Routes builds the router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/versions", s.handleVersions)
		r.Get("/books", s.handleBooks)
		r.Get("/chapter/{book}/{chapter}", s.handleChapter)

		r.Post("/versions/{id}/download", s.handleDownload)
		r.Delete("/versions/{id}", s.handleDelete)
		r.Get("/versions/{id}/downloaded", s.handleDownloaded)

		r.Get("/highlights", s.handleAllHighlights)
		r.Get("/highlights/book/{book}", s.handleBookHighlights)
		r.Get("/highlights/verse", s.handleVerseHighlight)
		r.Put("/highlights", s.handleSaveHighlight)
		r.Delete("/highlights", s.handleRemoveHighlight)

		r.Get("/concordance", s.handleConcordance)
		r.Get("/compare", s.handleCompare)
	})

	return r
}

// Start runs the server until the context is canceled
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("API server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
