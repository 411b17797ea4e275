package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rgtlai/ai-newsletter/feed"
	"github.com/rgtlai/ai-newsletter/pipeline"
	"github.com/rgtlai/ai-newsletter/scraper"
)

// Server exposes the newsletter pipeline over HTTP.
type Server struct {
	router        *chi.Mux
	port          int
	pipeline      *pipeline.Pipeline
	fetcher       *feed.Fetcher
	scraper       *scraper.Scraper
	allowedOrigin string
}

// Option configures a Server.
type Option func(*Server)

// WithAllowedOrigin adds a CORS origin on top of the localhost dev origins.
func WithAllowedOrigin(origin string) Option {
	return func(s *Server) {
		s.allowedOrigin = origin
	}
}

// NewServer wires the router. The pipeline handles all LLM work; the
// fetcher and scraper serve the aggregation endpoints directly.
func NewServer(port int, p *pipeline.Pipeline, f *feed.Fetcher, sc *scraper.Scraper, opts ...Option) *Server {
	s := &Server{
		port:     port,
		pipeline: p,
		fetcher:  f,
		scraper:  sc,
	}
	for _, opt := range opts {
		opt(s)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if s.allowedOrigin != "" {
		origins = append(origins, s.allowedOrigin)
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	router.Get("/", s.health)
	router.Get("/defaults", s.defaults)
	router.Post("/aggregate", s.aggregate)
	router.Post("/scrape", s.scrape)
	router.Post("/summaries", s.summaries)
	router.Post("/summaries_selected", s.summariesSelected)
	router.Post("/highlights", s.weeklySummary)
	router.Post("/tweets", s.tweets)
	router.Post("/newsletter", s.newsletter)
	router.Post("/edit", s.edit)
	router.Post("/edit_tweet", s.editTweet)
	router.Post("/download_html", s.downloadHTML)

	s.router = router
	return s
}

// Handler returns the underlying router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("API server starting", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, pipeline.ErrValidation) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"detail": err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		return false
	}
	return true
}

func clamp(v, lo, hi, fallback int) int {
	if v == 0 {
		return fallback
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
