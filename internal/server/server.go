// Package server exposes the analysis engine over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openeyemedia/climate-api/internal/model"
	"github.com/openeyemedia/climate-api/internal/resolver"
)

// Analyzer runs climate analyses. Implemented by analysis.Orchestrator.
type Analyzer interface {
	Analyze(ctx context.Context, q resolver.Query) (*model.Analysis, error)
	Compare(ctx context.Context, current, target resolver.Query) (*model.Comparison, error)
}

// Searcher geocodes free-text names for autocomplete. Implemented by
// resolver.Resolver.
type Searcher interface {
	Search(ctx context.Context, name string, limit int) ([]model.Location, error)
}

// Server holds the HTTP handler dependencies.
type Server struct {
	analyzer Analyzer
	searcher Searcher
}

// New builds the HTTP router.
func New(analyzer Analyzer, searcher Searcher, allowedOrigins []string) http.Handler {
	s := &Server{analyzer: analyzer, searcher: searcher}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/climate", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/compare", s.handleCompare)
		r.Get("/search", s.handleSearch)
		r.Get("/health", s.handleHealth)
	})

	return r
}

type ctxKey string

const requestIDKey ctxKey = "request_id"

// requestID tags each request with a UUID, echoed in the X-Request-ID
// header and attached to log entries.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		id, _ := r.Context().Value(requestIDKey).(string)
		zap.L().Info("http request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
