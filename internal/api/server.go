// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/isyuricunha/website-sub003/internal/common"
	"github.com/isyuricunha/website-sub003/internal/content"
	"github.com/isyuricunha/website-sub003/internal/siteindex"
)

// Config controls locale handling for the API server.
type Config struct {
	Locales       []string
	DefaultLocale string
}

// DefaultConfig returns the site's standard locale configuration.
func DefaultConfig() Config {
	return Config{
		Locales:       content.DefaultLocales,
		DefaultLocale: "en",
	}
}

// Merge overlays non-empty fields from the override onto the base
// configuration.
func (c Config) Merge(override Config) Config {
	result := c
	if len(override.Locales) > 0 {
		result.Locales = append([]string(nil), override.Locales...)
	}
	if strings.TrimSpace(override.DefaultLocale) != "" {
		result.DefaultLocale = strings.TrimSpace(override.DefaultLocale)
	}
	return result
}

// Server exposes the context-preparation surface consumed by the external
// chat layer. It holds no catalog state itself: every request takes a fresh
// snapshot from the provider so the index, page context, and citations within
// one request always agree.
type Server struct {
	router   chi.Router
	provider content.Provider
	resolve  content.PathResolver
	config   Config
}

// NewServer wires the provider and locale configuration into a server.
func NewServer(provider content.Provider, cfg *Config) (*Server, error) {
	logger := common.Logger()
	if provider == nil {
		return nil, errors.New("content provider required")
	}
	configuration := DefaultConfig()
	if cfg != nil {
		configuration = configuration.Merge(*cfg)
	}
	srv := &Server{
		router:   chi.NewRouter(),
		provider: provider,
		resolve:  content.LocalePaths(),
		config:   configuration,
	}
	srv.routes()
	logger.Info("api: server ready", "locales", strings.Join(configuration.Locales, ","), "default_locale", configuration.DefaultLocale)
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Get("/v1/index", s.handleIndex)
	s.router.Get("/v1/context", s.handleContext)
	s.router.Post("/v1/citations", s.handleCitations)
	s.router.Post("/v1/recommendations/posts", s.handleRecommendPosts)
	s.router.Post("/v1/recommendations/snippets", s.handleRecommendSnippets)
	s.router.Post("/v1/answers/navigation", s.handleNavigationAnswer)
	s.router.Post("/v1/answers/posts", s.handlePostRecommendationAnswer)
	s.router.Post("/v1/chat/context", s.handleChatContext)
	s.router.Get("/v1/logs", s.handleLogs)
}

// snapshot loads a catalog snapshot and scopes an index over it. The same
// snapshot backs every lookup within the request.
func (s *Server) snapshot(r *http.Request) (content.Catalog, *siteindex.Index, error) {
	catalog, err := s.provider.Snapshot(r.Context())
	if err != nil {
		return content.Catalog{}, nil, err
	}
	return catalog, siteindex.New(catalog, s.config.Locales, s.resolve), nil
}

// locale falls back to the configured default when the request omits one.
func (s *Server) locale(requested string) string {
	trimmed := strings.TrimSpace(requested)
	if trimmed == "" {
		return s.config.DefaultLocale
	}
	return trimmed
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
