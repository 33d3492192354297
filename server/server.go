package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/eventscope/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/source_store.go -pkg mocks -skip-ensure -fmt goimports . SourceStore
//go:generate moq -out mocks/pending_store.go -pkg mocks -skip-ensure -fmt goimports . PendingStore
//go:generate moq -out mocks/scraper.go -pkg mocks -skip-ensure -fmt goimports . Scraper

// userHeader carries the caller's user ID, set by the auth layer in front of the server
const userHeader = "X-User-ID"

// Server represents HTTP server instance
type Server struct {
	config  ConfigProvider
	sources SourceStore
	pending PendingStore
	scraper Scraper
	metrics http.Handler
	version string
	debug   bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// SourceStore manages monitored sources
type SourceStore interface {
	CreateSource(ctx context.Context, src *domain.Source) error
	GetSource(ctx context.Context, id int64) (*domain.Source, error)
	ListSources(ctx context.Context, userID int64) ([]domain.Source, error)
	UpdateSource(ctx context.Context, id int64, upd domain.SourceUpdate) error
	SetSourceActive(ctx context.Context, id int64, active bool) error
	DeleteSource(ctx context.Context, id int64) error
}

// PendingStore manages the moderation queue
type PendingStore interface {
	GetPending(ctx context.Context, id int64) (*domain.PendingEvent, error)
	ListPending(ctx context.Context, filter domain.PendingFilter) ([]domain.PendingEvent, error)
	UpdatePending(ctx context.Context, id int64, upd domain.PendingUpdate) error
	RejectPending(ctx context.Context, id int64) error
	ApprovePending(ctx context.Context, id int64) (*domain.Event, error)
}

// Scraper runs an interactive scrape cycle
type Scraper interface {
	RunInteractive(ctx context.Context, src *domain.Source, userID int64, onProgress domain.ProgressFunc) domain.ScrapeResult
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// Params defines server dependencies. Metrics is optional, /metrics is not routed without it.
type Params struct {
	Config  ConfigProvider
	Sources SourceStore
	Pending PendingStore
	Scraper Scraper
	Metrics http.Handler
	Version string
	Debug   bool
}

// New initializes a new server instance
func New(params Params) *Server {
	s := &Server{
		config:  params.Config,
		sources: params.Sources,
		pending: params.Pending,
		scraper: params.Scraper,
		metrics: params.Metrics,
		version: params.Version,
		debug:   params.Debug,
		router:  routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		// no write timeout, scrape streams stay open for the whole cycle
		IdleTimeout: 2 * timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("eventscope", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("GET /sources", s.listSourcesHandler)
		r.HandleFunc("POST /sources", s.createSourceHandler)
		r.HandleFunc("GET /sources/{id}", s.getSourceHandler)
		r.HandleFunc("PUT /sources/{id}", s.updateSourceHandler)
		r.HandleFunc("DELETE /sources/{id}", s.deleteSourceHandler)
		r.HandleFunc("POST /sources/{id}/enable", s.enableSourceHandler)
		r.HandleFunc("POST /sources/{id}/disable", s.disableSourceHandler)
		r.HandleFunc("GET /sources/{id}/scrape", s.scrapeSourceHandler)

		r.HandleFunc("GET /pending", s.listPendingHandler)
		r.HandleFunc("GET /pending/{id}", s.getPendingHandler)
		r.HandleFunc("PUT /pending/{id}", s.updatePendingHandler)
		r.HandleFunc("POST /pending/{id}/approve", s.approvePendingHandler)
		r.HandleFunc("POST /pending/{id}/reject", s.rejectPendingHandler)
	})

	if s.metrics != nil {
		s.router.Handle("GET /metrics", s.metrics)
	}
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// pathID parses the {id} path value
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID %q", r.PathValue("id"))
	}
	return id, nil
}

// requestUser returns the caller's user ID, zero if the header is absent
func requestUser(r *http.Request) (int64, error) {
	val := r.Header.Get(userHeader)
	if val == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s header", userHeader)
	}
	return id, nil
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
