// Package serve runs the local development server: it builds the site into a
// scratch directory, serves it over HTTP, and rebuilds when the docs or the
// configuration change on disk.
package serve

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dgallion1/docsite/internal/config"
	"github.com/dgallion1/docsite/internal/site"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the development HTTP server.
type Server struct {
	cfg    *config.Config
	log    *slog.Logger
	router chi.Router
	state  *buildState

	// ConfigPath enables configuration reloads when the file changes.
	// Empty when the configuration was constructed in memory.
	ConfigPath string
	// NoWatch disables the filesystem watcher; the site is built once.
	NoWatch bool

	// scratchRoot holds the build output directories. siteDir points at
	// the latest successful build and swaps only when a rebuild succeeds,
	// so a failed rebuild keeps the previous output serving. mu guards
	// siteDir against the watcher goroutine publishing mid-request.
	scratchRoot string
	mu          sync.Mutex
	siteDir     string
}

// NewServer creates and configures the development server.
func NewServer(cfg *config.Config, log *slog.Logger) *Server {
	s := &Server{
		cfg:   cfg,
		log:   log,
		state: &buildState{},
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(noStore)

	r.Get("/-/health", s.handleHealth)
	r.Get("/*", s.serveSite)
	r.Head("/*", s.serveSite)

	s.router = r
}

// Run builds the site, starts watching for changes, and serves until ctx is
// canceled. The initial build must succeed; later rebuild failures keep the
// previous output and are reported on /-/health.
func (s *Server) Run(ctx context.Context) error {
	if err := s.prepare(ctx); err != nil {
		return fmt.Errorf("initial build: %w", err)
	}
	defer s.Close()

	if !s.NoWatch {
		watcher, err := s.startWatcher(ctx)
		if err != nil {
			s.log.Warn("file watching disabled", "error", err)
		} else {
			defer watcher.Close()
		}
	}

	httpServer := &http.Server{
		Addr:         s.cfg.DevAddr,
		Handler:      s,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	s.log.Info("serving docs", "url", "http://"+s.cfg.DevAddr+"/", "dir", s.serveDir())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// prepare creates the scratch root and runs the initial build.
func (s *Server) prepare(ctx context.Context) error {
	root, err := os.MkdirTemp("", "docsite-serve-*")
	if err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	s.scratchRoot = root
	return s.rebuild(ctx, false)
}

// Close removes the scratch root and every build under it.
func (s *Server) Close() error {
	if s.scratchRoot == "" {
		return nil
	}
	return os.RemoveAll(s.scratchRoot)
}

// rebuild runs a full build into a fresh scratch subdirectory, optionally
// reloading the configuration from disk first. The new output is published
// only when the build succeeds; a failed build leaves the previous output
// serving. Only the watcher goroutine calls this after startup.
func (s *Server) rebuild(ctx context.Context, reloadConfig bool) error {
	s.state.begin()

	if reloadConfig && s.ConfigPath != "" {
		fresh, err := config.Load(s.ConfigPath)
		if err != nil {
			s.log.Error("config reload failed", "error", err)
			s.state.finish(nil, err)
			return err
		}
		s.cfg = fresh
	}

	out, err := os.MkdirTemp(s.scratchRoot, "build-*")
	if err != nil {
		err = fmt.Errorf("create build dir: %w", err)
		s.state.finish(nil, err)
		return err
	}

	build := *s.cfg
	build.SiteDir = out
	sum, err := site.NewBuilder(&build, s.log).Build(ctx)
	s.state.finish(sum, err)
	if err != nil {
		os.RemoveAll(out)
		return err
	}

	s.mu.Lock()
	old := s.siteDir
	s.siteDir = out
	s.mu.Unlock()
	if old != "" {
		os.RemoveAll(old)
	}
	return nil
}

// serveDir is the output directory of the last successful build, empty
// before the first one.
func (s *Server) serveDir() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.siteDir
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.state.snapshot())
}

// serveSite serves files from the last successful build. Directory requests
// only resolve when the build produced an index page; there is no listing.
func (s *Server) serveSite(w http.ResponseWriter, r *http.Request) {
	dir := s.serveDir()
	if dir == "" {
		jsonError(w, "site not built yet", http.StatusServiceUnavailable)
		return
	}
	if strings.HasSuffix(r.URL.Path, "/") {
		// Rooted clean, so traversal segments cannot survive.
		rel := path.Clean(r.URL.Path)
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel), "index.html")); err != nil {
			http.NotFound(w, r)
			return
		}
	}
	http.FileServer(http.Dir(dir)).ServeHTTP(w, r)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
