// Package server implements the development server: pages are rendered from
// their Markdown source on every request, so edits show up on reload.
package server

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	mdsite "github.com/alnah/go-mdsite"
)

// Site is the part of *mdsite.Site the server needs.
type Site interface {
	PostPage(ctx context.Context, source string) ([]byte, *mdsite.Post, error)
	SourceFor(pagePath string) (string, error)
	IndexPageHTML(ctx context.Context, n int) ([]byte, error)
	Style() string
	ReloadSyntaxes() error
	SyntaxesDir() string
}

var _ Site = (*mdsite.Site)(nil)

// HTTP server timeouts.
const (
	readTimeout     = 30 * time.Second
	writeTimeout    = 120 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Server serves a site over HTTP.
type Server struct {
	router chi.Router
	site   Site
	log    *slog.Logger
}

// New creates a Server for site.
func New(site Site, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{site: site, log: log}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(s.log))
	r.Use(middleware.GetHead)

	r.Get("/", s.handleIndex)
	r.Get("/style.css", s.handleStyle)
	r.Get("/*", s.handlePage)

	s.router = r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writeIndex(w, r, 1)
}

func (s *Server) handleStyle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write([]byte(s.site.Style()))
}

// handlePage serves index pages (index.html, page-N.html) at the root and
// rendered posts everywhere else.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	pagePath := chi.URLParam(r, "*")

	if !strings.Contains(pagePath, "/") {
		if n, ok := mdsite.ParsePageName(pagePath); ok {
			s.writeIndex(w, r, n)
			return
		}
	}

	source, err := s.site.SourceFor(pagePath)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	page, _, err := s.site.PostPage(r.Context(), source)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeHTML(w, page)
}

func (s *Server) writeIndex(w http.ResponseWriter, r *http.Request, n int) {
	page, err := s.site.IndexPageHTML(r.Context(), n)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeHTML(w, page)
}

// writeError maps a render error to a status: 404 for pages that do not
// exist, 500 with the error text for pages that fail to render.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, mdsite.ErrPageNotFound) || errors.Is(err, fs.ErrNotExist) {
		http.NotFound(w, r)
		return
	}
	s.log.Error("couldn't render page", "path", r.URL.Path, "error", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeHTML(w http.ResponseWriter, page []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
// A listener failure also stops the shutdown goroutine before returning.
func Serve(ctx context.Context, addr string, handler http.Handler, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown incomplete", "error", err)
		}
	}()

	log.Info("serving site", "addr", "http://"+addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		cancel()
		<-done
		return err
	}
	<-done
	return nil
}

// Run serves site on addr and reloads its syntax set when the syntaxes
// directory changes. It returns when ctx is done or the listener fails.
func Run(ctx context.Context, site Site, addr string, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	watcher, err := NewWatcher(site, log)
	if err != nil {
		log.Warn("syntax reloading disabled", "error", err)
	} else {
		defer watcher.Close()
		go watcher.Run(ctx)
	}

	return Serve(ctx, addr, New(site, log), log)
}
