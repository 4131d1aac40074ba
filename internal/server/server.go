// Package server serves the generated site over HTTP for preview and daemon
// mode, plus small operational endpoints (health, status, metrics).
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/blogforge/internal/config"
	bferrors "git.home.luguber.info/inful/blogforge/internal/errors"
	"git.home.luguber.info/inful/blogforge/internal/logfields"
)

// StatusProvider supplies the payload for the /status endpoint.
type StatusProvider interface {
	Status() any
}

// Option configures optional server behavior.
type Option func(*Server)

// WithStatusProvider attaches a /status payload source.
func WithStatusProvider(p StatusProvider) Option {
	return func(s *Server) { s.status = p }
}

// WithMetrics exposes the given prometheus gatherer on path (default "/metrics").
func WithMetrics(g prometheus.Gatherer, path string) Option {
	return func(s *Server) {
		if path == "" {
			path = "/metrics"
		}
		s.metricsPath = path
		s.metricsHandler = promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	}
}

// Server serves the generated output directory under the site's base path.
type Server struct {
	addr string
	dir  string
	site config.ResolvedSite

	status         StatusProvider
	metricsPath    string
	metricsHandler http.Handler

	ln  net.Listener
	srv *http.Server
}

// New creates a preview server for the output directory dir.
func New(addr, dir string, site config.ResolvedSite, opts ...Option) *Server {
	s := &Server{addr: addr, dir: dir, site: site}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start binds the listen address and begins serving. Binding happens before
// the goroutine starts so an occupied port fails fast at the call site.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return bferrors.NewDaemonError("bind preview listen address "+s.addr, err)
	}
	s.ln = ln
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Preview server terminated", logfields.Error(err))
		}
	}()
	slog.Info("Preview server listening",
		slog.String("addr", s.Addr()),
		logfields.URL("http://"+s.Addr()+s.site.BasePath))
	return nil
}

// Addr returns the bound listen address (useful with ":0").
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.addr
	}
	return s.ln.Addr().String()
}

// Shutdown drains in-flight requests and closes the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// Handler builds the request mux: operational endpoints first, then the site
// file tree mounted under the resolved base path.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/status", s.handleStatus)
	if s.metricsHandler != nil {
		mux.Handle(s.metricsPath, s.metricsHandler)
	}

	files := http.FileServer(http.Dir(s.dir))
	base := s.site.BasePath
	if base == "/" {
		mux.Handle("/", files)
		return s.logRequests(mux)
	}
	// Site lives under a non-root base. Redirect the bare root there so the
	// preview matches what a deploy under the production prefix serves.
	mux.Handle(base, http.StripPrefix(strings.TrimSuffix(base, "/"), files))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, base, http.StatusTemporaryRedirect)
			return
		}
		http.NotFound(w, r)
	})
	return s.logRequests(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	payload := any(map[string]string{"status": "serving"})
	if s.status != nil {
		payload = s.status.Status()
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("Failed to encode status payload", logfields.Error(err))
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t0 := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("Request served",
			slog.String("method", r.Method),
			logfields.Path(r.URL.Path),
			logfields.DurationMS(float64(time.Since(t0).Microseconds())/1000))
	})
}
