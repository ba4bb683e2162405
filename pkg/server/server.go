// Package server hosts a built catalog over HTTP.
//
// Every response body is computed once in [New]; handlers only copy bytes.
// Selection is handled by the page script using the per-node views in the
// payload, so the server never computes highlight state per request.
//
// Routes:
//
//	GET /                  the interactive page
//	GET /graph.json        the page payload (nodes, links, views)
//	GET /rpg_systems.json  the records as loaded
//	GET /healthz           liveness probe
//	GET /metrics           Prometheus metrics
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/rpgmap/pkg/catalog"
	errs "github.com/matzehuels/rpgmap/pkg/errors"
	"github.com/matzehuels/rpgmap/pkg/graph"
	"github.com/matzehuels/rpgmap/pkg/observability/prom"
	"github.com/matzehuels/rpgmap/pkg/render/web"
)

// shutdownTimeout bounds how long Run waits for in-flight requests.
const shutdownTimeout = 5 * time.Second

// Options configures a [Server].
type Options struct {
	// Title is the page title. Empty uses the web default.
	Title string
	// HTML is a prerendered page. When nil the page is rendered in New.
	HTML []byte
	// Metrics instruments requests when set.
	Metrics *prom.Metrics
	// Gatherer backs /metrics. Nil uses the default Prometheus gatherer.
	Gatherer prometheus.Gatherer
	// Logger receives request logs. Nil discards them.
	Logger *log.Logger
}

// Server serves one catalog.
type Server struct {
	handler http.Handler
	logger  *log.Logger

	page    []byte
	payload []byte
	records []byte
}

// New precomputes every response for g and the records it was built from.
func New(records []catalog.Record, g *graph.Graph, opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{logger: logger, page: opts.HTML}
	if s.page == nil {
		page, err := web.RenderHTML(g, web.Options{Title: opts.Title})
		if err != nil {
			return nil, err
		}
		s.page = page
	}

	payload := web.Payload(g)
	if opts.Title != "" {
		payload.Title = opts.Title
	}
	var err error
	if s.payload, err = json.Marshal(payload); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode payload")
	}
	if records == nil {
		records = []catalog.Record{}
	}
	if s.records, err = json.MarshalIndent(records, "", "  "); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode records")
	}

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	s.handler = s.routes(opts.Metrics, gatherer)
	return s, nil
}

func (s *Server) routes(m *prom.Metrics, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	if m != nil {
		r.Use(m.Middleware)
	}

	r.Get("/", s.serveBytes("text/html; charset=utf-8", s.page))
	r.Get("/graph.json", s.serveBytes("application/json", s.payload))
	r.Get("/rpg_systems.json", s.serveBytes("application/json", s.records))
	r.Get("/healthz", healthz)
	r.Method(http.MethodGet, "/metrics", prom.Handler(gatherer))

	return r
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errs.Wrap(errs.ErrCodeNetwork, err, "listen on %s", addr)
	}
	return s.Serve(ctx, ln)
}

// Serve is like Run but accepts an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) serveBytes(contentType string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(body)
	}
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// requestLogger logs one line per request.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
				"remote", r.RemoteAddr)
		})
	}
}
