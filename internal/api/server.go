// Package api serves roadmap renders over HTTP.
//
//	GET  /healthz                      liveness and build info
//	POST /render?format=svg            render the request body
//	GET  /roadmaps                     names in the configured store
//	GET  /roadmaps/{name}              render a stored roadmap as SVG
//	GET  /roadmaps/{name}.{format}     ... in another format
//
// Every request gets an X-Request-ID and a request-scoped logger.
package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/highweigh/pkg/pipeline"
	"github.com/matzehuels/highweigh/pkg/source"
)

// maxBodySize bounds POST /render bodies.
const maxBodySize = 8 << 20

// Server renders roadmaps on request.
type Server struct {
	runner *pipeline.Runner
	store  source.Store
	logger *log.Logger
	router chi.Router
	// Stylesheet, when set, replaces the embedded CSS in SVG responses.
	Stylesheet string
}

// New returns a server rendering through runner. store may be nil, in which
// case the /roadmaps endpoints answer 404.
func New(runner *pipeline.Runner, store source.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, store: store, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/render", s.handleRender)
	r.Route("/roadmaps", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Get("/{name}", s.handleStored)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
