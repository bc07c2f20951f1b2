package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	v1 "github.com/Xunop/biblioteca/internal/api/v1"
	"github.com/Xunop/biblioteca/internal/config"
	"github.com/Xunop/biblioteca/internal/log"
	"github.com/Xunop/biblioteca/internal/middleware"
	"github.com/Xunop/biblioteca/internal/store"
	"github.com/Xunop/biblioteca/internal/version"
)

type Server struct {
	httpServer *http.Server
	opts       *config.Options
	// stops the background work of the middlewares
	cancel context.CancelFunc
}

// NewServer wires the routes and middlewares of the service, it does not
// listen yet.
func NewServer(ctx context.Context, store *store.Store, opts *config.Options) *Server {
	ctx, cancel := context.WithCancel(ctx)
	return &Server{
		httpServer: &http.Server{
			Addr:         opts.Addr(),
			Handler:      setupHandler(ctx, store, opts),
			ReadTimeout:  time.Duration(opts.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(opts.WriteTimeout) * time.Second,
			IdleTimeout:  time.Duration(opts.IdleTimeout) * time.Second,
		},
		opts:   opts,
		cancel: cancel,
	}
}

// Start serves in the background. Errors other than a closed server are
// sent on the returned channel.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr), zap.String("version", version.GetCurrentVersion()))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- errors.Wrap(err, "http server stopped")
		}
		close(errCh)
	}()
	return errCh
}

// Shutdown waits for in-flight requests up to the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	defer s.cancel()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.opts.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "failed to shutdown http server")
	}
	log.Info("HTTP server stopped")
	return nil
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func setupHandler(ctx context.Context, store *store.Store, opts *config.Options) http.Handler {
	router := mux.NewRouter()

	v1.Server(router, v1.NewHandler(store, opts.MaxBodySize, opts.JWTSecret))

	router.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			log.Error("Database connection error", zap.Error(err))
			http.Error(w, "Database Connection Error", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("OK"))
	}).Name("healthcheck")

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(version.GetCurrentVersion()))
	}).Name("version")

	// Outermost first: the request id and client ip are set before anything
	// else runs, and preflight requests never reach the rate limiter.
	var handler http.Handler = router
	if opts.RateLimitEnabled {
		handler = middleware.NewRateLimiter(ctx, opts.RateLimitRPS, opts.RateLimitBurst).Middleware(handler)
	}
	handler = middleware.CORS(opts.CORSAllowedOrigin)(handler)
	handler = middleware.Recover(handler)
	handler = middleware.RequestContext(handler)
	return handler
}
