// Package server exposes the estimators and subscriber capture over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/renolab/renolab/internal/config"
	apperrors "github.com/renolab/renolab/internal/errors"
	"github.com/renolab/renolab/internal/estimate"
	"github.com/renolab/renolab/internal/i18n"
	"github.com/renolab/renolab/internal/observability"
	"github.com/renolab/renolab/internal/ratelimit"
	"github.com/renolab/renolab/internal/server/handlers"
	servermw "github.com/renolab/renolab/internal/server/middleware"
)

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	cfg    *config.Config

	limiter     *ratelimit.Limiter
	subscribers handlers.SubscriberStore
	calc        *estimate.Calculator
	translator  *i18n.Translator
	health      *handlers.HealthManager
}

// Option configures optional server dependencies.
type Option func(*Server)

// WithLimiter shares a limiter, e.g. one whose janitor the caller runs.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(s *Server) { s.limiter = l }
}

// WithSubscriberStore enables subscriber capture.
func WithSubscriberStore(st handlers.SubscriberStore) Option {
	return func(s *Server) { s.subscribers = st }
}

// WithHealthManager replaces the default health manager.
func WithHealthManager(hm *handlers.HealthManager) Option {
	return func(s *Server) { s.health = hm }
}

// WithTranslator shares a message catalog with other components.
func WithTranslator(t *i18n.Translator) Option {
	return func(s *Server) { s.translator = t }
}

// New creates a server from cfg. A nil cfg uses built-in defaults.
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		var err error
		cfg, err = config.Load(context.Background(), nil)
		if err != nil {
			return nil, fmt.Errorf("load default config: %w", err)
		}
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.limiter == nil {
		s.limiter = ratelimit.New()
	}
	if s.translator == nil {
		s.translator = i18n.New()
	}
	if s.health == nil {
		s.health = handlers.NewHealthManager(handlers.AppVersion)
	}
	s.calc = estimate.New(cfg.Estimate)

	// RealIP first so the limiter and logs see the client address.
	s.router.Use(middleware.RealIP)
	s.router.Use(servermw.RequestID)
	s.router.Use(servermw.RequestMetrics)
	s.router.Use(servermw.Recovery)

	s.router.NotFound(func(w http.ResponseWriter, req *http.Request) {
		HandleError(w, req, apperrors.NewNotFoundError("The requested resource was not found"))
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		HandleError(w, req, apperrors.NewMethodNotAllowedError("The requested method is not allowed for this resource"))
	})

	handlers.SetHTTPErrorResponder(HandleError)

	s.registerRoutes()

	return s, nil
}

// Start listens on the configured address and blocks until the server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
		IdleTimeout:       s.cfg.Server.IdleTimeout,
	}

	if observability.ServerLogger != nil {
		observability.ServerLogger.Info("Starting HTTP server",
			zap.String("addr", addr),
			zap.Int("rate_limit_policies", len(s.cfg.RateLimits)))
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	if observability.ServerLogger != nil {
		observability.ServerLogger.Info("Shutting down HTTP server")
	}
	return s.server.Shutdown(ctx)
}

// Handler exposes the underlying router for testing and instrumentation
func (s *Server) Handler() http.Handler {
	return s.router
}

// Health returns the health manager so callers can register checkers.
func (s *Server) Health() *handlers.HealthManager {
	return s.health
}

// Limiter returns the limiter shared by every rate-limited route.
func (s *Server) Limiter() *ratelimit.Limiter {
	return s.limiter
}
