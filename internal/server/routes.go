package server

import (
	"github.com/fulmenhq/gofulmen/signals"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/renolab/renolab/internal/config"
	"github.com/renolab/renolab/internal/observability"
	"github.com/renolab/renolab/internal/server/handlers"
)

// registerRoutes registers all HTTP routes
func (s *Server) registerRoutes() {
	s.router.Get("/health", s.health.HealthHandler)
	s.router.Get("/health/live", s.health.LivenessHandler)
	s.router.Get("/health/ready", s.health.ReadinessHandler)
	s.router.Get("/health/startup", s.health.StartupHandler)

	s.router.Get("/version", handlers.VersionHandler)
	s.router.Get("/metrics", s.metricsHandler)

	maxBody := s.cfg.Server.MaxBodyBytes
	estimator := handlers.NewEstimateHandler(s.calc, s.translator, maxBody)
	subscribe := handlers.NewSubscribeHandler(s.subscribers, s.translator, maxBody)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.With(s.rateLimit(config.PolicyEstimate)).Post("/estimate/{kind}", estimator.ServeHTTP)
		r.With(s.rateLimit(config.PolicySubscribe)).Post("/subscribers", subscribe.ServeHTTP)
	})

	s.registerAdminEndpoint()
}

// registerAdminEndpoint exposes gofulmen signals over HTTP when an admin token is configured.
func (s *Server) registerAdminEndpoint() {
	logger := observability.ServerLogger

	adminToken := s.cfg.Server.AdminToken
	if adminToken == "" {
		if logger != nil {
			logger.Debug("Admin signal endpoint disabled (no RENOLAB_SERVER_ADMIN_TOKEN set)")
		}
		return
	}

	handler := signals.NewHTTPHandler(signals.HTTPConfig{
		TokenAuth: adminToken,
		RateLimit: 10, // per minute
		RateBurst: 5,
		Manager:   nil, // default global manager
	})
	s.router.Post("/admin/signal", handler.ServeHTTP)

	if logger != nil {
		logger.Info("Admin signal endpoint enabled",
			zap.String("path", "/admin/signal"),
			zap.String("auth", "bearer token"))
		logger.Warn("Admin endpoint enabled - ensure this server is not exposed to public internet")
	}
}
