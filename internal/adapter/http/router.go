package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/novabank/docgen/internal/adapter/http/handler"
	"github.com/novabank/docgen/internal/adapter/http/middleware"
	"github.com/novabank/docgen/internal/infrastructure/auth"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler     *handler.AccountHandler
	TransactionHandler *handler.TransactionHandler
	DepositHandler     *handler.DepositHandler
	RatesHandler       *handler.RatesHandler
	KYCHandler         *handler.KYCHandler
	AuthHandler        *handler.AuthHandler
	HealthHandler      *handler.HealthHandler

	LoggingMiddleware *middleware.LoggingMiddleware
	MetricsMiddleware *middleware.MetricsMiddleware
	RateLimiter       *middleware.RateLimiter

	// JWTManager enables authentication on /api/v1 routes when AuthEnabled.
	JWTManager  *auth.JWTManager
	AuthEnabled bool
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	if cfg.LoggingMiddleware != nil {
		r.Use(cfg.LoggingMiddleware.Wrap)
	}
	if cfg.MetricsMiddleware != nil {
		r.Use(cfg.MetricsMiddleware.Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", cfg.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			if cfg.AuthEnabled && cfg.JWTManager != nil {
				r.Use(middleware.AuthMiddleware(cfg.JWTManager))
			} else if cfg.JWTManager != nil {
				r.Use(middleware.OptionalAuth(cfg.JWTManager))
			}

			r.Get("/auth/me", cfg.AuthHandler.GetCurrentUser)

			// Accounts and documents
			r.Route("/accounts", func(r chi.Router) {
				r.Get("/", cfg.AccountHandler.List)
				r.Get("/{id}", cfg.AccountHandler.Get)
				r.Get("/{id}/transactions", cfg.TransactionHandler.ListByAccount)
				r.Get("/{id}/statement", cfg.TransactionHandler.Statement)
			})

			r.Get("/transactions/export", cfg.TransactionHandler.Export)

			// Fixed deposits
			r.Route("/fixed-deposits", func(r chi.Router) {
				r.Get("/", cfg.DepositHandler.List)
				r.Get("/export", cfg.DepositHandler.Export)
				r.Post("/project", cfg.DepositHandler.Project)
				r.Get("/{id}", cfg.DepositHandler.Get)
				r.Get("/{id}/certificate", cfg.DepositHandler.Certificate)
				r.Get("/{id}/certificate/download", cfg.DepositHandler.DownloadCertificate)
			})

			// Rates and preferences
			r.Get("/exchange-rates", cfg.RatesHandler.GetRates)
			r.Get("/preferences/currency", cfg.RatesHandler.GetPreference)
			r.Put("/preferences/currency", cfg.RatesHandler.PutPreference)

			// Onboarding wizard
			r.Route("/kyc", func(r chi.Router) {
				r.Post("/personal-info", cfg.KYCHandler.PersonalInfo)
				r.Post("/documents", cfg.KYCHandler.UploadDocument)
				r.Post("/selfie", cfg.KYCHandler.Selfie)
				r.Get("/status", cfg.KYCHandler.Status)
				r.Post("/retry", cfg.KYCHandler.Retry)
				r.Post("/submit", cfg.KYCHandler.Submit)
			})
		})
	})

	return r
}
