package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/novabank/docgen/internal/adapter/http"
	"github.com/novabank/docgen/internal/adapter/http/handler"
	"github.com/novabank/docgen/internal/adapter/http/middleware"
	postgresRepo "github.com/novabank/docgen/internal/adapter/repository/postgres"
	redisRepo "github.com/novabank/docgen/internal/adapter/repository/redis"
	"github.com/novabank/docgen/internal/currency"
	"github.com/novabank/docgen/internal/export"
	"github.com/novabank/docgen/internal/infrastructure/auth"
	"github.com/novabank/docgen/internal/infrastructure/config"
	"github.com/novabank/docgen/internal/infrastructure/docstore"
	"github.com/novabank/docgen/internal/infrastructure/logger"
	"github.com/novabank/docgen/internal/infrastructure/metrics"
	"github.com/novabank/docgen/internal/infrastructure/postgres"
	"github.com/novabank/docgen/internal/infrastructure/rates"
	"github.com/novabank/docgen/internal/infrastructure/redis"
	"github.com/novabank/docgen/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Run database migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Metrics registry
	appMetrics := metrics.New()

	// Repositories
	accountRepo := postgresRepo.NewAccountRepository(pool)
	txRepo := postgresRepo.NewTransactionRepository(pool)
	depositRepo := postgresRepo.NewDepositRepository(pool)
	kycRepo := postgresRepo.NewKYCRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	prefStore := redisRepo.NewPreferenceStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Document storage for uploaded KYC evidence
	docStore, err := docstoreFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize document store")
	}

	// Document rendering engine
	branding := export.DefaultBranding()
	branding.Name = cfg.BankName
	branding.SupportEmail = cfg.SupportEmail
	branding.SupportPhone = cfg.SupportPhone

	var logo export.LogoSource
	if cfg.BankLogoPath != "" {
		logo = export.FileLogoSource{Path: cfg.BankLogoPath}
	}

	formatter := currency.NewFormatter(currency.DefaultTable())
	engine := export.NewEngine(branding, logo, formatter)

	// Exchange rate source
	rateSource := rates.NewClient(cfg.RatesURL, cfg.RatesTimeout, appLogger)
	resolver := currency.NewResolver(currency.DefaultTable(), currency.DefaultLocaleMap(), prefStore)

	clock := usecase.SystemClock{}

	// Use cases
	accountUC := usecase.NewAccountUseCase(accountRepo)
	statementUC := usecase.NewStatementUseCase(accountRepo, txRepo, engine, clock)
	depositUC := usecase.NewDepositUseCase(depositRepo, engine, clock, appLogger)
	ratesUC := usecase.NewRatesUseCase(rateSource, cache, resolver, prefStore, appLogger)
	kycUC := usecase.NewKYCUseCase(kycRepo, docStore, idGen, clock)
	userUC := usecase.NewUserUseCase(userRepo)

	// Background deposit value refresher
	refreshCtx, stopRefresher := context.WithCancel(ctx)
	defer stopRefresher()
	go depositUC.RunRefresher(refreshCtx, cfg.DepositRefreshInterval)

	// Authentication
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	transactionHandler := handler.NewTransactionHandler(statementUC)
	depositHandler := handler.NewDepositHandler(depositUC)
	ratesHandler := handler.NewRatesHandler(ratesUC)
	kycHandler := handler.NewKYCHandler(kycUC)
	authHandler := handler.NewAuthHandler(userUC, jwtManager)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     accountHandler,
		TransactionHandler: transactionHandler,
		DepositHandler:     depositHandler,
		RatesHandler:       ratesHandler,
		KYCHandler:         kycHandler,
		AuthHandler:        authHandler,
		HealthHandler:      healthHandler,
		LoggingMiddleware:  middleware.NewLoggingMiddleware(appLogger),
		MetricsMiddleware:  middleware.NewMetricsMiddleware(appMetrics),
		RateLimiter:        middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		JWTManager:         jwtManager,
		AuthEnabled:        cfg.AuthEnabled,
	})

	// Server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopRefresher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// docstoreFromConfig resolves the upload directory, falling back to a
// temp-dir subfolder when none is configured.
func docstoreFromConfig(cfg *config.Config) (*docstore.Store, error) {
	dir := cfg.DocumentOutDir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "docgen-documents")
	}
	return docstore.New(dir)
}
