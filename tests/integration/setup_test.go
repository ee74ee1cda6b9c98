package integration

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	adaptershttp "github.com/novabank/docgen/internal/adapter/http"
	"github.com/novabank/docgen/internal/adapter/http/handler"
	"github.com/novabank/docgen/internal/adapter/repository/postgres"
	redisrepo "github.com/novabank/docgen/internal/adapter/repository/redis"
	"github.com/novabank/docgen/internal/currency"
	"github.com/novabank/docgen/internal/export"
	"github.com/novabank/docgen/internal/infrastructure/auth"
	"github.com/novabank/docgen/internal/infrastructure/docstore"
	infraredis "github.com/novabank/docgen/internal/infrastructure/redis"
	"github.com/novabank/docgen/internal/usecase"
	"github.com/novabank/docgen/tests/testutil"
	"github.com/rs/zerolog"
)

// fixedRateSource serves a static rate table so integration tests never
// reach a live rate provider.
type fixedRateSource struct{}

func (fixedRateSource) Fetch(ctx context.Context) (map[string]decimal.Decimal, error) {
	return map[string]decimal.Decimal{
		"EUR": decimal.NewFromFloat(0.92),
		"THB": decimal.NewFromFloat(35.75),
	}, nil
}

// newTestServer wires the full router against the test database, a real
// redis instance and a throwaway document directory.
func newTestServer(t *testing.T, testDB *testutil.TestDB) http.Handler {
	t.Helper()

	ctx := context.Background()
	pool := testDB.Pool

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	docs, err := docstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create document store: %v", err)
	}

	accountRepo := postgres.NewAccountRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	depositRepo := postgres.NewDepositRepository(pool)
	kycRepo := postgres.NewKYCRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	cache := redisrepo.NewCache(redisClient)
	prefStore := redisrepo.NewPreferenceStore(redisClient)
	idGen := postgres.NewULIDGenerator()

	formatter := currency.NewFormatter(currency.DefaultTable())
	engine := export.NewEngine(export.DefaultBranding(), nil, formatter)
	resolver := currency.NewResolver(currency.DefaultTable(), currency.DefaultLocaleMap(), prefStore)

	clock := usecase.SystemClock{}
	logger := zerolog.Nop()

	accountUC := usecase.NewAccountUseCase(accountRepo)
	statementUC := usecase.NewStatementUseCase(accountRepo, txRepo, engine, clock)
	depositUC := usecase.NewDepositUseCase(depositRepo, engine, clock, logger)
	ratesUC := usecase.NewRatesUseCase(fixedRateSource{}, cache, resolver, prefStore, logger)
	kycUC := usecase.NewKYCUseCase(kycRepo, docs, idGen, clock)
	userUC := usecase.NewUserUseCase(userRepo)

	jwtManager := auth.NewJWTManager("integration-test-secret", 24*time.Hour)

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC),
		TransactionHandler: handler.NewTransactionHandler(statementUC),
		DepositHandler:     handler.NewDepositHandler(depositUC),
		RatesHandler:       handler.NewRatesHandler(ratesUC),
		KYCHandler:         handler.NewKYCHandler(kycUC),
		AuthHandler:        handler.NewAuthHandler(userUC, jwtManager),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		JWTManager:         jwtManager,
		AuthEnabled:        false,
	})
}
