package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/novabank/docgen/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Account, error)
}

// TransactionRepository defines data access for transactions.
type TransactionRepository interface {
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	ListByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]*domain.Transaction, error)
}

// DepositRepository defines data access for fixed deposits.
type DepositRepository interface {
	GetByID(ctx context.Context, id string) (*domain.FixedDeposit, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.FixedDeposit, error)
	ListActive(ctx context.Context, limit int) ([]*domain.FixedDeposit, error)
	GetCertificate(ctx context.Context, depositID string) (*domain.Certificate, error)
}

// KYCRepository defines data access for KYC profiles.
type KYCRepository interface {
	GetByUser(ctx context.Context, userID string) (*domain.KYCProfile, error)
	Create(ctx context.Context, profile *domain.KYCProfile) error
	Update(ctx context.Context, profile *domain.KYCProfile) error
}

// UserRepository defines data access for users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// RateSource fetches the upstream exchange-rate table, keyed by currency
// code, as units of target currency per 1 USD.
type RateSource interface {
	Fetch(ctx context.Context) (map[string]decimal.Decimal, error)
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// DocumentStore persists uploaded KYC documents and returns a reference.
type DocumentStore interface {
	Save(ctx context.Context, userID, name string, data []byte) (string, error)
}

// ImageSource is a capture capability (camera, file picker). It decouples the
// KYC sequencer from any particular media API.
type ImageSource interface {
	CaptureImage(ctx context.Context) ([]byte, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock supplies the current time; injected so value calculations and
// document footers are reproducible in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
