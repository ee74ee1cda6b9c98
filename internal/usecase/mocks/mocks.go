// Package mocks provides hand-rolled test doubles for the usecase
// interfaces. Each mock stores state in memory and lets tests override
// individual methods through Func fields.
package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/novabank/docgen/internal/domain"
)

// MockAccountRepository is a mock implementation of usecase.AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	GetByIDFunc    func(ctx context.Context, id string) (*domain.Account, error)
	ListByUserFunc func(ctx context.Context, userID string, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[string]*domain.Account)}
}

func (m *MockAccountRepository) Add(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Account, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Account
	for _, acc := range m.accounts {
		out = append(out, acc)
	}
	return out, nil
}

// MockTransactionRepository is a mock implementation of usecase.TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions []*domain.Transaction

	ListByAccountFunc        func(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	ListByAccountBetweenFunc func(ctx context.Context, accountID string, from, to time.Time) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) Add(txns ...*domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append(m.transactions, txns...)
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, tx := range m.transactions {
		if tx.AccountID == accountID {
			out = append(out, tx)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockTransactionRepository) ListByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]*domain.Transaction, error) {
	if m.ListByAccountBetweenFunc != nil {
		return m.ListByAccountBetweenFunc(ctx, accountID, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, tx := range m.transactions {
		if tx.AccountID == accountID && !tx.CreatedAt.Before(from) && !tx.CreatedAt.After(to) {
			out = append(out, tx)
		}
	}
	return out, nil
}

// MockDepositRepository is a mock implementation of usecase.DepositRepository.
type MockDepositRepository struct {
	mu           sync.RWMutex
	deposits     map[string]*domain.FixedDeposit
	certificates map[string]*domain.Certificate

	GetByIDFunc        func(ctx context.Context, id string) (*domain.FixedDeposit, error)
	ListByUserFunc     func(ctx context.Context, userID string, limit, offset int) ([]*domain.FixedDeposit, error)
	ListActiveFunc     func(ctx context.Context, limit int) ([]*domain.FixedDeposit, error)
	GetCertificateFunc func(ctx context.Context, depositID string) (*domain.Certificate, error)
}

func NewMockDepositRepository() *MockDepositRepository {
	return &MockDepositRepository{
		deposits:     make(map[string]*domain.FixedDeposit),
		certificates: make(map[string]*domain.Certificate),
	}
}

func (m *MockDepositRepository) Add(dep *domain.FixedDeposit) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deposits[dep.ID] = dep
}

func (m *MockDepositRepository) AddCertificate(depositID string, cert *domain.Certificate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.certificates[depositID] = cert
}

func (m *MockDepositRepository) GetByID(ctx context.Context, id string) (*domain.FixedDeposit, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if dep, ok := m.deposits[id]; ok {
		return dep, nil
	}
	return nil, domain.ErrDepositNotFound
}

func (m *MockDepositRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.FixedDeposit, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.FixedDeposit
	for _, dep := range m.deposits {
		out = append(out, dep)
	}
	return out, nil
}

func (m *MockDepositRepository) ListActive(ctx context.Context, limit int) ([]*domain.FixedDeposit, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.FixedDeposit
	for _, dep := range m.deposits {
		if dep.Status == domain.DepositActive {
			out = append(out, dep)
		}
	}
	return out, nil
}

func (m *MockDepositRepository) GetCertificate(ctx context.Context, depositID string) (*domain.Certificate, error) {
	if m.GetCertificateFunc != nil {
		return m.GetCertificateFunc(ctx, depositID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if cert, ok := m.certificates[depositID]; ok {
		return cert, nil
	}
	return nil, domain.ErrCertificateMissing
}

// MockKYCRepository is a mock implementation of usecase.KYCRepository.
type MockKYCRepository struct {
	mu       sync.RWMutex
	profiles map[string]*domain.KYCProfile

	GetByUserFunc func(ctx context.Context, userID string) (*domain.KYCProfile, error)
	CreateFunc    func(ctx context.Context, profile *domain.KYCProfile) error
	UpdateFunc    func(ctx context.Context, profile *domain.KYCProfile) error
}

func NewMockKYCRepository() *MockKYCRepository {
	return &MockKYCRepository{profiles: make(map[string]*domain.KYCProfile)}
}

func (m *MockKYCRepository) GetByUser(ctx context.Context, userID string) (*domain.KYCProfile, error) {
	if m.GetByUserFunc != nil {
		return m.GetByUserFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.profiles[userID]; ok {
		return p, nil
	}
	return nil, domain.ErrKYCProfileNotFound
}

func (m *MockKYCRepository) Create(ctx context.Context, profile *domain.KYCProfile) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, profile)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *MockKYCRepository) Update(ctx context.Context, profile *domain.KYCProfile) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, profile)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.UserID] = profile
	return nil
}

// MockUserRepository is a mock implementation of usecase.UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	GetByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) Add(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrUnauthorized
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUnauthorized
}

// MockRateSource is a mock implementation of usecase.RateSource.
type MockRateSource struct {
	mu    sync.Mutex
	Calls int

	Rates     map[string]decimal.Decimal
	FetchFunc func(ctx context.Context) (map[string]decimal.Decimal, error)
}

func (m *MockRateSource) Fetch(ctx context.Context) (map[string]decimal.Decimal, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx)
	}
	return m.Rates, nil
}

// MockCache is an in-memory usecase.Cache.
type MockCache struct {
	mu      sync.RWMutex
	entries map[string]string

	GetFunc func(ctx context.Context, key string) (string, error)
	SetFunc func(ctx context.Context, key, value string, ttl time.Duration) error
}

func NewMockCache() *MockCache {
	return &MockCache{entries: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries[key], nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// MockDocumentStore records saved documents.
type MockDocumentStore struct {
	mu    sync.Mutex
	Saved map[string][]byte

	SaveFunc func(ctx context.Context, userID, name string, data []byte) (string, error)
}

func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{Saved: make(map[string][]byte)}
}

func (m *MockDocumentStore) Save(ctx context.Context, userID, name string, data []byte) (string, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, userID, name, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ref := userID + "/" + name
	m.Saved[ref] = data
	return ref, nil
}

// MockIDGenerator returns a fixed sequence of IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("test-id-%d", m.next)
}

// MockClock returns a fixed time.
type MockClock struct {
	Time time.Time
}

func (m MockClock) Now() time.Time { return m.Time }

// MockImageSource returns fixed capture bytes.
type MockImageSource struct {
	Data []byte
	Err  error
}

func (m MockImageSource) CaptureImage(ctx context.Context) ([]byte, error) {
	return m.Data, m.Err
}
