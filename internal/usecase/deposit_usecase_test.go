package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/novabank/docgen/internal/domain"
	"github.com/novabank/docgen/internal/export"
	"github.com/novabank/docgen/internal/usecase"
	"github.com/novabank/docgen/internal/usecase/mocks"
)

func seedDeposit(repo *mocks.MockDepositRepository) *domain.FixedDeposit {
	dep := &domain.FixedDeposit{
		ID:             "fd-1",
		AccountID:      "acc-1",
		Amount:         decimal.NewFromInt(1000),
		InterestRate:   decimal.NewFromInt(9),
		DurationMonths: 12,
		MaturityDate:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:         domain.DepositActive,
		CreatedAt:      time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	repo.Add(dep)
	return dep
}

func newDepositUC(repo *mocks.MockDepositRepository) *usecase.DepositUseCase {
	return usecase.NewDepositUseCase(repo, testEngine(), mocks.MockClock{Time: fixedNow}, zerolog.Nop())
}

func TestDepositUseCase_ListDeposits(t *testing.T) {
	repo := mocks.NewMockDepositRepository()
	seedDeposit(repo)

	uc := newDepositUC(repo)

	views, err := uc.ListDeposits(context.Background(), "user-1", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 deposit, got %d", len(views))
	}
	if views[0].Value.IsMatured {
		t.Error("deposit should not be matured at booking time")
	}
	// Booked at midnight, valued at noon: the partial day counts as elapsed.
	if views[0].Value.DaysRemaining != 364 {
		t.Errorf("expected 364 days remaining, got %d", views[0].Value.DaysRemaining)
	}
}

func TestDepositUseCase_Project(t *testing.T) {
	uc := newDepositUC(mocks.NewMockDepositRepository())

	got, err := uc.Project(usecase.ProjectInput{
		Principal:      decimal.NewFromInt(1000),
		AnnualRate:     decimal.NewFromInt(9),
		DurationMonths: 12,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "1090" {
		t.Errorf("expected 1090, got %s", got)
	}

	_, err = uc.Project(usecase.ProjectInput{
		Principal:      decimal.Zero,
		AnnualRate:     decimal.NewFromInt(9),
		DurationMonths: 12,
	})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestDepositUseCase_ExportCertificate(t *testing.T) {
	repo := mocks.NewMockDepositRepository()
	dep := seedDeposit(repo)
	repo.AddCertificate(dep.ID, &domain.Certificate{
		CertificateNumber: "FD-2025-0001",
		Deposit:           dep,
		HolderName:        "Jordan Rivera",
		AccountNumber:     "1234567890",
		Currency:          "USD",
		IssuedAt:          dep.CreatedAt,
	})

	uc := newDepositUC(repo)

	file, err := uc.ExportCertificate(context.Background(), dep.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if file.Name != "fd-certificate-FD-2025-0001-2025-01-31.pdf" {
		t.Errorf("unexpected filename %q", file.Name)
	}
	if !bytes.HasPrefix(file.Data, []byte("%PDF-")) {
		t.Error("expected pdf output")
	}
}

func TestDepositUseCase_ExportCertificate_Missing(t *testing.T) {
	repo := mocks.NewMockDepositRepository()
	seedDeposit(repo)

	uc := newDepositUC(repo)

	_, err := uc.ExportCertificate(context.Background(), "fd-1")
	if !errors.Is(err, domain.ErrCertificateMissing) {
		t.Errorf("expected ErrCertificateMissing, got %v", err)
	}
}

func TestDepositUseCase_RunRefresher_StopsOnCancel(t *testing.T) {
	repo := mocks.NewMockDepositRepository()
	seedDeposit(repo)

	var mu sync.Mutex
	refreshes := 0
	repo.ListActiveFunc = func(ctx context.Context, limit int) ([]*domain.FixedDeposit, error) {
		mu.Lock()
		refreshes++
		mu.Unlock()
		return nil, nil
	}

	uc := newDepositUC(repo)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		uc.RunRefresher(ctx, 5*time.Millisecond)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop after cancellation")
	}

	mu.Lock()
	seen := refreshes
	mu.Unlock()
	if seen == 0 {
		t.Error("expected at least one refresh before cancellation")
	}

	// No further refreshes after teardown.
	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if refreshes != seen {
		t.Errorf("refresher ran after cancellation: %d -> %d", seen, refreshes)
	}
}

func TestDepositUseCase_ExportDeposits(t *testing.T) {
	repo := mocks.NewMockDepositRepository()
	seedDeposit(repo)

	uc := newDepositUC(repo)

	file, err := uc.ExportDeposits(context.Background(), "user-1", export.FormatCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if file.Name != "fixed-deposits-2025-01-31.csv" {
		t.Errorf("unexpected filename %q", file.Name)
	}
}
