package usecase

import (
	"context"
	"time"

	"github.com/novabank/docgen/internal/domain"
	"github.com/novabank/docgen/internal/export"
	"github.com/novabank/docgen/internal/ledger"
)

// StatementUseCase builds and exports account statements and transaction
// histories.
type StatementUseCase struct {
	accountRepo AccountRepository
	txRepo      TransactionRepository
	engine      *export.Engine
	clock       Clock
}

// NewStatementUseCase creates a new StatementUseCase.
func NewStatementUseCase(accountRepo AccountRepository, txRepo TransactionRepository, engine *export.Engine, clock Clock) *StatementUseCase {
	return &StatementUseCase{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		engine:      engine,
		clock:       clock,
	}
}

// GenerateStatementInput represents input for generating a statement.
type GenerateStatementInput struct {
	AccountID  string
	HolderName string
	From       time.Time
	To         time.Time
	Format     export.Format
}

// GenerateStatement assembles a statement for the account's transaction
// window and renders it. The opening balance is derived from the current
// balance minus the net of the window, so it is an estimate whenever
// movements exist outside the window.
func (uc *StatementUseCase) GenerateStatement(ctx context.Context, input GenerateStatementInput) (*export.File, error) {
	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.txRepo.ListByAccountBetween(ctx, account.ID, input.From, input.To)
	if err != nil {
		return nil, err
	}

	opening := account.OpeningBalance(transactions)
	rows, summary := ledger.ComputeRunningBalances(transactions, opening)

	return uc.engine.Statement(export.StatementData{
		Account:     account,
		HolderName:  input.HolderName,
		PeriodFrom:  input.From,
		PeriodTo:    input.To,
		Rows:        rows,
		Summary:     summary,
		GeneratedAt: uc.clock.Now(),
	}, input.Format)
}

// ExportHistoryInput represents input for a transaction history export.
type ExportHistoryInput struct {
	AccountID string
	Limit     int
	Format    export.Format
}

// ExportHistory renders the account's most recent transactions in their
// display order (newest first).
func (uc *StatementUseCase) ExportHistory(ctx context.Context, input ExportHistoryInput) (*export.File, error) {
	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	transactions, err := uc.txRepo.ListByAccount(ctx, account.ID, limit, 0)
	if err != nil {
		return nil, err
	}

	return uc.engine.TransactionHistory(export.HistoryData{
		Transactions: transactions,
		Currency:     account.Currency,
		GeneratedAt:  uc.clock.Now(),
	}, input.Format)
}

// ListTransactions returns a page of account transactions for display.
func (uc *StatementUseCase) ListTransactions(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return uc.txRepo.ListByAccount(ctx, accountID, limit, offset)
}
