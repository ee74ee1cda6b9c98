package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novabank/docgen/internal/domain"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, account_id, type, amount, description, status, reference, transfer_fee, created_at`

// ListByAccount lists an account's transactions with pagination, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// ListByAccountBetween lists an account's transactions inside the inclusive
// [from, to] window, oldest first so statement rows read chronologically.
func (r *TransactionRepository) ListByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var transactions []*domain.Transaction
	for rows.Next() {
		var (
			tx          domain.Transaction
			amount      pgtype.Numeric
			transferFee pgtype.Numeric
		)

		err := rows.Scan(
			&tx.ID,
			&tx.AccountID,
			&tx.Type,
			&amount,
			&tx.Description,
			&tx.Status,
			&tx.Reference,
			&transferFee,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		tx.Amount = numericToDecimal(amount)
		tx.TransferFee = numericToDecimal(transferFee)
		transactions = append(transactions, &tx)
	}

	return transactions, rows.Err()
}
