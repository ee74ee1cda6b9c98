package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/novabank/docgen/internal/domain"
)

// DepositRepository implements usecase.DepositRepository.
type DepositRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewDepositRepository creates a new DepositRepository.
func NewDepositRepository(pool *pgxpool.Pool) *DepositRepository {
	return &DepositRepository{pool: pool, retrier: NewRetrier()}
}

const depositColumns = `id, account_id, amount, interest_rate, duration_months,
	maturity_date, status, is_renewable, maturity_value, created_at`

// GetByID retrieves a fixed deposit by ID.
func (r *DepositRepository) GetByID(ctx context.Context, id string) (*domain.FixedDeposit, error) {
	query := `
		SELECT ` + depositColumns + `
		FROM fixed_deposits
		WHERE id = $1
	`

	deposit, err := scanDeposit(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDepositNotFound
		}

		return nil, err
	}

	return deposit, nil
}

// ListByUser lists a user's fixed deposits with pagination, newest first.
// Deposits hang off accounts, so ownership goes through the accounts table.
func (r *DepositRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.FixedDeposit, error) {
	query := `
		SELECT fd.id, fd.account_id, fd.amount, fd.interest_rate, fd.duration_months,
			fd.maturity_date, fd.status, fd.is_renewable, fd.maturity_value, fd.created_at
		FROM fixed_deposits fd
		JOIN accounts a ON a.id = fd.account_id
		WHERE a.user_id = $1
		ORDER BY fd.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDeposits(rows)
}

// ListActive lists active deposits for the background value refresher. The
// refresher runs unattended, so transient failures are retried here rather
// than surfacing to a caller.
func (r *DepositRepository) ListActive(ctx context.Context, limit int) ([]*domain.FixedDeposit, error) {
	query := `
		SELECT ` + depositColumns + `
		FROM fixed_deposits
		WHERE status = $1
		ORDER BY maturity_date ASC
		LIMIT $2
	`

	var deposits []*domain.FixedDeposit
	err := r.retrier.Retry(ctx, func() error {
		rows, err := r.pool.Query(ctx, query, domain.DepositActive, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		deposits, err = collectDeposits(rows)
		return err
	})
	if err != nil {
		return nil, err
	}

	return deposits, nil
}

// GetCertificate retrieves the issued certificate for a deposit, including
// the deposit itself and the holder details needed to render the document.
func (r *DepositRepository) GetCertificate(ctx context.Context, depositID string) (*domain.Certificate, error) {
	query := `
		SELECT c.certificate_number, c.holder_name, c.account_number, c.currency, c.issued_at,
			fd.id, fd.account_id, fd.amount, fd.interest_rate, fd.duration_months,
			fd.maturity_date, fd.status, fd.is_renewable, fd.maturity_value, fd.created_at
		FROM deposit_certificates c
		JOIN fixed_deposits fd ON fd.id = c.deposit_id
		WHERE c.deposit_id = $1
	`

	var (
		cert          domain.Certificate
		deposit       domain.FixedDeposit
		amount        pgtype.Numeric
		interestRate  pgtype.Numeric
		maturityValue pgtype.Numeric
	)

	err := r.pool.QueryRow(ctx, query, depositID).Scan(
		&cert.CertificateNumber,
		&cert.HolderName,
		&cert.AccountNumber,
		&cert.Currency,
		&cert.IssuedAt,
		&deposit.ID,
		&deposit.AccountID,
		&amount,
		&interestRate,
		&deposit.DurationMonths,
		&deposit.MaturityDate,
		&deposit.Status,
		&deposit.IsRenewable,
		&maturityValue,
		&deposit.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCertificateMissing
		}

		return nil, err
	}

	deposit.Amount = numericToDecimal(amount)
	deposit.InterestRate = numericToDecimal(interestRate)
	deposit.MaturityValue = nullNumericToDecimal(maturityValue)
	cert.Deposit = &deposit

	return &cert, nil
}

func scanDeposit(row pgx.Row) (*domain.FixedDeposit, error) {
	var (
		deposit       domain.FixedDeposit
		amount        pgtype.Numeric
		interestRate  pgtype.Numeric
		maturityValue pgtype.Numeric
	)

	err := row.Scan(
		&deposit.ID,
		&deposit.AccountID,
		&amount,
		&interestRate,
		&deposit.DurationMonths,
		&deposit.MaturityDate,
		&deposit.Status,
		&deposit.IsRenewable,
		&maturityValue,
		&deposit.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	deposit.Amount = numericToDecimal(amount)
	deposit.InterestRate = numericToDecimal(interestRate)
	deposit.MaturityValue = nullNumericToDecimal(maturityValue)

	return &deposit, nil
}

func collectDeposits(rows pgx.Rows) ([]*domain.FixedDeposit, error) {
	var deposits []*domain.FixedDeposit
	for rows.Next() {
		deposit, err := scanDeposit(rows)
		if err != nil {
			return nil, err
		}
		deposits = append(deposits, deposit)
	}

	return deposits, rows.Err()
}

func nullNumericToDecimal(n pgtype.Numeric) decimal.NullDecimal {
	if !n.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: numericToDecimal(n), Valid: true}
}
