package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/novabank/docgen/internal/domain"
	"github.com/novabank/docgen/internal/export"
)

// DepositUseCase handles fixed-deposit views, projections and certificate
// exports.
type DepositUseCase struct {
	depositRepo DepositRepository
	engine      *export.Engine
	clock       Clock
	logger      zerolog.Logger
}

// NewDepositUseCase creates a new DepositUseCase.
func NewDepositUseCase(depositRepo DepositRepository, engine *export.Engine, clock Clock, logger zerolog.Logger) *DepositUseCase {
	return &DepositUseCase{
		depositRepo: depositRepo,
		engine:      engine,
		clock:       clock,
		logger:      logger,
	}
}

// DepositView pairs a deposit with its derived value at the time of the call.
type DepositView struct {
	Deposit *domain.FixedDeposit
	Value   domain.DepositValue
}

// ListDeposits returns the user's deposits with freshly computed values.
func (uc *DepositUseCase) ListDeposits(ctx context.Context, userID string, limit, offset int) ([]DepositView, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	deposits, err := uc.depositRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	views := make([]DepositView, len(deposits))
	for i, dep := range deposits {
		views[i] = DepositView{Deposit: dep, Value: dep.CurrentValue(now)}
	}
	return views, nil
}

// GetDeposit returns one deposit with its current value.
func (uc *DepositUseCase) GetDeposit(ctx context.Context, id string) (*DepositView, error) {
	dep, err := uc.depositRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &DepositView{Deposit: dep, Value: dep.CurrentValue(uc.clock.Now())}, nil
}

// ProjectInput represents input for the maturity projection tool.
type ProjectInput struct {
	Principal      decimal.Decimal
	AnnualRate     decimal.Decimal
	DurationMonths int
}

// Project computes the compound projection figure. This is the projection
// screen's formula, distinct from the accrual used by CurrentValue.
func (uc *DepositUseCase) Project(input ProjectInput) (decimal.Decimal, error) {
	if err := domain.ValidateAmount(input.Principal); err != nil {
		return decimal.Zero, err
	}
	if input.AnnualRate.IsNegative() || input.DurationMonths <= 0 {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return domain.ProjectedMaturityValue(input.Principal, input.AnnualRate, input.DurationMonths), nil
}

// GetCertificate returns the issued certificate record for a deposit.
func (uc *DepositUseCase) GetCertificate(ctx context.Context, depositID string) (*domain.Certificate, error) {
	return uc.depositRepo.GetCertificate(ctx, depositID)
}

// ExportCertificate renders the deposit certificate PDF.
func (uc *DepositUseCase) ExportCertificate(ctx context.Context, depositID string) (*export.File, error) {
	cert, err := uc.depositRepo.GetCertificate(ctx, depositID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	return uc.engine.Certificate(export.CertificateData{
		Certificate: cert,
		Value:       cert.Deposit.CurrentValue(now),
		GeneratedAt: now,
	}, export.FormatPDF)
}

// ExportDeposits renders the user's deposit list as a tabular export.
func (uc *DepositUseCase) ExportDeposits(ctx context.Context, userID string, format export.Format) (*export.File, error) {
	views, err := uc.ListDeposits(ctx, userID, MaxPageSize, 0)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, len(views))
	for i, v := range views {
		rows[i] = []string{
			v.Deposit.ID,
			v.Deposit.Amount.StringFixed(2),
			v.Deposit.InterestRate.StringFixed(2),
			v.Deposit.MaturityDate.Format("2006-01-02"),
			string(v.Deposit.Status),
			v.Value.Value.StringFixed(2),
		}
	}

	return uc.engine.Table("fixed-deposits",
		[]string{"ID", "Principal", "Rate", "Maturity Date", "Status", "Current Value"},
		rows, uc.clock.Now(), format)
}

// RefreshValues recomputes current values for active deposits once. The
// result is logged and surfaced via the returned views; values are derived,
// never written back.
func (uc *DepositUseCase) RefreshValues(ctx context.Context) ([]DepositView, error) {
	deposits, err := uc.depositRepo.ListActive(ctx, MaxPageSize)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	views := make([]DepositView, len(deposits))
	for i, dep := range deposits {
		views[i] = DepositView{Deposit: dep, Value: dep.CurrentValue(now)}
	}
	return views, nil
}

// RunRefresher recomputes deposit values on a fixed interval until ctx is
// cancelled. Cancellation is the teardown path: the ticker is released and
// no recomputation happens afterwards.
func (uc *DepositUseCase) RunRefresher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DepositRefreshInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			uc.logger.Debug().Msg("deposit value refresher stopped")
			return
		case <-ticker.C:
			views, err := uc.RefreshValues(ctx)
			if err != nil {
				uc.logger.Warn().Err(err).Msg("deposit value refresh failed")
				continue
			}
			uc.logger.Debug().Int("deposits", len(views)).Msg("deposit values refreshed")
		}
	}
}
