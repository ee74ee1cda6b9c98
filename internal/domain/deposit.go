package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// DepositStatus is the lifecycle state of a fixed deposit.
type DepositStatus string

const (
	DepositActive    DepositStatus = "ACTIVE"
	DepositMatured   DepositStatus = "MATURED"
	DepositWithdrawn DepositStatus = "WITHDRAWN"
)

// FixedDeposit is a term deposit earning interest until its maturity date.
type FixedDeposit struct {
	ID             string
	AccountID      string
	Amount         decimal.Decimal
	InterestRate   decimal.Decimal // annual rate in percent
	DurationMonths int
	MaturityDate   time.Time
	Status         DepositStatus
	IsRenewable    bool
	MaturityValue  decimal.NullDecimal // fixed at booking when present
	CreatedAt      time.Time
}

// DepositValue is the derived worth of a deposit at a point in time. It is
// recomputed on every render, never stored.
type DepositValue struct {
	Value         decimal.Decimal
	DaysRemaining int
	IsMatured     bool
}

// CurrentValue computes the deposit's worth at now.
//
// Before maturity the value accrues simple daily interest:
// principal * (1 + (rate/365/100) * elapsedDays). At or after maturity the
// booked maturity value is used when present, otherwise the flat single-period
// figure from FlatMaturityValue. The two formulas do not agree exactly at the
// maturity boundary; they are kept as distinct operations on purpose, matching
// the screens they back (see ProjectedMaturityValue for the third).
func (d *FixedDeposit) CurrentValue(now time.Time) DepositValue {
	if !now.Before(d.MaturityDate) {
		value := d.FlatMaturityValue()
		if d.MaturityValue.Valid {
			value = d.MaturityValue.Decimal
		}
		return DepositValue{
			Value:         value.Round(2),
			DaysRemaining: 0,
			IsMatured:     true,
		}
	}

	totalDays := ceilDays(d.CreatedAt, d.MaturityDate)
	elapsedDays := ceilDays(d.CreatedAt, now)
	daysRemaining := totalDays - elapsedDays
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	dailyRate := d.InterestRate.Div(decimal.NewFromInt(36500))
	accrued := decimal.NewFromInt(1).Add(dailyRate.Mul(decimal.NewFromInt(int64(elapsedDays))))

	return DepositValue{
		Value:         d.Amount.Mul(accrued).Round(2),
		DaysRemaining: daysRemaining,
		IsMatured:     false,
	}
}

// FlatMaturityValue is the non-compounded maturity figure
// principal * (1 + rate/100), used when no maturity value was booked.
func (d *FixedDeposit) FlatMaturityValue() decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(d.InterestRate.Div(decimal.NewFromInt(100)))
	return d.Amount.Mul(factor).Round(2)
}

// ProjectedMaturityValue is the projection-tool formula: annual compounding
// over a fractional year count, principal * (1 + rate/100)^(months/12).
// It intentionally differs from the accrual path above and must not be
// substituted for it.
func ProjectedMaturityValue(principal, annualRate decimal.Decimal, durationMonths int) decimal.Decimal {
	rate, _ := annualRate.Float64()
	base, _ := principal.Float64()
	value := base * math.Pow(1+rate/100, float64(durationMonths)/12)
	return decimal.NewFromFloat(value).Round(2)
}

// ceilDays returns the number of days between from and to, rounding any
// partial day up.
func ceilDays(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}

// Certificate is the issued record for a fixed deposit, rendered into the
// downloadable certificate document.
type Certificate struct {
	CertificateNumber string
	Deposit           *FixedDeposit
	HolderName        string
	AccountNumber     string
	Currency          string
	IssuedAt          time.Time
}
