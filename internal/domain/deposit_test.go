package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testDeposit() *FixedDeposit {
	return &FixedDeposit{
		ID:             "fd-1",
		AccountID:      "acc-1",
		Amount:         decimal.NewFromInt(1000),
		InterestRate:   decimal.NewFromInt(9),
		DurationMonths: 12,
		MaturityDate:   date(2025, 1, 1),
		Status:         DepositActive,
		CreatedAt:      date(2024, 1, 1),
	}
}

func TestFixedDeposit_CurrentValue_BeforeMaturity(t *testing.T) {
	d := testDeposit()

	got := d.CurrentValue(date(2024, 7, 1))

	if got.IsMatured {
		t.Error("expected deposit not matured")
	}
	// 182 days elapsed of 366 total
	if got.DaysRemaining != 184 {
		t.Errorf("expected 184 days remaining, got %d", got.DaysRemaining)
	}
	if want := "1044.88"; got.Value.String() != want {
		t.Errorf("expected value %s, got %s", want, got.Value)
	}
}

func TestFixedDeposit_CurrentValue_AtCreation(t *testing.T) {
	d := testDeposit()

	got := d.CurrentValue(date(2024, 1, 1))

	if got.IsMatured {
		t.Error("expected deposit not matured")
	}
	if got.DaysRemaining != 366 {
		t.Errorf("expected 366 days remaining, got %d", got.DaysRemaining)
	}
	if want := "1000"; got.Value.String() != want {
		t.Errorf("expected value %s, got %s", want, got.Value)
	}
}

func TestFixedDeposit_CurrentValue_PastMaturity(t *testing.T) {
	tests := []struct {
		name          string
		maturityValue decimal.NullDecimal
		want          string
	}{
		{
			name: "flat fallback when no booked maturity value",
			want: "1090",
		},
		{
			name:          "booked maturity value wins",
			maturityValue: decimal.NewNullDecimal(decimal.NewFromFloat(1094.17)),
			want:          "1094.17",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testDeposit()
			d.MaturityValue = tt.maturityValue

			got := d.CurrentValue(date(2025, 1, 2))

			if !got.IsMatured {
				t.Error("expected deposit matured")
			}
			if got.DaysRemaining != 0 {
				t.Errorf("expected 0 days remaining, got %d", got.DaysRemaining)
			}
			if got.Value.String() != tt.want {
				t.Errorf("expected value %s, got %s", tt.want, got.Value)
			}
		})
	}
}

func TestFixedDeposit_CurrentValue_ExactlyAtMaturity(t *testing.T) {
	d := testDeposit()

	got := d.CurrentValue(date(2025, 1, 1))

	if !got.IsMatured || got.DaysRemaining != 0 {
		t.Errorf("maturity boundary should count as matured, got %+v", got)
	}
}

func TestProjectedMaturityValue(t *testing.T) {
	tests := []struct {
		name      string
		principal int64
		rate      float64
		months    int
		want      string
	}{
		{"full year compounds once", 1000, 9, 12, "1090"},
		{"half year uses fractional exponent", 1000, 9, 6, "1044.03"},
		{"two years compound", 1000, 9, 24, "1188.1"},
		{"zero rate is identity", 1000, 0, 12, "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectedMaturityValue(
				decimal.NewFromInt(tt.principal),
				decimal.NewFromFloat(tt.rate),
				tt.months,
			)
			if got.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestFixedDeposit_DaysRemainingWithinBounds(t *testing.T) {
	d := testDeposit()
	total := 366

	for now := d.CreatedAt; now.Before(d.MaturityDate); now = now.AddDate(0, 0, 7) {
		got := d.CurrentValue(now)
		if got.DaysRemaining < 0 || got.DaysRemaining > total {
			t.Fatalf("days remaining %d out of [0,%d] at %s", got.DaysRemaining, total, now)
		}
	}
}
