package dto

import (
	"github.com/shopspring/decimal"

	"github.com/novabank/docgen/internal/usecase"
)

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts the request to usecase input.
func (r LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		Email:    r.Email,
		Password: r.Password,
	}
}

// PersonalInfoRequest represents the first KYC wizard step.
type PersonalInfoRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	DateOfBirth string `json:"date_of_birth"`
	Phone       string `json:"phone"`
}

// ToUseCaseInput converts the request to usecase input.
func (r PersonalInfoRequest) ToUseCaseInput(userID string) usecase.PersonalInfoInput {
	return usecase.PersonalInfoInput{
		UserID:      userID,
		FullName:    r.FullName,
		Email:       r.Email,
		DateOfBirth: r.DateOfBirth,
		Phone:       r.Phone,
	}
}

// CurrencyPreferenceRequest sets the user's display currency.
type CurrencyPreferenceRequest struct {
	Currency string `json:"currency"`
}

// ProjectionRequest represents input for the maturity projection tool.
type ProjectionRequest struct {
	Principal      decimal.Decimal `json:"principal"`
	AnnualRate     decimal.Decimal `json:"annual_rate"`
	DurationMonths int             `json:"duration_months"`
}

// ToUseCaseInput converts the request to usecase input.
func (r ProjectionRequest) ToUseCaseInput() usecase.ProjectInput {
	return usecase.ProjectInput{
		Principal:      r.Principal,
		AnnualRate:     r.AnnualRate,
		DurationMonths: r.DurationMonths,
	}
}
