package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/novabank/docgen/internal/domain"
	"github.com/novabank/docgen/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID            string          `json:"id"`
	AccountNumber string          `json:"account_number"`
	AccountType   string          `json:"account_type"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		AccountNumber: a.AccountNumber,
		AccountType:   a.AccountType,
		Balance:       a.Balance,
		Currency:      a.Currency,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps an account listing.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Reference   string          `json:"reference,omitempty"`
	TransferFee decimal.Decimal `json:"transfer_fee"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Type:        string(t.Type),
		Amount:      t.Amount,
		Description: t.Description,
		Status:      string(t.Status),
		Reference:   t.Reference,
		TransferFee: t.TransferFee,
		CreatedAt:   t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse wraps a transaction listing.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// DepositResponse represents a fixed deposit with its derived value.
type DepositResponse struct {
	ID             string          `json:"id"`
	AccountID      string          `json:"account_id"`
	Amount         decimal.Decimal `json:"amount"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	DurationMonths int             `json:"duration_months"`
	MaturityDate   time.Time       `json:"maturity_date"`
	Status         string          `json:"status"`
	IsRenewable    bool            `json:"is_renewable"`
	CurrentValue   decimal.Decimal `json:"current_value"`
	DaysRemaining  int             `json:"days_remaining"`
	IsMatured      bool            `json:"is_matured"`
	CreatedAt      time.Time       `json:"created_at"`
}

// DepositFromView converts a deposit view to a response.
func DepositFromView(v usecase.DepositView) *DepositResponse {
	return &DepositResponse{
		ID:             v.Deposit.ID,
		AccountID:      v.Deposit.AccountID,
		Amount:         v.Deposit.Amount,
		InterestRate:   v.Deposit.InterestRate,
		DurationMonths: v.Deposit.DurationMonths,
		MaturityDate:   v.Deposit.MaturityDate,
		Status:         string(v.Deposit.Status),
		IsRenewable:    v.Deposit.IsRenewable,
		CurrentValue:   v.Value.Value,
		DaysRemaining:  v.Value.DaysRemaining,
		IsMatured:      v.Value.IsMatured,
		CreatedAt:      v.Deposit.CreatedAt,
	}
}

// DepositsFromViews converts deposit views to responses.
func DepositsFromViews(views []usecase.DepositView) []*DepositResponse {
	result := make([]*DepositResponse, len(views))
	for i, v := range views {
		result[i] = DepositFromView(v)
	}
	return result
}

// ListDepositsResponse wraps a deposit listing.
type ListDepositsResponse struct {
	Deposits []*DepositResponse `json:"deposits"`
	Total    int64              `json:"total"`
}

// CertificateResponse represents an issued deposit certificate.
type CertificateResponse struct {
	CertificateNumber string          `json:"certificate_number"`
	DepositID         string          `json:"deposit_id"`
	HolderName        string          `json:"holder_name"`
	AccountNumber     string          `json:"account_number"`
	Currency          string          `json:"currency"`
	Principal         decimal.Decimal `json:"principal"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	MaturityDate      time.Time       `json:"maturity_date"`
	IssuedAt          time.Time       `json:"issued_at"`
}

// CertificateFromDomain converts a domain certificate to a response.
func CertificateFromDomain(c *domain.Certificate) *CertificateResponse {
	return &CertificateResponse{
		CertificateNumber: c.CertificateNumber,
		DepositID:         c.Deposit.ID,
		HolderName:        c.HolderName,
		AccountNumber:     c.AccountNumber,
		Currency:          c.Currency,
		Principal:         c.Deposit.Amount,
		InterestRate:      c.Deposit.InterestRate,
		MaturityDate:      c.Deposit.MaturityDate,
		IssuedAt:          c.IssuedAt,
	}
}

// ProjectionResponse is the maturity projection result.
type ProjectionResponse struct {
	Principal      decimal.Decimal `json:"principal"`
	AnnualRate     decimal.Decimal `json:"annual_rate"`
	DurationMonths int             `json:"duration_months"`
	MaturityValue  decimal.Decimal `json:"maturity_value"`
}

// RatesResponse is the exchange-rate table, quoted per 1 unit of the base.
type RatesResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// CurrencyPreferenceResponse is the user's resolved display currency.
type CurrencyPreferenceResponse struct {
	Currency string `json:"currency"`
}

// KYCStepResponse represents one wizard step.
type KYCStepResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Required    bool   `json:"required"`
}

// KYCProfileResponse represents wizard state.
type KYCProfileResponse struct {
	ID            string             `json:"id"`
	UserID        string             `json:"user_id"`
	Steps         []*KYCStepResponse `json:"steps"`
	CurrentStep   int                `json:"current_step"`
	ReadyToSubmit bool               `json:"ready_to_submit"`
	Submitted     bool               `json:"submitted"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// KYCProfileFromDomain converts a domain KYC profile to a response.
func KYCProfileFromDomain(p *domain.KYCProfile) *KYCProfileResponse {
	steps := make([]*KYCStepResponse, len(p.Steps))
	for i, s := range p.Steps {
		steps[i] = &KYCStepResponse{
			ID:          string(s.ID),
			Title:       s.Title,
			Description: s.Description,
			Status:      string(s.Status),
			Required:    s.Required,
		}
	}

	return &KYCProfileResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		Steps:         steps,
		CurrentStep:   p.CurrentStep,
		ReadyToSubmit: p.ReadyToSubmit(),
		Submitted:     p.Submitted,
		UpdatedAt:     p.UpdatedAt,
	}
}

// UserInfo represents user information.
type UserInfo struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
}

// LoginResponse represents a login response.
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
