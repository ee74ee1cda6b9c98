package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountInactive = errors.New("account is not active")

	// Transaction errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidAmount       = errors.New("amount must be positive")

	// Fixed deposit errors
	ErrDepositNotFound    = errors.New("fixed deposit not found")
	ErrCertificateMissing = errors.New("certificate not issued for deposit")

	// Export errors
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrEmptyDocument     = errors.New("document has no content to export")

	// KYC errors
	ErrKYCProfileNotFound  = errors.New("kyc profile not found")
	ErrKYCStepNotFailed    = errors.New("kyc step is not in a failed state")
	ErrKYCAlreadySubmitted = errors.New("kyc profile already submitted for review")
	ErrKYCStepOutOfOrder   = errors.New("kyc step completed out of order")

	// Rate errors
	ErrRateUnavailable = errors.New("exchange rate unavailable for currency")
)
