package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies the direction of a transaction.
type TransactionType string

const (
	TransactionCredit TransactionType = "CREDIT"
	TransactionDebit  TransactionType = "DEBIT"
)

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionPending   TransactionStatus = "PENDING"
	TransactionFailed    TransactionStatus = "FAILED"
)

// Transaction is a single ledger movement on an account. Transactions are
// immutable once created; this service only reads them.
type Transaction struct {
	ID          string
	AccountID   string
	Type        TransactionType
	Amount      decimal.Decimal
	Description string
	Status      TransactionStatus
	Reference   string
	TransferFee decimal.Decimal
	CreatedAt   time.Time
}

// Signed returns the amount with its ledger sign: positive for credits,
// negative for debits.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}
