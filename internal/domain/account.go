package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a customer bank account. Balance is a snapshot owned by the
// banking backend; this service never mutates it.
type Account struct {
	ID            string
	AccountNumber string
	AccountType   string
	Balance       decimal.Decimal
	Currency      string
	IsActive      bool
	CreatedAt     time.Time
}

// OpeningBalance derives the balance immediately before the oldest
// transaction in a window: the current balance minus the net effect of the
// shown transactions. This is an estimate when movements outside the window
// exist, not an authoritative ledger figure.
func (a *Account) OpeningBalance(window []*Transaction) decimal.Decimal {
	net := decimal.Zero
	for _, tx := range window {
		net = net.Add(tx.Signed())
	}
	return a.Balance.Sub(net)
}
