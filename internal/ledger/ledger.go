// Package ledger derives running balances and totals for a window of
// transactions. It renders a view over backend data; it is not an
// authoritative ledger.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/novabank/docgen/internal/domain"
)

// Row is a transaction with its post-transaction balance.
type Row struct {
	Transaction *domain.Transaction
	Balance     decimal.Decimal
}

// Summary totals a rendered window.
type Summary struct {
	OpeningBalance decimal.Decimal
	TotalCredits   decimal.Decimal
	TotalDebits    decimal.Decimal
	NetBalance     decimal.Decimal
}

// ComputeRunningBalances walks the transactions in chronological order
// (oldest first) regardless of the order supplied, carrying a balance from
// openingBalance and emitting one row per transaction. The returned rows are
// chronological; callers wanting display order reverse them.
func ComputeRunningBalances(transactions []*domain.Transaction, openingBalance decimal.Decimal) ([]Row, Summary) {
	sorted := make([]*domain.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	rows := make([]Row, 0, len(sorted))
	balance := openingBalance
	totalCredits := decimal.Zero
	totalDebits := decimal.Zero

	for _, tx := range sorted {
		switch tx.Type {
		case domain.TransactionCredit:
			balance = balance.Add(tx.Amount)
			totalCredits = totalCredits.Add(tx.Amount)
		case domain.TransactionDebit:
			balance = balance.Sub(tx.Amount)
			totalDebits = totalDebits.Add(tx.Amount)
		}
		rows = append(rows, Row{Transaction: tx, Balance: balance})
	}

	return rows, Summary{
		OpeningBalance: openingBalance,
		TotalCredits:   totalCredits,
		TotalDebits:    totalDebits,
		NetBalance:     openingBalance.Add(totalCredits).Sub(totalDebits),
	}
}
