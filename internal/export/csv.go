package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/novabank/docgen/internal/domain"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

var (
	statementHeader = []string{"Date", "Description", "Debit", "Credit", "Balance"}
	historyHeader   = []string{"Date", "Type", "Description", "Amount", "Status", "Reference"}
)

// writeCSV renders a header plus data rows. encoding/csv applies RFC 4180
// quoting: fields containing commas are wrapped and embedded quotes doubled.
func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for i, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing csv row %d: %w", i+2, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Engine) statementCSV(data StatementData) ([]byte, error) {
	rows := make([][]string, 0, len(data.Rows))
	for _, row := range data.Rows {
		tx := row.Transaction

		var debit, credit string
		switch tx.Type {
		case domain.TransactionDebit:
			debit = tx.Amount.StringFixed(2)
		case domain.TransactionCredit:
			credit = tx.Amount.StringFixed(2)
		}

		rows = append(rows, []string{
			tx.CreatedAt.Format(dateLayout),
			tx.Description,
			debit,
			credit,
			row.Balance.StringFixed(2),
		})
	}
	return writeCSV(statementHeader, rows)
}

func (e *Engine) historyCSV(data HistoryData) ([]byte, error) {
	rows := make([][]string, 0, len(data.Transactions))
	for _, tx := range data.Transactions {
		rows = append(rows, []string{
			tx.CreatedAt.Format(timestampLayout),
			string(tx.Type),
			tx.Description,
			tx.Amount.StringFixed(2),
			string(tx.Status),
			tx.Reference,
		})
	}
	return writeCSV(historyHeader, rows)
}
