package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Formatter renders amounts as localized display strings.
type Formatter struct {
	table Table
}

// NewFormatter creates a Formatter over a currency table.
func NewFormatter(table Table) *Formatter {
	return &Formatter{table: table}
}

// Format renders an amount with the currency's symbol, thousands grouping and
// two decimal places. Every currency gets two decimals, including zero-decimal
// currencies such as JPY; this is a deliberate simplification kept for
// statement compatibility. Unknown codes render with the code as prefix.
func (f *Formatter) Format(amount decimal.Decimal, code string) string {
	symbol := code + " "
	if info, ok := f.table[strings.ToUpper(code)]; ok {
		symbol = info.Symbol
	}

	fixed := amount.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	b.WriteString(groupThousands(intPart))
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// Parse recovers the numeric amount from a formatted string. It is the
// round-trip inverse of Format for any amount with at most two decimals.
func (f *Formatter) Parse(s string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, s)
	return decimal.NewFromString(cleaned)
}

// Convert applies an exchange rate to a base-currency amount. No rounding is
// applied here; display rounding happens in Format.
func Convert(amountInBase, rate decimal.Decimal) decimal.Decimal {
	return amountInBase.Mul(rate)
}

// groupThousands inserts comma separators into a plain digit string.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
