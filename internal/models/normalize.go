package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// trillion is 1조 원 in won.
var trillion = decimal.New(1, 12)

// NormalizeAccountName trims surrounding whitespace from an account label.
func NormalizeAccountName(name string) string {
	return strings.TrimSpace(name)
}

// NormalizeAmount strips thousands separators and surrounding whitespace from
// a textual amount. It does not convert to a numeric type; already-normalized
// values pass through unchanged.
func NormalizeAmount(amount string) string {
	return strings.TrimSpace(strings.ReplaceAll(amount, ",", ""))
}

// NormalizeRows returns a copy of rows with account names and amounts
// normalized.
func NormalizeRows(rows []StatementRow) []StatementRow {
	out := make([]StatementRow, len(rows))
	for i, r := range rows {
		out[i] = StatementRow{
			AccountName: NormalizeAccountName(r.AccountName),
			Amount:      NormalizeAmount(r.Amount),
		}
	}
	return out
}

// AmountToTrillions converts a textual won amount to trillions of won (조원),
// rounded to two decimal places. The second return value is false when the
// amount is blank or not numeric.
func AmountToTrillions(amount string) (decimal.Decimal, bool) {
	s := NormalizeAmount(amount)
	if s == "" || strings.EqualFold(s, "nan") {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d.Div(trillion).Round(2), true
}
