package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one normalized expense record. Its position in the table
// acts as its identifier. A negative amount is a refund or credit.
type Transaction struct {
	Date        time.Time
	Category    string
	Amount      decimal.Decimal
	Description string
}

// IsExpense reports whether the transaction counts towards spend totals.
// Refunds and credits carry a negative amount and are excluded.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsPositive()
}
