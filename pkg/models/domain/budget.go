package domain

import "github.com/shopspring/decimal"

// Budgets maps a category name to its spending limit.
type Budgets map[string]decimal.Decimal

type BudgetState string

const (
	BudgetStateUnder    BudgetState = "Under"
	BudgetStateNear     BudgetState = "Near"
	BudgetStateOver     BudgetState = "Over"
	BudgetStateNoBudget BudgetState = "No budget set"
)

// BudgetStatus compares the actual spend in one category against its
// configured limit. Categories without a limit carry a zero Limit and the
// NoBudget state; they never default to Over.
type BudgetStatus struct {
	Category  string
	Limit     decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	State     BudgetState
}
