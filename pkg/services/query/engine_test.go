package query

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fin-tools/expense-atlas/pkg/models/domain"
	"github.com/fin-tools/expense-atlas/pkg/services/categorize"
)

func tx(category, date, desc string, amount int64) domain.Transaction {
	d, _ := time.Parse("2006-01-02", date)
	return domain.Transaction{Date: d, Category: category, Amount: decimal.NewFromInt(amount), Description: desc}
}

func TestRun_CategoryAndMonthFilter(t *testing.T) {
	txs := []domain.Transaction{
		tx("Food", "2025-01-01", "Coffee shop", 12),
		tx("Travel", "2025-01-02", "Flight ticket", 300),
		tx("Food", "2025-02-10", "Dinner", 45),
	}
	e := NewEngine(categorize.DefaultTaxonomy())

	res := e.Run("Show Food expenses for January 2025", txs, nil)

	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Coffee shop", res.Rows[0].Description)
	assert.Empty(t, res.Message)
}

func TestRun_CategoryWithoutPeriodReturnsAllInOrder(t *testing.T) {
	txs := []domain.Transaction{
		tx("Food", "2025-01-01", "Coffee shop", 12),
		tx("Food", "2025-02-10", "Dinner", 45),
		tx("Travel", "2025-01-02", "Flight ticket", 300),
	}
	e := NewEngine(categorize.DefaultTaxonomy())

	res := e.Run("show food expenses", txs, nil)

	require.Len(t, res.Rows, 2)
	assert.Equal(t, "Coffee shop", res.Rows[0].Description)
	assert.Equal(t, "Dinner", res.Rows[1].Description)
}

func TestRun_UnknownCategoryYieldsMessageNotError(t *testing.T) {
	e := NewEngine(categorize.DefaultTaxonomy())

	res := e.Run("Show Groceries expenses", nil, nil)

	assert.Empty(t, res.Rows)
	assert.Contains(t, res.Message, "not recognized")
}

func TestRun_EmptyMatchExplains(t *testing.T) {
	txs := []domain.Transaction{tx("Travel", "2025-01-02", "Flight ticket", 300)}
	e := NewEngine(categorize.DefaultTaxonomy())

	res := e.Run("Show Food expenses for January 2025", txs, nil)

	assert.Empty(t, res.Rows)
	assert.Equal(t, "No Food expenses found for January 2025.", res.Message)
}

func TestRun_BudgetIntent(t *testing.T) {
	statuses := []domain.BudgetStatus{
		{Category: "Food", Limit: decimal.NewFromInt(500), Spent: decimal.NewFromInt(450),
			Remaining: decimal.NewFromInt(50), State: domain.BudgetStateNear},
	}
	e := NewEngine(categorize.DefaultTaxonomy())

	res := e.Run("Check budget status", nil, statuses)

	require.Len(t, res.Budget, 1)
	assert.Contains(t, res.Message, "Food: limit $500.00, spent $450.00, remaining $50.00 (Near)")
}

func TestRun_Deterministic(t *testing.T) {
	txs := []domain.Transaction{
		tx("Food", "2025-01-01", "Coffee shop", 12),
		tx("Food", "2025-01-05", "Lunch", 20),
	}
	e := NewEngine(categorize.DefaultTaxonomy())

	first := e.Run("Show Food expenses for January 2025", txs, nil)
	second := e.Run("Show Food expenses for January 2025", txs, nil)

	assert.Equal(t, first, second)
}
