package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fin-tools/expense-atlas/pkg/models/domain"
)

func TestReporter_Handle(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	rep := domain.Report{
		ID:          "abc-123",
		GeneratedAt: time.Date(2025, time.March, 1, 9, 30, 0, 0, time.UTC),
		Summary: domain.Summary{
			Total:        decimal.NewFromInt(840),
			Average:      decimal.NewFromInt(280),
			Count:        4,
			AnomalyCount: 1,
			TopCategory:  "Food",
		},
		CategoryTotals: map[string]decimal.Decimal{
			"Travel": decimal.NewFromInt(390),
			"Food":   decimal.NewFromInt(450),
		},
		Budget: []domain.BudgetStatus{
			{Category: "Food", Limit: decimal.NewFromInt(500), Spent: decimal.NewFromInt(450),
				Remaining: decimal.NewFromInt(50), State: domain.BudgetStateNear},
		},
		Warnings: []string{"category_breakdown: render failed"},
	}

	require.NoError(t, reporter.Handle(&rep))
	out := buf.String()

	assert.Contains(t, out, "Financial Report abc-123")
	assert.Contains(t, out, "Total Expenses: $840.00")
	assert.Contains(t, out, "Top Category: Food")
	assert.Contains(t, out, "Food: limit $500.00, spent $450.00, remaining $50.00 (Near)")
	assert.Contains(t, out, "warning: category_breakdown: render failed")

	// Categories print in sorted order regardless of map iteration.
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Food: $450.00")),
		bytes.Index(buf.Bytes(), []byte("Travel: $390.00")))
}

func TestReporter_HandleQuery(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	result := domain.QueryResult{
		Rows: []domain.Transaction{
			{Date: time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
				Category: "Food", Amount: decimal.NewFromFloat(12.50), Description: "Coffee shop"},
		},
	}

	require.NoError(t, reporter.HandleQuery(result))
	assert.Contains(t, buf.String(), "2025-01-05  $12.50  Food  Coffee shop")
}

func TestReporter_HandleQueryMessage(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	require.NoError(t, reporter.HandleQuery(domain.QueryResult{
		Message: "No Food expenses found for January 2025.",
	}))
	assert.Contains(t, buf.String(), "No Food expenses found for January 2025.")
}
