package budget

import (
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"

	"github.com/fin-tools/expense-atlas/pkg/models/domain"
)

// Settings contain the configurable thresholds for budget evaluation.
type Settings struct {
	// NearThresholdFraction is the share of the limit at which spend is
	// reported as Near rather than Under (default 0.9).
	NearThresholdFraction float64
}

func DefaultSettings() Settings {
	return Settings{NearThresholdFraction: 0.9}
}

// Evaluate compares per-category spend against the configured limits.
// Every category present in either the table or the budget map gets a
// status, sorted by category name. Spend sums positive amounts only, so
// the per-category figures always add up to the report total.
func Evaluate(txs []domain.Transaction, budgets domain.Budgets, settings Settings) []domain.BudgetStatus {
	if settings.NearThresholdFraction <= 0 {
		settings.NearThresholdFraction = DefaultSettings().NearThresholdFraction
	}
	near := decimal.NewFromFloat(settings.NearThresholdFraction)

	spent := SpentByCategory(txs)
	names := make(map[string]struct{}, len(spent)+len(budgets))
	for c := range spent {
		names[c] = struct{}{}
	}
	for c := range budgets {
		names[c] = struct{}{}
	}
	ordered := maps.Keys(names)
	sort.Strings(ordered)

	statuses := make([]domain.BudgetStatus, 0, len(ordered))
	for _, name := range ordered {
		s := spent[name]
		status := domain.BudgetStatus{Category: name, Spent: s}

		limit, ok := budgets[name]
		if !ok {
			status.State = domain.BudgetStateNoBudget
			statuses = append(statuses, status)
			continue
		}

		status.Limit = limit
		status.Remaining = limit.Sub(s)
		switch {
		case s.GreaterThan(limit):
			status.State = domain.BudgetStateOver
		case s.IsPositive() && s.GreaterThanOrEqual(limit.Mul(near)):
			status.State = domain.BudgetStateNear
		default:
			status.State = domain.BudgetStateUnder
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// SpentByCategory sums the positive amounts per category. Refunds and
// credits do not reduce spend.
func SpentByCategory(txs []domain.Transaction) map[string]decimal.Decimal {
	spent := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if !tx.IsExpense() {
			// Still surface the category, with zero spend.
			spent[tx.Category] = spent[tx.Category].Add(decimal.Zero)
			continue
		}
		spent[tx.Category] = spent[tx.Category].Add(tx.Amount)
	}
	return spent
}
