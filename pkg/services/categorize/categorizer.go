package categorize

import (
	"strings"

	"github.com/fin-tools/expense-atlas/pkg/models/domain"
)

// DefaultFallback is the bucket for transactions no keyword matched.
const DefaultFallback = "Other"

// DefaultTaxonomy returns the built-in category rules. The declaration
// order is the match order.
func DefaultTaxonomy() domain.Taxonomy {
	return domain.Taxonomy{
		{Name: "Food", Keywords: []string{"coffee", "restaurant", "cafe", "lunch", "dinner", "grocery"}},
		{Name: "Travel", Keywords: []string{"flight", "uber", "taxi", "hotel", "train"}},
		{Name: "Utilities", Keywords: []string{"electric", "water", "internet", "bill"}},
		{Name: "Entertainment", Keywords: []string{"movie", "concert", "game", "ticket"}},
	}
}

// Apply assigns every transaction a category by scanning its description
// for taxonomy keywords. The input slice is not mutated. Pure function:
// the same table and taxonomy always yield the same assignments.
func Apply(txs []domain.Transaction, tax domain.Taxonomy, fallback string) []domain.Transaction {
	if fallback == "" {
		fallback = DefaultFallback
	}
	out := make([]domain.Transaction, len(txs))
	for i, tx := range txs {
		tx.Category = Classify(tx.Description, tax, fallback)
		out[i] = tx
	}
	return out
}

// Classify maps a free-text description to a taxonomy category. Matching
// is a case-insensitive substring test, first category in taxonomy order
// with any matching keyword wins; when nothing matches the fallback bucket
// is returned, never an empty string.
func Classify(description string, tax domain.Taxonomy, fallback string) string {
	desc := strings.ToLower(description)
	for _, cat := range tax {
		for _, kw := range cat.Keywords {
			if kw != "" && strings.Contains(desc, strings.ToLower(kw)) {
				return cat.Name
			}
		}
	}
	return fallback
}
