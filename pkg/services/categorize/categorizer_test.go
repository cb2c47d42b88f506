package categorize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fin-tools/expense-atlas/pkg/models/domain"
)

func tx(desc string) domain.Transaction {
	return domain.Transaction{
		Date:        time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		Category:    "Uncategorized",
		Amount:      decimal.NewFromInt(10),
		Description: desc,
	}
}

func TestClassify_KeywordMatch(t *testing.T) {
	tax := DefaultTaxonomy()

	assert.Equal(t, "Food", Classify("COFFEE shop downtown", tax, DefaultFallback))
	assert.Equal(t, "Travel", Classify("Uber to airport", tax, DefaultFallback))
	assert.Equal(t, "Utilities", Classify("electric bill march", tax, DefaultFallback))
	assert.Equal(t, "Entertainment", Classify("concert night", tax, DefaultFallback))
	assert.Equal(t, "Other", Classify("mystery merchant", tax, DefaultFallback))
}

func TestClassify_FirstMatchWinsInTaxonomyOrder(t *testing.T) {
	// "bill" (Utilities) and "ticket" (Entertainment) both match; Utilities
	// is declared first, so it wins.
	got := Classify("bill for game ticket", DefaultTaxonomy(), DefaultFallback)
	assert.Equal(t, "Utilities", got)
}

func TestApply_AlwaysTaxonomyMemberOrFallback(t *testing.T) {
	tax := DefaultTaxonomy()
	txs := []domain.Transaction{
		tx("Coffee shop"), tx("Flight ticket"), tx("unknown"), tx(""),
	}

	out := Apply(txs, tax, DefaultFallback)
	for _, o := range out {
		require.NotEmpty(t, o.Category)
		assert.True(t, tax.Contains(o.Category) || o.Category == DefaultFallback,
			"category %q is neither taxonomy member nor fallback", o.Category)
	}
}

func TestApply_DeterministicAndNonMutating(t *testing.T) {
	tax := DefaultTaxonomy()
	txs := []domain.Transaction{tx("Coffee shop"), tx("Flight ticket"), tx("weird")}

	first := Apply(txs, tax, DefaultFallback)
	second := Apply(txs, tax, DefaultFallback)

	assert.Equal(t, first, second)
	assert.Equal(t, "Uncategorized", txs[0].Category, "input must not be mutated")
}
