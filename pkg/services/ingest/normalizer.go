package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fin-tools/expense-atlas/pkg/models/domain"
)

// Record is a single column-labeled row of the incoming table.
type Record map[string]string

// Required and optional column names of the input boundary.
const (
	ColumnDate        = "date"
	ColumnCategory    = "category"
	ColumnAmount      = "amount"
	ColumnDescription = "description"
)

var requiredColumns = []string{ColumnDate, ColumnAmount, ColumnDescription}

// Settings control how strictly rows that fail coercion are treated.
// Strict aborts on the first bad row; otherwise bad rows are dropped and
// counted in the diagnostics. DefaultCategory fills a missing or empty
// category column.
type Settings struct {
	Strict          bool
	DefaultCategory string
}

func DefaultSettings() Settings {
	return Settings{Strict: false, DefaultCategory: "Uncategorized"}
}

// Diagnostics describes what the normalizer did to a table.
type Diagnostics struct {
	RowsIn   int
	RowsOut  int
	Dropped  int
	Warnings []string
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// Normalize validates a raw table against the required shape and coerces
// every field. Missing required columns always fail with a SchemaError;
// per-row coercion failures fail or drop depending on Settings.Strict. The
// input row order is preserved.
func Normalize(records []Record, settings Settings) ([]domain.Transaction, Diagnostics, error) {
	if settings.DefaultCategory == "" {
		settings.DefaultCategory = DefaultSettings().DefaultCategory
	}

	diag := Diagnostics{RowsIn: len(records)}
	if len(records) == 0 {
		return nil, diag, nil
	}

	for _, col := range requiredColumns {
		if _, ok := records[0][col]; !ok {
			return nil, diag, &domain.SchemaError{Column: col, Reason: "required column is missing"}
		}
	}

	txs := make([]domain.Transaction, 0, len(records))
	for i, rec := range records {
		tx, err := coerceRow(rec, settings.DefaultCategory)
		if err != nil {
			if settings.Strict {
				if serr, ok := err.(*domain.SchemaError); ok {
					serr.Row = i + 1
					return nil, diag, serr
				}
				return nil, diag, err
			}
			diag.Dropped++
			diag.Warnings = append(diag.Warnings, fmt.Sprintf("row %d dropped: %v", i+1, err))
			continue
		}
		txs = append(txs, tx)
	}

	diag.RowsOut = len(txs)
	return txs, diag, nil
}

func coerceRow(rec Record, defaultCategory string) (domain.Transaction, error) {
	date, err := parseDate(rec[ColumnDate])
	if err != nil {
		return domain.Transaction{}, err
	}

	rawAmount := strings.TrimSpace(rec[ColumnAmount])
	amount, err := decimal.NewFromString(strings.TrimPrefix(rawAmount, "$"))
	if err != nil {
		return domain.Transaction{}, &domain.SchemaError{
			Column: ColumnAmount,
			Reason: fmt.Sprintf("non-numeric amount %q", rawAmount),
		}
	}

	category := strings.TrimSpace(rec[ColumnCategory])
	if category == "" {
		category = defaultCategory
	}

	return domain.Transaction{
		Date:        date,
		Category:    category,
		Amount:      amount,
		Description: strings.TrimSpace(rec[ColumnDescription]),
	}, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &domain.SchemaError{
		Column: ColumnDate,
		Reason: fmt.Sprintf("unparsable date %q", raw),
	}
}
