package ingest

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fin-tools/expense-atlas/pkg/models/domain"
)

func TestNormalize_MissingRequiredColumn(t *testing.T) {
	records := []Record{
		{ColumnDate: "2025-01-01", ColumnDescription: "Coffee shop"},
	}

	_, _, err := Normalize(records, DefaultSettings())

	var serr *domain.SchemaError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, ColumnAmount, serr.Column)
}

func TestNormalize_CategoryDefaulted(t *testing.T) {
	records := []Record{
		{ColumnDate: "2025-01-01", ColumnAmount: "12.50", ColumnDescription: "Coffee shop"},
	}

	txs, diag, err := Normalize(records, DefaultSettings())
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Uncategorized", txs[0].Category)
	assert.Equal(t, 1, diag.RowsOut)
	assert.Equal(t, "12.5", txs[0].Amount.String())
}

func TestNormalize_DateFormats(t *testing.T) {
	records := []Record{
		{ColumnDate: "2025-01-02", ColumnAmount: "1", ColumnDescription: "a"},
		{ColumnDate: "01/02/2025", ColumnAmount: "2", ColumnDescription: "b"},
		{ColumnDate: "2025-01-02 13:45:00", ColumnAmount: "3", ColumnDescription: "c"},
	}

	txs, _, err := Normalize(records, DefaultSettings())
	require.NoError(t, err)
	require.Len(t, txs, 3)
	for _, tx := range txs {
		assert.Equal(t, time.January, tx.Date.Month())
		assert.Equal(t, 2, tx.Date.Day())
	}
}

func TestNormalize_StrictAbortsOnFirstBadRow(t *testing.T) {
	records := []Record{
		{ColumnDate: "2025-01-01", ColumnAmount: "10", ColumnDescription: "ok"},
		{ColumnDate: "not a date", ColumnAmount: "10", ColumnDescription: "bad"},
		{ColumnDate: "2025-01-03", ColumnAmount: "10", ColumnDescription: "never reached"},
	}

	_, _, err := Normalize(records, Settings{Strict: true})

	var serr *domain.SchemaError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 2, serr.Row)
	assert.Equal(t, ColumnDate, serr.Column)
}

func TestNormalize_LenientDropsAndCounts(t *testing.T) {
	records := []Record{
		{ColumnDate: "2025-01-01", ColumnAmount: "10", ColumnDescription: "ok"},
		{ColumnDate: "not a date", ColumnAmount: "10", ColumnDescription: "bad date"},
		{ColumnDate: "2025-01-03", ColumnAmount: "ten", ColumnDescription: "bad amount"},
		{ColumnDate: "2025-01-04", ColumnAmount: "-4.20", ColumnDescription: "refund ok"},
	}

	txs, diag, err := Normalize(records, DefaultSettings())
	require.NoError(t, err)
	assert.Len(t, txs, 2)
	assert.Equal(t, 4, diag.RowsIn)
	assert.Equal(t, 2, diag.RowsOut)
	assert.Equal(t, 2, diag.Dropped)
	assert.Len(t, diag.Warnings, 2)
	assert.False(t, txs[1].IsExpense())
}

func TestReadCSV(t *testing.T) {
	input := "Date,Category,Amount,Description\n2025-01-01,Uncategorized,12.50,Coffee shop\n2025-01-02,Uncategorized,300,Flight ticket\n"

	records, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "12.50", records[0][ColumnAmount])
	assert.Equal(t, "Flight ticket", records[1][ColumnDescription])
}

func TestSampleTable_Deterministic(t *testing.T) {
	a := SampleTable(50, 42)
	b := SampleTable(50, 42)
	require.Equal(t, a, b)

	txs, diag, err := Normalize(a, DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, 50, diag.RowsOut)
	assert.Equal(t, "2025-01-01", txs[0].Date.Format("2006-01-02"))
}
