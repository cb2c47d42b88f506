package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/fin-tools/expense-atlas/pkg/models/domain"
)

// ReadCSV reads a delimited file into column-labeled rows. The first line
// is the header; column names are lower-cased so "Date" and "date" label
// the same column.
func ReadCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &domain.SchemaError{Reason: "empty file"}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		rec := make(Record, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
