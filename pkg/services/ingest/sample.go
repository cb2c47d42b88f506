package ingest

import (
	"fmt"
	"math/rand"
	"time"
)

var sampleDescriptions = []string{
	"Coffee shop",
	"Flight ticket",
	"Electric bill",
	"Movie ticket",
}

// SampleTable generates a deterministic demo dataset: one row per day from
// 2025-01-01, normally distributed amounts (mean 100, sigma 50, rounded to
// cents) and cycling descriptions. The category column carries the
// "Uncategorized" placeholder, same as a freshly exported bank file.
func SampleTable(n int, seed int64) []Record {
	rng := rand.New(rand.NewSource(seed))
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		amount := rng.NormFloat64()*50 + 100
		records = append(records, Record{
			ColumnDate:        start.AddDate(0, 0, i).Format("2006-01-02"),
			ColumnCategory:    "Uncategorized",
			ColumnAmount:      fmt.Sprintf("%.2f", amount),
			ColumnDescription: sampleDescriptions[i%len(sampleDescriptions)],
		})
	}
	return records
}
