package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fin-tools/expense-atlas/pkg/services/report"
)

func day(d int) time.Time {
	return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestTrend_ProducesPNG(t *testing.T) {
	r := NewRenderer()
	points := []report.TrendPoint{
		{Day: day(1), Total: 120}, {Day: day(2), Total: 80}, {Day: day(3), Total: 200},
	}

	png, err := r.Trend(points)
	require.NoError(t, err)
	require.NotEmpty(t, png)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestTrend_TooFewPoints(t *testing.T) {
	r := NewRenderer()
	_, err := r.Trend([]report.TrendPoint{{Day: day(1), Total: 120}})
	assert.Error(t, err)
}

func TestBreakdown_ProducesPNG(t *testing.T) {
	r := NewRenderer()
	png, err := r.Breakdown([]report.CategoryTotal{
		{Category: "Food", Total: 450}, {Category: "Travel", Total: 300},
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestAnomalies_ProducesPNG(t *testing.T) {
	r := NewRenderer()
	normal := []report.ScatterPoint{{Date: day(1), Amount: 100}, {Date: day(2), Amount: 110}}
	anomalous := []report.ScatterPoint{{Date: day(3), Amount: 9000}}

	png, err := r.Anomalies(normal, anomalous)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
