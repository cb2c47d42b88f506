package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArtifactRef points at a rendered output (chart image or exported
// document) stored under a report-scoped identifier.
type ArtifactRef struct {
	ID   string
	Kind string
	URI  string
}

// Artifact kinds produced by the report builder.
const (
	ArtifactTrend     = "expense_trend"
	ArtifactBreakdown = "category_breakdown"
	ArtifactAnomalies = "anomalies"
	ArtifactDocument  = "financial_report"
)

// Summary holds the headline figures of a report. Total sums positive
// amounts only, so it always equals the sum of per-category spend in the
// budget statuses.
type Summary struct {
	Total        decimal.Decimal
	Average      decimal.Decimal
	Count        int
	ExpenseCount int
	AnomalyCount int
	TopCategory  string
}

// Report is an immutable snapshot of one analysis run. Every request
// produces a new report with a fresh id; nothing in a report changes after
// it is built, even if the source table is reloaded afterwards.
type Report struct {
	ID             string
	GeneratedAt    time.Time
	Summary        Summary
	CategoryTotals map[string]decimal.Decimal
	Budget         []BudgetStatus
	Anomalies      []Transaction
	Artifacts      []ArtifactRef
	Document       *ArtifactRef
	Warnings       []string
}
