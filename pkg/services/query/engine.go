package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fin-tools/expense-atlas/pkg/models/domain"
)

// Engine answers ad-hoc filter requests against a categorized table. It
// recognizes a small set of intents through case-insensitive keyword
// presence (category names, month names, year digits, the word "budget")
// rather than real natural-language parsing. Running the same request
// twice against unchanged data returns identical results.
type Engine struct {
	taxonomy domain.Taxonomy
}

func NewEngine(taxonomy domain.Taxonomy) *Engine {
	return &Engine{taxonomy: taxonomy}
}

var monthNames = []struct {
	name  string
	month time.Month
}{
	{"january", time.January}, {"february", time.February}, {"march", time.March},
	{"april", time.April}, {"may", time.May}, {"june", time.June},
	{"july", time.July}, {"august", time.August}, {"september", time.September},
	{"october", time.October}, {"november", time.November}, {"december", time.December},
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

const unrecognizedHint = `Query not recognized. Try "Show Food expenses", "Check budget status", or "Show Travel expenses for January 2025".`

// Run evaluates a single request. It never fails: unrecognized requests
// and unknown categories produce an explanatory message with no rows.
func (e *Engine) Run(text string, txs []domain.Transaction, budget []domain.BudgetStatus) domain.QueryResult {
	lowered := strings.ToLower(text)

	if strings.Contains(lowered, "budget") {
		return domain.QueryResult{Budget: budget, Message: budgetSummary(budget)}
	}

	category, ok := e.matchCategory(lowered)
	if !ok {
		return domain.QueryResult{Message: unrecognizedHint}
	}

	start, end, hasRange := matchPeriod(lowered)
	var rows []domain.Transaction
	for _, tx := range txs {
		if tx.Category != category {
			continue
		}
		if hasRange && (tx.Date.Before(start) || !tx.Date.Before(end)) {
			continue
		}
		rows = append(rows, tx)
	}

	if len(rows) == 0 {
		msg := fmt.Sprintf("No %s expenses found", category)
		if hasRange {
			msg += " for " + start.Format("January 2006")
		}
		return domain.QueryResult{Message: msg + "."}
	}
	return domain.QueryResult{Rows: rows}
}

// matchCategory returns the first taxonomy category, in declaration
// order, whose name appears in the request.
func (e *Engine) matchCategory(lowered string) (string, bool) {
	for _, cat := range e.taxonomy {
		if strings.Contains(lowered, strings.ToLower(cat.Name)) {
			return cat.Name, true
		}
	}
	return "", false
}

// matchPeriod detects a month-granularity range: a month name plus an
// optional 4-digit year (current year when absent). The returned range is
// [start, end).
func matchPeriod(lowered string) (time.Time, time.Time, bool) {
	for _, m := range monthNames {
		if !strings.Contains(lowered, m.name) {
			continue
		}
		year := time.Now().Year()
		if y := yearPattern.FindString(lowered); y != "" {
			year, _ = strconv.Atoi(y)
		}
		start := time.Date(year, m.month, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0), true
	}
	return time.Time{}, time.Time{}, false
}

func budgetSummary(budget []domain.BudgetStatus) string {
	if len(budget) == 0 {
		return "No budgets configured."
	}
	var b strings.Builder
	b.WriteString("Budget status:")
	for _, s := range budget {
		fmt.Fprintf(&b, "\n%s: limit $%s, spent $%s, remaining $%s (%s)",
			s.Category,
			s.Limit.StringFixed(2),
			s.Spent.StringFixed(2),
			s.Remaining.StringFixed(2),
			s.State,
		)
	}
	return b.String()
}
