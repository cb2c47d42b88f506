package api

import (
	"time"

	"github.com/fin-tools/expense-atlas/pkg/models/domain"
)

type Transaction struct {
	Date        string `json:"date"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

type LoadTableResponse struct {
	Rows     int      `json:"rows"`
	Dropped  int      `json:"dropped"`
	Warnings []string `json:"warnings,omitempty"`
	Notice   string   `json:"notice,omitempty"`
}

type SampleTableRequest struct {
	Rows int   `json:"rows"`
	Seed int64 `json:"seed"`
}

type BudgetStatus struct {
	Category  string `json:"category"`
	Limit     string `json:"limit"`
	Spent     string `json:"spent"`
	Remaining string `json:"remaining"`
	State     string `json:"state"`
}

type QueryRequest struct {
	Query string `json:"query"`
}

type QueryResponse struct {
	Rows    []Transaction  `json:"rows,omitempty"`
	Budget  []BudgetStatus `json:"budget,omitempty"`
	Message string         `json:"message,omitempty"`
}

type ArtifactRef struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	URI  string `json:"uri"`
}

type Summary struct {
	Total        string `json:"total"`
	Average      string `json:"average"`
	Count        int    `json:"count"`
	ExpenseCount int    `json:"expense_count"`
	AnomalyCount int    `json:"anomaly_count"`
	TopCategory  string `json:"top_category"`
}

type ReportRequest struct {
	SkipCharts   bool `json:"skip_charts"`
	SkipDocument bool `json:"skip_document"`
}

type Report struct {
	ID             string            `json:"id"`
	GeneratedAt    time.Time         `json:"generated_at"`
	Summary        Summary           `json:"summary"`
	CategoryTotals map[string]string `json:"category_totals"`
	Budget         []BudgetStatus    `json:"budget"`
	Anomalies      []Transaction     `json:"anomalies,omitempty"`
	Artifacts      []ArtifactRef     `json:"artifacts,omitempty"`
	Document       *ArtifactRef      `json:"document,omitempty"`
	Warnings       []string          `json:"warnings,omitempty"`
}

type Error struct {
	Error string `json:"error"`
}

func FromDomainTransaction(tx domain.Transaction) Transaction {
	return Transaction{
		Date:        tx.Date.Format("2006-01-02"),
		Category:    tx.Category,
		Amount:      tx.Amount.StringFixed(2),
		Description: tx.Description,
	}
}

func FromDomainTransactions(txs []domain.Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, FromDomainTransaction(tx))
	}
	return out
}

func FromDomainBudgetStatus(statuses []domain.BudgetStatus) []BudgetStatus {
	out := make([]BudgetStatus, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, BudgetStatus{
			Category:  s.Category,
			Limit:     s.Limit.StringFixed(2),
			Spent:     s.Spent.StringFixed(2),
			Remaining: s.Remaining.StringFixed(2),
			State:     string(s.State),
		})
	}
	return out
}

func FromDomainReport(rep domain.Report) Report {
	totals := make(map[string]string, len(rep.CategoryTotals))
	for name, total := range rep.CategoryTotals {
		totals[name] = total.StringFixed(2)
	}

	out := Report{
		ID:          rep.ID,
		GeneratedAt: rep.GeneratedAt,
		Summary: Summary{
			Total:        rep.Summary.Total.StringFixed(2),
			Average:      rep.Summary.Average.StringFixed(2),
			Count:        rep.Summary.Count,
			ExpenseCount: rep.Summary.ExpenseCount,
			AnomalyCount: rep.Summary.AnomalyCount,
			TopCategory:  rep.Summary.TopCategory,
		},
		CategoryTotals: totals,
		Budget:         FromDomainBudgetStatus(rep.Budget),
		Anomalies:      FromDomainTransactions(rep.Anomalies),
		Warnings:       rep.Warnings,
	}

	for _, ref := range rep.Artifacts {
		out.Artifacts = append(out.Artifacts, ArtifactRef{ID: ref.ID, Kind: ref.Kind, URI: ref.URI})
	}
	if rep.Document != nil {
		out.Document = &ArtifactRef{ID: rep.Document.ID, Kind: rep.Document.Kind, URI: rep.Document.URI}
	}
	return out
}
