package export

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/template"

	"github.com/shopspring/decimal"

	"github.com/fin-tools/expense-atlas/pkg/models/domain"
)

// Reporter outputs reports and query results to the console in a
// formatted text form.
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

type categoryRow struct {
	Name  string
	Total decimal.Decimal
}

func (c *Reporter) funcMap() template.FuncMap {
	return template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return "$" + d.StringFixed(2)
		},
		"categories": func(totals map[string]decimal.Decimal) []categoryRow {
			rows := make([]categoryRow, 0, len(totals))
			for name, total := range totals {
				rows = append(rows, categoryRow{Name: name, Total: total})
			}
			sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
			return rows
		},
	}
}

func (c *Reporter) Handle(report *domain.Report) error {
	tmpl := `
Financial Report {{.ID}}
Generated: {{.GeneratedAt.Format "2006-01-02 15:04:05"}}

=== Summary ===
Total Expenses: {{money .Summary.Total}}
Average Transaction: {{money .Summary.Average}}
Transactions: {{.Summary.Count}}
Anomalies Detected: {{.Summary.AnomalyCount}}
Top Category: {{.Summary.TopCategory}}

=== Category Breakdown ===
{{range categories .CategoryTotals}}{{.Name}}: {{money .Total}}
{{end}}
{{- if .Budget}}
=== Budget Status ===
{{range .Budget}}{{.Category}}: limit {{money .Limit}}, spent {{money .Spent}}, remaining {{money .Remaining}} ({{.State}})
{{end}}
{{- end}}
{{- if .Anomalies}}
=== Anomalies ===
{{range .Anomalies}}- {{.Date.Format "2006-01-02"}} {{.Description}} ({{.Category}}): {{money .Amount}}
{{end}}
{{- end}}
{{- if .Artifacts}}
=== Artifacts ===
{{range .Artifacts}}- {{.Kind}}: {{.URI}}
{{end}}
{{- end}}
{{- if .Document}}
Document: {{.Document.URI}}
{{- end}}
{{- range .Warnings}}
warning: {{.}}
{{- end}}
`
	t, err := template.New("report").Funcs(c.funcMap()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

func (c *Reporter) HandleQuery(result domain.QueryResult) error {
	tmpl := `
{{- if .Message}}{{.Message}}
{{end}}
{{- range .Budget}}{{.Category}}: limit {{money .Limit}}, spent {{money .Spent}}, remaining {{money .Remaining}} ({{.State}})
{{end}}
{{- range .Rows}}{{.Date.Format "2006-01-02"}}  {{money .Amount}}  {{.Category}}  {{.Description}}
{{end}}`
	t, err := template.New("query").Funcs(c.funcMap()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, result)
}
