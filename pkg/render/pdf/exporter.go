package pdf

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/fin-tools/expense-atlas/pkg/models/domain"
	"github.com/fin-tools/expense-atlas/pkg/services/report"
)

// Exporter encodes a report into a fixed-layout PDF document. The figures
// are written as plain text lines so a collaborator (or a test) can read
// the same totals back out of the document.
type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

func (e *Exporter) Export(rep domain.Report, charts []report.Chart) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Financial Report "+rep.ID, false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, "Financial Report", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, "Generated on: "+rep.GeneratedAt.Format("2006-01-02 15:04:05"), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, "Report ID: "+rep.ID, "", 1, "L", false, 0, "")
	doc.Ln(4)

	heading(doc, "Executive Summary")
	line(doc, fmt.Sprintf("Total Expenses: $%s", rep.Summary.Total.StringFixed(2)))
	line(doc, fmt.Sprintf("Average Transaction: $%s", rep.Summary.Average.StringFixed(2)))
	line(doc, fmt.Sprintf("Transactions: %d", rep.Summary.Count))
	line(doc, fmt.Sprintf("Anomalies Detected: %d", rep.Summary.AnomalyCount))
	doc.Ln(4)

	heading(doc, "Category Breakdown")
	for _, name := range sortedCategories(rep.CategoryTotals) {
		line(doc, fmt.Sprintf("%s: $%s", name, rep.CategoryTotals[name].StringFixed(2)))
	}
	doc.Ln(4)

	heading(doc, "Budget Status")
	for _, s := range rep.Budget {
		line(doc, fmt.Sprintf("%s: Budget $%s, Spent $%s, Remaining $%s (%s)",
			s.Category, s.Limit.StringFixed(2), s.Spent.StringFixed(2), s.Remaining.StringFixed(2), s.State))
	}
	doc.Ln(4)

	heading(doc, "Anomaly Details")
	if len(rep.Anomalies) == 0 {
		line(doc, "No anomalies detected.")
	}
	for _, tx := range rep.Anomalies {
		line(doc, fmt.Sprintf("%s  %s  $%s  %s",
			tx.Date.Format("2006-01-02"), tx.Category, tx.Amount.StringFixed(2), tx.Description))
	}

	if len(charts) > 0 {
		doc.AddPage()
		heading(doc, "Visualizations")
		for _, c := range charts {
			name := c.Kind + "_" + rep.ID
			doc.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(c.PNG))
			doc.ImageOptions(name, 10, doc.GetY(), 180, 0, true, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
			doc.Ln(6)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func heading(doc *fpdf.Fpdf, title string) {
	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
}

func line(doc *fpdf.Fpdf, text string) {
	doc.CellFormat(0, 6, text, "", 1, "L", false, 0, "")
}

func sortedCategories(totals map[string]decimal.Decimal) []string {
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
