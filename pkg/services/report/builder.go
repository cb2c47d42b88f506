package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fin-tools/expense-atlas/pkg/models/domain"
	"github.com/fin-tools/expense-atlas/pkg/services/budget"
)

// Config selects which artifacts a report includes.
type Config struct {
	Trend     bool
	Breakdown bool
	Anomalies bool
	Document  bool
}

func DefaultConfig() Config {
	return Config{Trend: true, Breakdown: true, Anomalies: true, Document: true}
}

// Input carries everything the builder consumes. Labels must align with
// Transactions by index; a nil slice means no anomaly scoring ran.
type Input struct {
	Transactions []domain.Transaction
	Labels       []domain.AnomalyLabel
	Budget       []domain.BudgetStatus
	Config       Config
}

type Builder struct {
	renderer ChartRenderer
	exporter DocumentExporter
	store    ArtifactStore
}

func NewBuilder(renderer ChartRenderer, exporter DocumentExporter, store ArtifactStore) *Builder {
	return &Builder{renderer: renderer, exporter: exporter, store: store}
}

// Build assembles a report from already-analyzed inputs. The result is a
// self-contained snapshot: summary figures and rows are copied, artifacts
// are stored under the fresh report id. Artifact failures are isolated:
// each failed chart or export lands in Warnings and everything else is
// still produced. Two calls on identical input yield distinct ids and
// artifact ids but identical summary statistics.
func (b *Builder) Build(ctx context.Context, in Input) (domain.Report, error) {
	logger := zerolog.Ctx(ctx)

	rep := domain.Report{
		ID:             uuid.NewString(),
		GeneratedAt:    time.Now().UTC(),
		Summary:        Summarize(in.Transactions, in.Labels),
		CategoryTotals: budget.SpentByCategory(in.Transactions),
		Budget:         append([]domain.BudgetStatus(nil), in.Budget...),
		Anomalies:      anomalousRows(in.Transactions, in.Labels),
	}

	var charts []Chart
	if b.renderer != nil {
		if in.Config.Trend {
			b.addChart(ctx, &rep, &charts, logger, domain.ArtifactTrend, func() ([]byte, error) {
				return b.renderer.Trend(dailyTotals(in.Transactions))
			})
		}
		if in.Config.Breakdown {
			b.addChart(ctx, &rep, &charts, logger, domain.ArtifactBreakdown, func() ([]byte, error) {
				return b.renderer.Breakdown(sortedCategoryTotals(rep.CategoryTotals))
			})
		}
		if in.Config.Anomalies && len(rep.Anomalies) > 0 {
			normal, anomalous := scatterPoints(in.Transactions, in.Labels)
			b.addChart(ctx, &rep, &charts, logger, domain.ArtifactAnomalies, func() ([]byte, error) {
				return b.renderer.Anomalies(normal, anomalous)
			})
		}
	}

	if in.Config.Document && b.exporter != nil {
		if data, err := b.exporter.Export(rep, charts); err != nil {
			b.warn(&rep, logger, domain.ArtifactDocument, err)
		} else if ref, err := b.store.Put(ctx, rep.ID, domain.ArtifactDocument+".pdf", data); err != nil {
			b.warn(&rep, logger, domain.ArtifactDocument, err)
		} else {
			rep.Document = &ref
		}
	}

	return rep, nil
}

func (b *Builder) addChart(
	ctx context.Context,
	rep *domain.Report,
	charts *[]Chart,
	logger *zerolog.Logger,
	kind string,
	render func() ([]byte, error),
) {
	data, err := render()
	if err != nil {
		b.warn(rep, logger, kind, err)
		return
	}
	ref, err := b.store.Put(ctx, rep.ID, kind+".png", data)
	if err != nil {
		b.warn(rep, logger, kind, err)
		return
	}
	rep.Artifacts = append(rep.Artifacts, ref)
	*charts = append(*charts, Chart{Kind: kind, PNG: data})
}

func (b *Builder) warn(rep *domain.Report, logger *zerolog.Logger, kind string, err error) {
	aerr := &domain.ArtifactError{Kind: kind, Err: err}
	logger.Warn().Err(aerr).Str("report_id", rep.ID).Msg("artifact generation failed")
	rep.Warnings = append(rep.Warnings, aerr.Error())
}

// Summarize computes the headline figures. Total covers positive amounts
// only, so it equals the sum of per-category spend exactly.
func Summarize(txs []domain.Transaction, labels []domain.AnomalyLabel) domain.Summary {
	s := domain.Summary{Count: len(txs)}

	total := decimal.Zero
	for _, tx := range txs {
		if tx.IsExpense() {
			total = total.Add(tx.Amount)
			s.ExpenseCount++
		}
	}
	s.Total = total
	if s.ExpenseCount > 0 {
		s.Average = total.Div(decimal.NewFromInt(int64(s.ExpenseCount))).Round(2)
	}

	for _, l := range labels {
		if l.Anomalous {
			s.AnomalyCount++
		}
	}

	s.TopCategory = topCategory(budget.SpentByCategory(txs))
	return s
}

// topCategory picks the category with the largest spend; ties break
// alphabetically so the answer is deterministic.
func topCategory(totals map[string]decimal.Decimal) string {
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	var top string
	best := decimal.Zero
	for _, name := range names {
		if totals[name].GreaterThan(best) {
			top, best = name, totals[name]
		}
	}
	return top
}

func anomalousRows(txs []domain.Transaction, labels []domain.AnomalyLabel) []domain.Transaction {
	var rows []domain.Transaction
	for i, l := range labels {
		if l.Anomalous && i < len(txs) {
			rows = append(rows, txs[i])
		}
	}
	return rows
}

func dailyTotals(txs []domain.Transaction) []TrendPoint {
	byDay := make(map[time.Time]decimal.Decimal)
	for _, tx := range txs {
		day := tx.Date.Truncate(24 * time.Hour)
		byDay[day] = byDay[day].Add(tx.Amount)
	}

	points := make([]TrendPoint, 0, len(byDay))
	for day, total := range byDay {
		points = append(points, TrendPoint{Day: day, Total: total.InexactFloat64()})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Day.Before(points[j].Day) })
	return points
}

func sortedCategoryTotals(totals map[string]decimal.Decimal) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(totals))
	for name, total := range totals {
		out = append(out, CategoryTotal{Category: name, Total: total.InexactFloat64()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

func scatterPoints(txs []domain.Transaction, labels []domain.AnomalyLabel) (normal, anomalous []ScatterPoint) {
	for i, tx := range txs {
		p := ScatterPoint{Date: tx.Date, Amount: tx.Amount.InexactFloat64()}
		if i < len(labels) && labels[i].Anomalous {
			anomalous = append(anomalous, p)
		} else {
			normal = append(normal, p)
		}
	}
	return normal, anomalous
}
