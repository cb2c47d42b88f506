package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fin-tools/expense-atlas/pkg/models/domain"
	"github.com/fin-tools/expense-atlas/pkg/services/anomaly"
	"github.com/fin-tools/expense-atlas/pkg/services/budget"
	"github.com/fin-tools/expense-atlas/pkg/services/categorize"
	"github.com/fin-tools/expense-atlas/pkg/services/ingest"
	"github.com/fin-tools/expense-atlas/pkg/services/query"
	"github.com/fin-tools/expense-atlas/pkg/services/report"
)

// Session owns the state of one analysis session: the current transaction
// table, the taxonomy and the budget limits. LoadTable and UpdateBudgets
// are the only mutators; both stage their work off-lock and swap it in
// atomically, so a reader never observes a partially loaded table. All
// readers take consistent snapshots.
type Session struct {
	mu sync.RWMutex

	taxonomy domain.Taxonomy
	fallback string
	budgets  domain.Budgets

	table  []domain.Transaction
	labels []domain.AnomalyLabel
	notice *anomaly.Notice
	diag   ingest.Diagnostics

	normalizer ingest.Settings
	detector   *anomaly.Detector
	budgetCfg  budget.Settings
	engine     *query.Engine
	builder    *report.Builder
}

// Options configure a session; zero values fall back to the defaults the
// analysis components define.
type Options struct {
	Taxonomy   domain.Taxonomy
	Fallback   string
	Budgets    domain.Budgets
	Normalizer ingest.Settings
	Anomaly    anomaly.Settings
	Budget     budget.Settings
	Builder    *report.Builder
}

func New(opts Options) *Session {
	if opts.Taxonomy == nil {
		opts.Taxonomy = categorize.DefaultTaxonomy()
	}
	if opts.Fallback == "" {
		opts.Fallback = categorize.DefaultFallback
	}
	budgets := make(domain.Budgets, len(opts.Budgets))
	for k, v := range opts.Budgets {
		budgets[k] = v
	}
	return &Session{
		taxonomy:   opts.Taxonomy,
		fallback:   opts.Fallback,
		budgets:    budgets,
		normalizer: opts.Normalizer,
		detector:   anomaly.NewDetector(opts.Anomaly),
		budgetCfg:  opts.Budget,
		engine:     query.NewEngine(opts.Taxonomy),
		builder:    opts.Builder,
	}
}

// LoadTable replaces the session table: the raw rows run through
// normalize, categorize and anomaly scoring, then the results are swapped
// in as one unit. A SchemaError leaves the previous table untouched.
func (s *Session) LoadTable(ctx context.Context, records []ingest.Record) (ingest.Diagnostics, error) {
	txs, diag, err := ingest.Normalize(records, s.normalizer)
	if err != nil {
		return diag, err
	}
	txs = categorize.Apply(txs, s.taxonomy, s.fallback)
	labels, notice := s.detector.Score(txs)
	if notice != nil {
		zerolog.Ctx(ctx).Info().Str("reason", notice.Reason).Msg("anomaly scoring degraded")
	}

	s.mu.Lock()
	s.table, s.labels, s.notice, s.diag = txs, labels, notice, diag
	s.mu.Unlock()
	return diag, nil
}

// UpdateBudgets applies a partial update: limits for the named categories
// are replaced, every other category keeps its previous limit.
func (s *Session) UpdateBudgets(update domain.Budgets) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for category, limit := range update {
		s.budgets[category] = limit
	}
}

// Budgets returns a copy of the current limits.
func (s *Session) Budgets() domain.Budgets {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(domain.Budgets, len(s.budgets))
	for k, v := range s.budgets {
		out[k] = v
	}
	return out
}

// Table returns a copy of the categorized table.
func (s *Session) Table() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Transaction(nil), s.table...)
}

// Diagnostics returns the normalizer diagnostics of the last load.
func (s *Session) Diagnostics() ingest.Diagnostics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.diag
}

// Notice returns the soft anomaly-scoring notice of the last load, if any.
func (s *Session) Notice() *anomaly.Notice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notice
}

// BudgetStatus evaluates budgets against the current table.
func (s *Session) BudgetStatus() []domain.BudgetStatus {
	s.mu.RLock()
	txs, budgets := s.table, s.budgets
	statuses := budget.Evaluate(txs, budgets, s.budgetCfg)
	s.mu.RUnlock()
	return statuses
}

// Query answers an ad-hoc filter request against the current table.
func (s *Session) Query(text string) domain.QueryResult {
	s.mu.RLock()
	txs := s.table
	statuses := budget.Evaluate(txs, s.budgets, s.budgetCfg)
	s.mu.RUnlock()
	return s.engine.Run(text, txs, statuses)
}

// BuildReport generates a report from a snapshot of the current state.
// The snapshot is taken under the read lock; the CPU-bound rendering runs
// outside it, so report generation never blocks loads longer than the
// copy itself.
func (s *Session) BuildReport(ctx context.Context, cfg report.Config) (domain.Report, error) {
	s.mu.RLock()
	txs := append([]domain.Transaction(nil), s.table...)
	labels := append([]domain.AnomalyLabel(nil), s.labels...)
	statuses := budget.Evaluate(txs, s.budgets, s.budgetCfg)
	s.mu.RUnlock()

	return s.builder.Build(ctx, report.Input{
		Transactions: txs,
		Labels:       labels,
		Budget:       statuses,
		Config:       cfg,
	})
}
