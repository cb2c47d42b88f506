package main

import (
	"fmt"
	"os"

	"github.com/fin-tools/expense-atlas/pkg/render/chart"
	"github.com/fin-tools/expense-atlas/pkg/render/pdf"
	"github.com/fin-tools/expense-atlas/pkg/runtime/terminal"
	"github.com/fin-tools/expense-atlas/pkg/services/config"
	"github.com/fin-tools/expense-atlas/pkg/services/report"
	"github.com/fin-tools/expense-atlas/pkg/services/session"
	"github.com/fin-tools/expense-atlas/pkg/store/artifact"
)

func main() {
	cfg, err := config.Load(os.Getenv("EXPENSE_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	builder := report.NewBuilder(
		chart.NewRenderer(),
		pdf.NewExporter(),
		artifact.NewFS(cfg.ArtifactRoot),
	)

	cli := terminal.NewCLI(terminal.Options{
		Session: session.New(session.Options{
			Taxonomy:   cfg.DomainTaxonomy(),
			Fallback:   cfg.FallbackCategory,
			Budgets:    cfg.DomainBudgets(),
			Normalizer: cfg.IngestSettings(),
			Anomaly:    cfg.AnomalySettings(),
			Budget:     cfg.BudgetSettings(),
			Builder:    builder,
		}),
		Output: os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
