package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fin-tools/expense-atlas/pkg/runtime/terminal/export"
	"github.com/fin-tools/expense-atlas/pkg/services/ingest"
	"github.com/fin-tools/expense-atlas/pkg/services/report"
	"github.com/fin-tools/expense-atlas/pkg/services/session"
)

type AnalyzeCmd struct {
	filePath   string
	sample     bool
	sampleRows int
	sampleSeed int64
	noCharts   bool
	noDocument bool
	session    *session.Session
	reporter   *export.Reporter
}

func NewAnalyzeCmd(sess *session.Session, reporter *export.Reporter) *cobra.Command {
	ac := &AnalyzeCmd{session: sess, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze an expense table and produce a report",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.filePath, "file", "", "Path to a CSV expense table")
	cmd.Flags().BoolVar(&ac.sample, "sample", false, "Analyze generated sample data instead of a file")
	cmd.Flags().IntVar(&ac.sampleRows, "sample-rows", 100, "Number of sample rows to generate")
	cmd.Flags().Int64Var(&ac.sampleSeed, "sample-seed", 42, "Seed for sample data generation")
	cmd.Flags().BoolVar(&ac.noCharts, "no-charts", false, "Skip chart generation")
	cmd.Flags().BoolVar(&ac.noDocument, "no-document", false, "Skip PDF document export")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	records, err := ac.records()
	if err != nil {
		return err
	}

	diag, err := ac.session.LoadTable(ctx, records)
	if err != nil {
		return fmt.Errorf("failed to load expense table: %w", err)
	}
	for _, w := range diag.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	if notice := ac.session.Notice(); notice != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "notice: %s\n", notice.Reason)
	}

	cfg := report.DefaultConfig()
	if ac.noCharts {
		cfg.Trend = false
		cfg.Breakdown = false
		cfg.Anomalies = false
	}
	if ac.noDocument {
		cfg.Document = false
	}

	rep, err := ac.session.BuildReport(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	return ac.reporter.Handle(&rep)
}

func (ac *AnalyzeCmd) records() ([]ingest.Record, error) {
	switch {
	case ac.sample:
		return ingest.SampleTable(ac.sampleRows, ac.sampleSeed), nil
	case ac.filePath != "":
		f, err := os.Open(ac.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", ac.filePath, err)
		}
		defer f.Close()
		return ingest.ReadCSV(f)
	default:
		return nil, fmt.Errorf("either --file or --sample is required")
	}
}
