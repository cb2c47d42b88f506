package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fin-tools/expense-atlas/pkg/runtime/terminal/export"
	"github.com/fin-tools/expense-atlas/pkg/services/ingest"
	"github.com/fin-tools/expense-atlas/pkg/services/session"
)

type QueryCmd struct {
	filePath   string
	sample     bool
	sampleRows int
	session    *session.Session
	reporter   *export.Reporter
}

func NewQueryCmd(sess *session.Session, reporter *export.Reporter) *cobra.Command {
	qc := &QueryCmd{session: sess, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "query [text]",
		Short: "Ask a question about the loaded expense table",
		Args:  cobra.MinimumNArgs(1),
		RunE:  qc.run,
	}

	cmd.Flags().StringVar(&qc.filePath, "file", "", "Path to a CSV expense table")
	cmd.Flags().BoolVar(&qc.sample, "sample", false, "Query generated sample data instead of a file")
	cmd.Flags().IntVar(&qc.sampleRows, "sample-rows", 100, "Number of sample rows to generate")

	return cmd
}

func (qc *QueryCmd) run(cmd *cobra.Command, args []string) error {
	records, err := qc.records()
	if err != nil {
		return err
	}
	if records != nil {
		if _, err := qc.session.LoadTable(cmd.Context(), records); err != nil {
			return fmt.Errorf("failed to load expense table: %w", err)
		}
	}

	result := qc.session.Query(strings.Join(args, " "))
	return qc.reporter.HandleQuery(result)
}

func (qc *QueryCmd) records() ([]ingest.Record, error) {
	switch {
	case qc.sample:
		return ingest.SampleTable(qc.sampleRows, 42), nil
	case qc.filePath != "":
		f, err := os.Open(qc.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", qc.filePath, err)
		}
		defer f.Close()
		return ingest.ReadCSV(f)
	default:
		return nil, nil
	}
}
