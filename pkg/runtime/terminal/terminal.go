package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fin-tools/expense-atlas/pkg/runtime/terminal/commands"
	"github.com/fin-tools/expense-atlas/pkg/runtime/terminal/export"
	"github.com/fin-tools/expense-atlas/pkg/services/session"
)

// CLI represents the command-line interface
type CLI struct {
	session  *session.Session
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Session *session.Session
	Output  io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		session:  opts.Session,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Expense analysis tool",
	}

	cmd.AddCommand(commands.NewAnalyzeCmd(cli.session, cli.reporter))
	cmd.AddCommand(commands.NewQueryCmd(cli.session, cli.reporter))

	return cmd
}
