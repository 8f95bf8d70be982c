package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tally-tools/tally/pkg/runtime/terminal/commands"
	"github.com/tally-tools/tally/pkg/runtime/terminal/console"
	"github.com/tally-tools/tally/pkg/services/assistant"
	"github.com/tally-tools/tally/pkg/services/export"
	"github.com/tally-tools/tally/pkg/services/tracker"
)

// CLI represents the command-line interface
type CLI struct {
	tracker   tracker.Tracker
	assistant *assistant.Service
	exporter  *export.Exporter
	reporter  *console.Reporter
	rootCmd   *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Tracker   tracker.Tracker
	Assistant *assistant.Service
	Exporter  *export.Exporter
	Output    io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		tracker:   opts.Tracker,
		assistant: opts.Assistant,
		exporter:  opts.Exporter,
		reporter:  console.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tally",
		Short: "Personal quantity tracker",
	}

	cmd.AddCommand(commands.NewAddCmd(cli.tracker))
	cmd.AddCommand(commands.NewLogCmd(cli.assistant, cli.reporter))
	cmd.AddCommand(commands.NewTotalCmd(cli.tracker, cli.reporter))
	cmd.AddCommand(commands.NewReportCmd(cli.tracker, cli.reporter))
	cmd.AddCommand(commands.NewListCmd(cli.tracker, cli.reporter))
	cmd.AddCommand(commands.NewExportCmd(cli.exporter))

	return cmd
}
