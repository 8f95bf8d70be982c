package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tally-tools/tally/pkg/services/export"
)

type ExportCmd struct {
	output string

	exporter *export.Exporter
}

func NewExportCmd(exporter *export.Exporter) *cobra.Command {
	ec := &ExportCmd{exporter: exporter}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all entries as CSV",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.output, "output", "", "Output file (default tally_export_<date>.csv, '-' for stdout)")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if ec.output == "-" {
		return ec.exporter.WriteCSV(ctx, cmd.OutOrStdout())
	}

	path := ec.output
	if path == "" {
		path = export.Filename(time.Now())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := ec.exporter.WriteCSV(ctx, f); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported entries to %s\n", path)
	return nil
}
