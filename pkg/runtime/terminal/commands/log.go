package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tally-tools/tally/pkg/runtime/terminal/console"
	"github.com/tally-tools/tally/pkg/services/assistant"
)

type LogCmd struct {
	quantity string
	value    string
	notes    string

	assistant *assistant.Service
	reporter  *console.Reporter
}

func NewLogCmd(asst *assistant.Service, reporter *console.Reporter) *cobra.Command {
	lc := &LogCmd{assistant: asst, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a value against a quantity",
		RunE:  lc.run,
	}

	cmd.Flags().StringVar(&lc.quantity, "quantity", "", "Quantity name (case-insensitive)")
	cmd.Flags().StringVar(&lc.value, "value", "", "Value to log, e.g. 8, 2:30 or '1.5 hours'")
	cmd.Flags().StringVar(&lc.notes, "notes", "", "Optional notes for the entry")

	_ = cmd.MarkFlagRequired("quantity")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func (lc *LogCmd) run(cmd *cobra.Command, args []string) error {
	result, err := lc.assistant.Log(cmd.Context(), lc.quantity, lc.value, lc.notes)
	if err != nil {
		return fmt.Errorf("failed to log %q against %q: %w", lc.value, lc.quantity, err)
	}

	return lc.reporter.Logged(result.QuantityType, result.Entry)
}
