package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tally-tools/tally/pkg/runtime/terminal/console"
	"github.com/tally-tools/tally/pkg/services/tracker"
)

type TotalCmd struct {
	quantity string

	tracker  tracker.Tracker
	reporter *console.Reporter
}

func NewTotalCmd(trk tracker.Tracker, reporter *console.Reporter) *cobra.Command {
	tc := &TotalCmd{tracker: trk, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "total",
		Short: "Show the current total for a quantity",
		RunE:  tc.run,
	}

	cmd.Flags().StringVar(&tc.quantity, "quantity", "", "Quantity name (case-insensitive)")

	_ = cmd.MarkFlagRequired("quantity")

	return cmd
}

func (tc *TotalCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	qt, err := tc.tracker.FindQuantityTypeByName(ctx, tc.quantity)
	if err != nil {
		return fmt.Errorf("failed to resolve quantity %q: %w", tc.quantity, err)
	}

	total, err := tc.tracker.Total(ctx, qt.ID)
	if err != nil {
		return fmt.Errorf("failed to compute total for %q: %w", qt.Name, err)
	}

	return tc.reporter.Total(qt, total)
}
