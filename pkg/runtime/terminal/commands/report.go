package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tally-tools/tally/pkg/models/domain"
	"github.com/tally-tools/tally/pkg/runtime/terminal/console"
	"github.com/tally-tools/tally/pkg/services/tracker"
)

type ReportCmd struct {
	quantity string
	period   string

	tracker  tracker.Tracker
	reporter *console.Reporter
}

func NewReportCmd(trk tracker.Tracker, reporter *console.Reporter) *cobra.Command {
	rc := &ReportCmd{tracker: trk, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show totals grouped by period",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.quantity, "quantity", "", "Quantity name (case-insensitive)")
	cmd.Flags().StringVar(&rc.period, "period", "day", "Grouping period: day, week, month, year or all")

	_ = cmd.MarkFlagRequired("quantity")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	qt, err := rc.tracker.FindQuantityTypeByName(ctx, rc.quantity)
	if err != nil {
		return fmt.Errorf("failed to resolve quantity %q: %w", rc.quantity, err)
	}

	period := domain.GroupingPeriod(rc.period)
	totals, err := rc.tracker.GroupedTotals(ctx, qt.ID, period)
	if err != nil {
		return fmt.Errorf("failed to build report for %q: %w", qt.Name, err)
	}

	return rc.reporter.Report(qt, period, totals)
}
