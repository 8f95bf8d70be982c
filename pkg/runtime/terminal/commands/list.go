package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tally-tools/tally/pkg/runtime/terminal/console"
	"github.com/tally-tools/tally/pkg/services/tracker"
)

type ListCmd struct {
	includeHidden bool

	tracker  tracker.Tracker
	reporter *console.Reporter
}

func NewListCmd(trk tracker.Tracker, reporter *console.Reporter) *cobra.Command {
	lc := &ListCmd{tracker: trk, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked quantities",
		RunE:  lc.run,
	}

	cmd.Flags().BoolVar(&lc.includeHidden, "all", false, "Include hidden quantities")

	return cmd
}

func (lc *ListCmd) run(cmd *cobra.Command, args []string) error {
	quantities, err := lc.tracker.ListQuantityTypes(cmd.Context(), lc.includeHidden)
	if err != nil {
		return fmt.Errorf("failed to list quantities: %w", err)
	}

	return lc.reporter.QuantityList(quantities)
}
