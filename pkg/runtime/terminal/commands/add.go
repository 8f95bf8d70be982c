package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tally-tools/tally/pkg/models/domain"
	"github.com/tally-tools/tally/pkg/services/tracker"
)

type AddCmd struct {
	name        string
	format      string
	aggregation string
	period      string
	icon        string
	color       string

	tracker tracker.Tracker
}

func NewAddCmd(trk tracker.Tracker) *cobra.Command {
	ac := &AddCmd{tracker: trk}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new tracked quantity",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.name, "name", "", "Quantity name")
	cmd.Flags().StringVar(&ac.format, "format", "integer", "Value format: integer, decimal or duration")
	cmd.Flags().StringVar(&ac.aggregation, "aggregation", "sum", "Aggregation: sum, average, median, min, max or count")
	cmd.Flags().StringVar(&ac.period, "period", "daily", "Aggregation period: allTime, daily, weekly or monthly")
	cmd.Flags().StringVar(&ac.icon, "icon", "", "Icon name")
	cmd.Flags().StringVar(&ac.color, "color", "", "Color in hex, e.g. #007AFF")

	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func (ac *AddCmd) run(cmd *cobra.Command, args []string) error {
	qt, err := ac.tracker.CreateQuantityType(cmd.Context(), tracker.QuantityTypeParams{
		Name:              ac.name,
		ValueFormat:       domain.ValueFormat(ac.format),
		AggregationType:   domain.AggregationType(ac.aggregation),
		AggregationPeriod: domain.AggregationPeriod(ac.period),
		Icon:              ac.icon,
		ColorHex:          ac.color,
	})
	if err != nil {
		return fmt.Errorf("failed to create quantity %q: %w", ac.name, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s, %s per %s)\n",
		qt.Name, qt.ValueFormat.DisplayName(), qt.AggregationType, qt.AggregationPeriod)
	return nil
}
