package tracker

import (
	"context"
	"fmt"

	"github.com/tally-tools/tally/pkg/models/domain"
)

// SeedDefaults creates a starter set of quantity types on a fresh database.
// It is a no-op once any quantity type exists.
func (s *Service) SeedDefaults(ctx context.Context) error {
	count, err := s.quantities.Count(ctx)
	if err != nil {
		return fmt.Errorf("count quantity types: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []QuantityTypeParams{
		{Name: "Minutes Read", ValueFormat: domain.ValueFormatDuration, AggregationType: domain.AggregationSum, AggregationPeriod: domain.PeriodDaily, Icon: "book"},
		{Name: "Steps", ValueFormat: domain.ValueFormatInteger, AggregationType: domain.AggregationSum, AggregationPeriod: domain.PeriodDaily, Icon: "walk"},
		{Name: "Calories", ValueFormat: domain.ValueFormatInteger, AggregationType: domain.AggregationSum, AggregationPeriod: domain.PeriodDaily, Icon: "flame"},
		{Name: "Water (oz)", ValueFormat: domain.ValueFormatDecimal, AggregationType: domain.AggregationSum, AggregationPeriod: domain.PeriodDaily, Icon: "drop"},
	}

	for _, params := range defaults {
		if _, err := s.CreateQuantityType(ctx, params); err != nil {
			return fmt.Errorf("seed %q: %w", params.Name, err)
		}
	}
	return nil
}
