// Package analytics computes current totals and historical breakdowns from
// raw entries. Everything here is a pure function of its inputs; callers
// own caching and invalidation.
package analytics

import (
	"sort"
	"time"

	"github.com/tally-tools/tally/pkg/models/domain"
)

// CalculateTotal reduces the entries belonging to qt that fall inside the
// quantity's aggregation window, using its aggregation type. Entries owned
// by other quantity types are ignored so callers may pass a mixed list.
func CalculateTotal(
	qt domain.QuantityType,
	entries []domain.Entry,
	now time.Time,
	weekStart time.Weekday,
) float64 {
	owned := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		if e.QuantityTypeID == qt.ID {
			owned = append(owned, e)
		}
	}

	windowed := qt.AggregationPeriod.FilterEntries(owned, now, weekStart)
	return qt.AggregationType.Aggregate(values(windowed))
}

// CalculateGroupedTotals buckets the quantity's entries by the display-time
// grouping period, reduces each bucket with the quantity's aggregation
// type, and returns the buckets newest-first. The grouping period is
// independent of the quantity's own aggregation period.
func CalculateGroupedTotals(
	qt domain.QuantityType,
	entries []domain.Entry,
	period domain.GroupingPeriod,
	weekStart time.Weekday,
) []domain.GroupedTotal {
	owned := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		if e.QuantityTypeID == qt.ID {
			owned = append(owned, e)
		}
	}

	if period == domain.GroupByAll {
		return []domain.GroupedTotal{{
			PeriodLabel: period.Label(time.Time{}),
			Total:       qt.AggregationType.Aggregate(values(owned)),
			Count:       len(owned),
			BucketStart: time.Time{},
		}}
	}

	buckets := make(map[time.Time][]float64)
	for _, e := range owned {
		start := period.BucketStart(e.Timestamp, weekStart)
		buckets[start] = append(buckets[start], e.Value)
	}

	totals := make([]domain.GroupedTotal, 0, len(buckets))
	for start, vals := range buckets {
		totals = append(totals, domain.GroupedTotal{
			PeriodLabel: period.Label(start),
			Total:       qt.AggregationType.Aggregate(vals),
			Count:       len(vals),
			BucketStart: start,
		})
	}

	sort.Slice(totals, func(i, j int) bool {
		return totals[i].BucketStart.After(totals[j].BucketStart)
	})
	return totals
}

func values(entries []domain.Entry) []float64 {
	vals := make([]float64, 0, len(entries))
	for _, e := range entries {
		vals = append(vals, e.Value)
	}
	return vals
}
