package domain

import (
	"fmt"
	"time"
)

// DefaultWeekStart is the week-start convention used when a caller does not
// configure one (see services/config).
const DefaultWeekStart = time.Monday

// AggregationPeriod is the rolling time window selecting which entries count
// toward a quantity's current total.
type AggregationPeriod string

const (
	PeriodAllTime AggregationPeriod = "allTime"
	PeriodDaily   AggregationPeriod = "daily"
	PeriodWeekly  AggregationPeriod = "weekly"
	PeriodMonthly AggregationPeriod = "monthly"
)

func AllAggregationPeriods() []AggregationPeriod {
	return []AggregationPeriod{PeriodAllTime, PeriodDaily, PeriodWeekly, PeriodMonthly}
}

func (p AggregationPeriod) Valid() bool {
	switch p {
	case PeriodAllTime, PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

func (p AggregationPeriod) DisplayName() string {
	switch p {
	case PeriodAllTime:
		return "All Time"
	case PeriodDaily:
		return "Daily"
	case PeriodWeekly:
		return "Weekly"
	case PeriodMonthly:
		return "Monthly"
	}
	return string(p)
}

// WindowStart computes the inclusive lower bound of the window containing
// ref, in ref's location. ok is false for allTime: no lower bound.
func (p AggregationPeriod) WindowStart(ref time.Time, weekStart time.Weekday) (time.Time, bool) {
	switch p {
	case PeriodDaily:
		return startOfDay(ref), true
	case PeriodWeekly:
		return startOfWeek(ref, weekStart), true
	case PeriodMonthly:
		return startOfMonth(ref), true
	default:
		return time.Time{}, false
	}
}

// FilterEntries returns the entries whose timestamp falls inside the window
// containing ref. The bound is inclusive. The sqlite entry store implements
// the same predicate as a query condition; the two must agree for any input.
func (p AggregationPeriod) FilterEntries(entries []Entry, ref time.Time, weekStart time.Weekday) []Entry {
	start, ok := p.WindowStart(ref, weekStart)
	if !ok {
		return entries
	}

	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !e.Timestamp.Before(start) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// GroupingPeriod is the display-time bucketing for historical breakdowns,
// independent of a quantity's own aggregation period.
type GroupingPeriod string

const (
	GroupByDay   GroupingPeriod = "day"
	GroupByWeek  GroupingPeriod = "week"
	GroupByMonth GroupingPeriod = "month"
	GroupByYear  GroupingPeriod = "year"
	GroupByAll   GroupingPeriod = "all"
)

func AllGroupingPeriods() []GroupingPeriod {
	return []GroupingPeriod{GroupByDay, GroupByWeek, GroupByMonth, GroupByYear, GroupByAll}
}

func (g GroupingPeriod) Valid() bool {
	switch g {
	case GroupByDay, GroupByWeek, GroupByMonth, GroupByYear, GroupByAll:
		return true
	}
	return false
}

func (g GroupingPeriod) DisplayName() string {
	switch g {
	case GroupByDay:
		return "Day"
	case GroupByWeek:
		return "Week"
	case GroupByMonth:
		return "Month"
	case GroupByYear:
		return "Year"
	case GroupByAll:
		return "All Time"
	}
	return string(g)
}

// BucketStart maps a timestamp to the start of the bucket containing it.
// GroupByAll collapses everything into the zero time.
func (g GroupingPeriod) BucketStart(t time.Time, weekStart time.Weekday) time.Time {
	switch g {
	case GroupByDay:
		return startOfDay(t)
	case GroupByWeek:
		return startOfWeek(t, weekStart)
	case GroupByMonth:
		return startOfMonth(t)
	case GroupByYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Time{}
	}
}

// Label renders a bucket's display label from its start instant.
func (g GroupingPeriod) Label(start time.Time) string {
	switch g {
	case GroupByDay:
		return start.Format("Jan 2, 2006")
	case GroupByWeek:
		end := start.AddDate(0, 0, 6)
		return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2"))
	case GroupByMonth:
		return start.Format("January 2006")
	case GroupByYear:
		return start.Format("2006")
	default:
		return "All Time"
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
