package domain

import "sort"

// AggregationType is the reduction applied to a set of entry values when
// computing a total. Aggregating an empty set yields 0 for every kind; an
// empty history is a zero total, not an error.
type AggregationType string

const (
	AggregationSum     AggregationType = "sum"
	AggregationAverage AggregationType = "average"
	AggregationMedian  AggregationType = "median"
	AggregationMin     AggregationType = "min"
	AggregationMax     AggregationType = "max"
	AggregationCount   AggregationType = "count"
)

func AllAggregationTypes() []AggregationType {
	return []AggregationType{
		AggregationSum, AggregationAverage, AggregationMedian,
		AggregationMin, AggregationMax, AggregationCount,
	}
}

func (a AggregationType) Valid() bool {
	switch a {
	case AggregationSum, AggregationAverage, AggregationMedian,
		AggregationMin, AggregationMax, AggregationCount:
		return true
	}
	return false
}

func (a AggregationType) DisplayName() string {
	switch a {
	case AggregationSum:
		return "Sum"
	case AggregationAverage:
		return "Average"
	case AggregationMedian:
		return "Median"
	case AggregationMin:
		return "Minimum"
	case AggregationMax:
		return "Maximum"
	case AggregationCount:
		return "Count"
	}
	return string(a)
}

func (a AggregationType) Aggregate(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	switch a {
	case AggregationAverage:
		return sum(values) / float64(len(values))
	case AggregationMedian:
		return median(values)
	case AggregationMin:
		m := values[0]
		for _, v := range values[1:] {
			if v < m {
				m = v
			}
		}
		return m
	case AggregationMax:
		m := values[0]
		for _, v := range values[1:] {
			if v > m {
				m = v
			}
		}
		return m
	case AggregationCount:
		return float64(len(values))
	default:
		return sum(values)
	}
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}
