package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregationType_EmptyInputIsZero(t *testing.T) {
	// An empty history aggregates to 0 for every kind. This is policy, not
	// a bug: do not change it to an error.
	for _, agg := range AllAggregationTypes() {
		t.Run(string(agg), func(t *testing.T) {
			assert.Equal(t, 0.0, agg.Aggregate(nil))
			assert.Equal(t, 0.0, agg.Aggregate([]float64{}))
		})
	}
}

func TestAggregationType_Aggregate(t *testing.T) {
	values := []float64{300, 100, 200}

	tests := []struct {
		agg      AggregationType
		expected float64
	}{
		{AggregationSum, 600},
		{AggregationAverage, 200},
		{AggregationMedian, 200},
		{AggregationMin, 100},
		{AggregationMax, 300},
		{AggregationCount, 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.agg), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.agg.Aggregate(values))
		})
	}
}

func TestAggregationType_Median(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"even count averages middles", []float64{1, 2, 3, 4}, 2.5},
		{"odd count takes middle", []float64{1, 2, 3}, 2},
		{"unsorted input", []float64{4, 1, 3, 2}, 2.5},
		{"single value", []float64{7}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AggregationMedian.Aggregate(tt.values))
		})
	}
}

func TestAggregationType_MedianDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	AggregationMedian.Aggregate(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestAggregationType_CountIgnoresValues(t *testing.T) {
	assert.Equal(t, 2.0, AggregationCount.Aggregate([]float64{100, 200}))
}
