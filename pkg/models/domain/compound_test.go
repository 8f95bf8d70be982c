package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompoundOperation_Calculate(t *testing.T) {
	tests := []struct {
		name     string
		op       CompoundOperation
		v1, v2   float64
		expected float64
		ok       bool
	}{
		{"divide", OperationDivide, 10, 4, 2.5, true},
		{"divide by zero fails", OperationDivide, 10, 0, 0, false},
		{"zero divided is fine", OperationDivide, 0, 4, 0, true},
		{"multiply", OperationMultiply, 6, 7, 42, true},
		{"multiply by zero is zero", OperationMultiply, 6, 0, 0, true},
		{"add", OperationAdd, 1.5, 2.5, 4, true},
		{"subtract", OperationSubtract, 10, 4, 6, true},
		{"subtract can go negative", OperationSubtract, 4, 10, -6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.op.Calculate(tt.v1, tt.v2)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.InDelta(t, tt.expected, got, 1e-9)
			}
		})
	}
}

func TestCompoundOperation_DivideByZeroForAnyNumerator(t *testing.T) {
	for _, v := range []float64{-10, -0.5, 0, 0.5, 10, 1e9} {
		_, ok := OperationDivide.Calculate(v, 0)
		assert.False(t, ok, "divide %v by zero must signal no result", v)
	}
}

func TestCalculateTimeDifference(t *testing.T) {
	start := time.Date(2026, time.March, 18, 9, 0, 0, 0, time.UTC)
	end := start.Add(95 * time.Minute)

	assert.InDelta(t, 95, CalculateTimeDifference(start, end), 1e-9)

	// Signed, not absolute: direction is meaningful.
	assert.InDelta(t, -95, CalculateTimeDifference(end, start), 1e-9)
}

func TestCalculateTimeDifference_Antisymmetric(t *testing.T) {
	t1 := time.Date(2026, time.January, 5, 22, 30, 0, 0, time.UTC)
	t2 := time.Date(2026, time.January, 6, 6, 15, 0, 0, time.UTC)

	assert.InDelta(t, -CalculateTimeDifference(t2, t1), CalculateTimeDifference(t1, t2), 1e-9)
}

func TestCompoundConfig_RoundTrip(t *testing.T) {
	cfg := CompoundConfig{
		Input1Label:  "Distance",
		Input1Format: ValueFormatDecimal,
		Input2Label:  "Time",
		Input2Format: ValueFormatDuration,
		Operation:    OperationDivide,
	}

	raw, err := cfg.Encode()
	require.NoError(t, err)

	decoded := ParseCompoundConfig(raw)
	require.NotNil(t, decoded)
	assert.Equal(t, cfg, *decoded)
}

func TestParseCompoundConfig_MalformedDegradesToNil(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"empty", nil},
		{"truncated json", []byte(`{"input1Label": "Dist`)},
		{"wrong shape", []byte(`[1,2,3]`)},
		{"unknown operation", []byte(`{"operation":"modulo"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, ParseCompoundConfig(tt.raw))
		})
	}
}

func TestCompoundConfig_DisplayFormat(t *testing.T) {
	timeDiff := CompoundConfig{Operation: OperationTimeDifference}
	assert.Equal(t, ValueFormatDuration, timeDiff.DisplayFormat())

	ratio := CompoundConfig{Operation: OperationDivide}
	assert.Equal(t, ValueFormatDecimal, ratio.DisplayFormat())
}
