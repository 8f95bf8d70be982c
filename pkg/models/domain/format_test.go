package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueFormat_Format(t *testing.T) {
	tests := []struct {
		name     string
		format   ValueFormat
		value    float64
		expected string
	}{
		{"integer rounds to whole", ValueFormatInteger, 199.7, "200"},
		{"integer whole number", ValueFormatInteger, 100, "100"},
		{"decimal two places", ValueFormatDecimal, 8, "8.00"},
		{"decimal truncates display", ValueFormatDecimal, 3.14159, "3.14"},
		{"duration with hours", ValueFormatDuration, 125, "2:05"},
		{"duration zero-padded minutes", ValueFormatDuration, 61, "1:01"},
		{"duration under an hour", ValueFormatDuration, 45, "45 min"},
		{"duration zero", ValueFormatDuration, 0, "0 min"},
		{"duration floors fraction", ValueFormatDuration, 90.9, "1:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.Format(tt.value))
		})
	}
}

func TestValueFormat_Parse(t *testing.T) {
	tests := []struct {
		name     string
		format   ValueFormat
		input    string
		expected float64
		ok       bool
	}{
		{"integer", ValueFormatInteger, "42", 42, true},
		{"integer with whitespace", ValueFormatInteger, "  42 ", 42, true},
		{"integer thousands separator", ValueFormatInteger, "1,250", 1250, true},
		{"integer garbage", ValueFormatInteger, "forty two", 0, false},
		{"decimal", ValueFormatDecimal, "8.25", 8.25, true},
		{"decimal garbage suffix", ValueFormatDecimal, "8.25oz", 0, false},
		{"duration colon form", ValueFormatDuration, "2:05", 125, true},
		{"duration colon spaced", ValueFormatDuration, "2 : 05", 125, true},
		{"duration bare minutes", ValueFormatDuration, "90", 90, true},
		{"duration fractional parts rejected", ValueFormatDuration, "1.5:30", 0, false},
		{"duration too many colons", ValueFormatDuration, "1:30:00", 0, false},
		{"duration garbage", ValueFormatDuration, "an hour", 0, false},
		{"empty input", ValueFormatDecimal, "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.format.Parse(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.expected, got, 1e-9)
			}
		})
	}
}

func TestValueFormat_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		format ValueFormat
		values []float64
	}{
		{"integer whole numbers", ValueFormatInteger, []float64{0, 1, 42, 10000}},
		{"decimal two-decimal values", ValueFormatDecimal, []float64{0, 0.25, 8.5, 123.75}},
		{"duration whole minutes", ValueFormatDuration, []float64{0, 45, 60, 125, 1439}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range tt.values {
				text := tt.format.Format(v)
				parsed, ok := tt.format.Parse(text)
				require.True(t, ok, "format output %q must parse back", text)
				assert.InDelta(t, v, parsed, 1e-9)
			}
		})
	}
}
