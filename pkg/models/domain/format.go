package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueFormat describes the semantic type of a quantity's numeric value.
// Durations are always stored as total minutes; formatting and parsing
// convert between minutes and the H:MM / "M min" textual forms.
type ValueFormat string

const (
	ValueFormatInteger  ValueFormat = "integer"
	ValueFormatDecimal  ValueFormat = "decimal"
	ValueFormatDuration ValueFormat = "duration"
)

func AllValueFormats() []ValueFormat {
	return []ValueFormat{ValueFormatInteger, ValueFormatDecimal, ValueFormatDuration}
}

func (f ValueFormat) Valid() bool {
	switch f {
	case ValueFormatInteger, ValueFormatDecimal, ValueFormatDuration:
		return true
	}
	return false
}

func (f ValueFormat) DisplayName() string {
	switch f {
	case ValueFormatInteger:
		return "Integer"
	case ValueFormatDecimal:
		return "Decimal"
	case ValueFormatDuration:
		return "Duration (HH:MM)"
	}
	return string(f)
}

// Format renders a raw value for display according to the format kind.
func (f ValueFormat) Format(value float64) string {
	switch f {
	case ValueFormatDecimal:
		return fmt.Sprintf("%.2f", value)
	case ValueFormatDuration:
		return formatDuration(value)
	default:
		return fmt.Sprintf("%.0f", value)
	}
}

func formatDuration(minutes float64) string {
	total := int(minutes)
	hours := total / 60
	mins := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d", hours, mins)
	}
	return fmt.Sprintf("%d min", mins)
}

// Parse converts user input to a raw value. The second return is false when
// the input is not recognized; callers decide how to surface the failure.
func (f ValueFormat) Parse(input string) (float64, bool) {
	trimmed := strings.TrimSpace(input)

	switch f {
	case ValueFormatDuration:
		return parseDuration(trimmed)
	default:
		return parseNumber(trimmed)
	}
}

func parseNumber(input string) (float64, bool) {
	cleaned := strings.ReplaceAll(input, ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseDuration accepts either H:MM (both parts integer) or a bare number
// of minutes. Anything else fails; the free-text grammar the assistant path
// uses lives in the assistant package.
func parseDuration(input string) (float64, bool) {
	if strings.Contains(input, ":") {
		parts := strings.Split(input, ":")
		if len(parts) != 2 {
			return 0, false
		}
		hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return 0, false
		}
		mins, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, false
		}
		return float64(hours*60 + mins), true
	}

	v, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
