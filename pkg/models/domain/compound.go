package domain

import (
	"encoding/json"
	"time"
)

// CompoundOperation combines two sub-inputs into one derived value.
type CompoundOperation string

const (
	OperationDivide         CompoundOperation = "divide"
	OperationMultiply       CompoundOperation = "multiply"
	OperationAdd            CompoundOperation = "add"
	OperationSubtract       CompoundOperation = "subtract"
	OperationTimeDifference CompoundOperation = "timeDifference"
)

func AllCompoundOperations() []CompoundOperation {
	return []CompoundOperation{
		OperationDivide, OperationMultiply, OperationAdd,
		OperationSubtract, OperationTimeDifference,
	}
}

func (op CompoundOperation) Valid() bool {
	switch op {
	case OperationDivide, OperationMultiply, OperationAdd,
		OperationSubtract, OperationTimeDifference:
		return true
	}
	return false
}

func (op CompoundOperation) DisplayName() string {
	switch op {
	case OperationDivide:
		return "Divide"
	case OperationMultiply:
		return "Multiply"
	case OperationAdd:
		return "Add"
	case OperationSubtract:
		return "Subtract"
	case OperationTimeDifference:
		return "Time Difference"
	}
	return string(op)
}

// Calculate combines two scalar inputs. ok is false only for division by
// zero: the caller must surface an explicit error state, never a silent 0.
// For timeDifference the scalars are minute-valued instants; prefer
// CalculateTimeDifference when the inputs are time.Time values.
func (op CompoundOperation) Calculate(v1, v2 float64) (float64, bool) {
	switch op {
	case OperationDivide:
		if v2 == 0 {
			return 0, false
		}
		return v1 / v2, true
	case OperationMultiply:
		return v1 * v2, true
	case OperationAdd:
		return v1 + v2, true
	case OperationSubtract:
		return v1 - v2, true
	case OperationTimeDifference:
		return v2 - v1, true
	}
	return 0, false
}

// CalculateTimeDifference returns end minus start in minutes. The result is
// signed: negative means start is later than end. Direction is meaningful
// and must not be clamped.
func CalculateTimeDifference(start, end time.Time) float64 {
	return end.Sub(start).Minutes()
}

// CompoundConfig describes a quantity type whose logged value is derived
// from two labeled sub-inputs. timeDifference ignores the sub-input formats
// and treats both inputs as instants.
type CompoundConfig struct {
	Input1Label  string            `json:"input1Label"`
	Input1Format ValueFormat       `json:"input1Format"`
	Input2Label  string            `json:"input2Label"`
	Input2Format ValueFormat       `json:"input2Format"`
	Operation    CompoundOperation `json:"operation"`
}

// DisplayFormat is the format used to render the derived value: duration
// for time differences, decimal for everything else.
func (c CompoundConfig) DisplayFormat() ValueFormat {
	if c.Operation == OperationTimeDifference {
		return ValueFormatDuration
	}
	return ValueFormatDecimal
}

func (c CompoundConfig) Encode() ([]byte, error) {
	return json.Marshal(c)
}

// ParseCompoundConfig decodes a stored compound configuration. A decode
// failure or an invalid operation returns nil: the quantity type degrades
// to non-compound rather than blocking all logging for it.
func ParseCompoundConfig(raw []byte) *CompoundConfig {
	if len(raw) == 0 {
		return nil
	}

	var cfg CompoundConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil
	}
	if !cfg.Operation.Valid() {
		return nil
	}
	return &cfg
}
