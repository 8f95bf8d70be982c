// Package assistant implements the voice/shortcut entry path: resolve a
// quantity type by spoken name, parse a free-form value, log it, and
// produce a confirmation phrase.
package assistant

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tally-tools/tally/pkg/models/domain"
	"github.com/tally-tools/tally/pkg/services/tracker"
)

// Result is what the assistant speaks (or the shortcut displays) back.
type Result struct {
	QuantityType domain.QuantityType
	Entry        domain.Entry
	Dialog       string
}

type Service struct {
	tracker tracker.Tracker
}

func NewService(t tracker.Tracker) (*Service, error) {
	if t == nil {
		return nil, fmt.Errorf("tracker is nil")
	}
	return &Service{tracker: t}, nil
}

// Log resolves the named quantity type (case-insensitive), parses the
// value text with the permissive grammar for the quantity's format, and
// logs an entry against it.
func (s *Service) Log(ctx context.Context, quantityName, valueText, notes string) (Result, error) {
	qt, err := s.tracker.FindQuantityTypeByName(ctx, quantityName)
	if err != nil {
		return Result{}, err
	}

	value, ok := ParseValueText(valueText, qt.ValueFormat)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", tracker.ErrUnparsableValue, valueText)
	}

	e, err := s.tracker.LogEntry(ctx, qt.ID, value, notes)
	if err != nil {
		return Result{}, err
	}

	return Result{
		QuantityType: qt,
		Entry:        e,
		Dialog:       fmt.Sprintf("Logged %s to %s", qt.ValueFormat.Format(value), qt.Name),
	}, nil
}

// LogToMostRecent logs a raw value against the most recently used quantity
// type, the one-tap shortcut path.
func (s *Service) LogToMostRecent(ctx context.Context, value float64, notes string) (Result, error) {
	qt, err := s.tracker.MostRecentlyUsed(ctx)
	if err != nil {
		return Result{}, err
	}

	e, err := s.tracker.LogEntry(ctx, qt.ID, value, notes)
	if err != nil {
		return Result{}, err
	}

	return Result{
		QuantityType: qt,
		Entry:        e,
		Dialog:       fmt.Sprintf("Logged %s to %s", qt.ValueFormat.Format(value), qt.Name),
	}, nil
}

// ParseValueText parses free-form value input for the given format.
// Durations go through the free-text grammar; numeric formats tolerate
// thousands separators.
func ParseValueText(input string, format domain.ValueFormat) (float64, bool) {
	text := strings.ToLower(strings.TrimSpace(input))

	if format == domain.ValueFormatDuration {
		return ParseDurationText(text)
	}

	cleaned := strings.ReplaceAll(text, ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
