// Package export renders the full entry history as CSV.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tally-tools/tally/pkg/models/domain"
	"github.com/tally-tools/tally/pkg/services/tracker"
)

var header = []string{
	"Timestamp", "Quantity Name", "Value", "Formatted Value",
	"Notes", "Aggregation Type", "Icon", "Color",
}

type Exporter struct {
	tracker tracker.Tracker
}

func NewExporter(t tracker.Tracker) (*Exporter, error) {
	if t == nil {
		return nil, fmt.Errorf("tracker is nil")
	}
	return &Exporter{tracker: t}, nil
}

// WriteCSV writes every entry, newest first, one row per entry. Entries
// whose quantity type has disappeared are skipped.
func (e *Exporter) WriteCSV(ctx context.Context, w io.Writer) error {
	quantities, err := e.tracker.ListQuantityTypes(ctx, true)
	if err != nil {
		return fmt.Errorf("list quantity types: %w", err)
	}

	byID := make(map[uuid.UUID]domain.QuantityType, len(quantities))
	var all []domain.Entry
	for _, qt := range quantities {
		entries, err := e.tracker.Entries(ctx, qt.ID, 0)
		if err != nil {
			return fmt.Errorf("list entries for %s: %w", qt.Name, err)
		}
		byID[qt.ID] = qt
		all = append(all, entries...)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, entry := range all {
		qt, ok := byID[entry.QuantityTypeID]
		if !ok {
			continue
		}
		row := []string{
			entry.Timestamp.UTC().Format(time.RFC3339),
			qt.Name,
			fmt.Sprintf("%g", entry.Value),
			qt.ValueFormat.Format(entry.Value),
			entry.Notes,
			qt.AggregationType.DisplayName(),
			qt.Icon,
			qt.ColorHex,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Filename returns a dated export file name.
func Filename(now time.Time) string {
	return fmt.Sprintf("tally_export_%s.csv", now.Format("2006-01-02"))
}
