package domain

import (
	"time"

	"github.com/google/uuid"
)

// QuantityType is a user-defined trackable metric: a value format, a
// reduction rule and a rolling time window, plus presentation attributes.
type QuantityType struct {
	ID                uuid.UUID
	Name              string
	ValueFormat       ValueFormat
	AggregationType   AggregationType
	AggregationPeriod AggregationPeriod
	Icon              string
	ColorHex          string
	CreatedAt         time.Time
	LastUsedAt        time.Time
	SortOrder         int
	Hidden            bool
	Compound          *CompoundConfig
}

// IsCompound reports whether the quantity derives its value from two
// sub-inputs. A quantity whose stored config failed to decode is treated as
// non-compound.
func (q QuantityType) IsCompound() bool {
	return q.Compound != nil
}

// Entry is one logged data point. Durations are stored as total minutes.
type Entry struct {
	ID             uuid.UUID
	QuantityTypeID uuid.UUID
	Value          float64
	Timestamp      time.Time
	Notes          string
}

// GroupedTotal is one bucket of a historical breakdown. It is derived on
// each query and never persisted.
type GroupedTotal struct {
	PeriodLabel string
	Total       float64
	Count       int
	BucketStart time.Time
}

// TrackerStats summarizes the stored entry history.
type TrackerStats struct {
	EntryCount     int64
	FirstEntryTime *time.Time
}
