package store

import "time"

// QuantityTypeRecord is the storage-layer shape of a quantity type. The
// compound configuration is kept as raw JSON; decoding happens in the
// adapter so a malformed payload never fails a read.
type QuantityTypeRecord struct {
	ID                string
	Name              string
	ValueFormat       string
	AggregationType   string
	AggregationPeriod string
	Icon              string
	ColorHex          string
	CreatedAt         time.Time
	LastUsedAt        time.Time
	SortOrder         int
	Hidden            bool
	CompoundConfig    []byte
}

type EntryRecord struct {
	ID             string
	QuantityTypeID string
	Value          float64
	Timestamp      time.Time
	Notes          string
}

type EntryStats struct {
	EntryCount     int64
	FirstEntryTime *time.Time
}
