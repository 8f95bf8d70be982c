package adapters

import (
	"github.com/google/uuid"

	"github.com/tally-tools/tally/pkg/models/api"
	"github.com/tally-tools/tally/pkg/models/domain"
	"github.com/tally-tools/tally/pkg/models/store"
)

func MapStoreQuantityTypeToDomain(rec store.QuantityTypeRecord) domain.QuantityType {
	id, _ := uuid.Parse(rec.ID)
	return domain.QuantityType{
		ID:                id,
		Name:              rec.Name,
		ValueFormat:       domain.ValueFormat(rec.ValueFormat),
		AggregationType:   domain.AggregationType(rec.AggregationType),
		AggregationPeriod: domain.AggregationPeriod(rec.AggregationPeriod),
		Icon:              rec.Icon,
		ColorHex:          rec.ColorHex,
		CreatedAt:         rec.CreatedAt,
		LastUsedAt:        rec.LastUsedAt,
		SortOrder:         rec.SortOrder,
		Hidden:            rec.Hidden,
		// A malformed stored config maps to nil: the quantity behaves as
		// non-compound instead of failing the read.
		Compound: domain.ParseCompoundConfig(rec.CompoundConfig),
	}
}

func MapDomainQuantityTypeToStore(qt domain.QuantityType) store.QuantityTypeRecord {
	rec := store.QuantityTypeRecord{
		ID:                qt.ID.String(),
		Name:              qt.Name,
		ValueFormat:       string(qt.ValueFormat),
		AggregationType:   string(qt.AggregationType),
		AggregationPeriod: string(qt.AggregationPeriod),
		Icon:              qt.Icon,
		ColorHex:          qt.ColorHex,
		CreatedAt:         qt.CreatedAt,
		LastUsedAt:        qt.LastUsedAt,
		SortOrder:         qt.SortOrder,
		Hidden:            qt.Hidden,
	}

	if qt.Compound != nil {
		raw, err := qt.Compound.Encode()
		if err == nil {
			rec.CompoundConfig = raw
		}
	}

	return rec
}

func MapStoreEntryToDomain(rec store.EntryRecord) domain.Entry {
	id, _ := uuid.Parse(rec.ID)
	qtID, _ := uuid.Parse(rec.QuantityTypeID)
	return domain.Entry{
		ID:             id,
		QuantityTypeID: qtID,
		Value:          rec.Value,
		Timestamp:      rec.Timestamp,
		Notes:          rec.Notes,
	}
}

func MapDomainEntryToStore(e domain.Entry) store.EntryRecord {
	return store.EntryRecord{
		ID:             e.ID.String(),
		QuantityTypeID: e.QuantityTypeID.String(),
		Value:          e.Value,
		Timestamp:      e.Timestamp,
		Notes:          e.Notes,
	}
}

func MapStoreEntryStatsToDomain(stats *store.EntryStats) *domain.TrackerStats {
	if stats == nil {
		return nil
	}
	return &domain.TrackerStats{
		EntryCount:     stats.EntryCount,
		FirstEntryTime: stats.FirstEntryTime,
	}
}

func MapQuantityTypeDomainToApi(qt domain.QuantityType) api.QuantityType {
	out := api.QuantityType{
		ID:                qt.ID.String(),
		Name:              qt.Name,
		ValueFormat:       string(qt.ValueFormat),
		AggregationType:   string(qt.AggregationType),
		AggregationPeriod: string(qt.AggregationPeriod),
		Icon:              qt.Icon,
		ColorHex:          qt.ColorHex,
		CreatedAt:         qt.CreatedAt,
		LastUsedAt:        qt.LastUsedAt,
		SortOrder:         qt.SortOrder,
		Hidden:            qt.Hidden,
	}

	if qt.Compound != nil {
		out.Compound = &api.CompoundConfig{
			Input1Label:  qt.Compound.Input1Label,
			Input1Format: string(qt.Compound.Input1Format),
			Input2Label:  qt.Compound.Input2Label,
			Input2Format: string(qt.Compound.Input2Format),
			Operation:    string(qt.Compound.Operation),
		}
	}

	return out
}

func MapEntryDomainToApi(e domain.Entry, format domain.ValueFormat) api.Entry {
	return api.Entry{
		ID:             e.ID.String(),
		QuantityTypeID: e.QuantityTypeID.String(),
		Value:          e.Value,
		FormattedValue: format.Format(e.Value),
		Timestamp:      e.Timestamp,
		Notes:          e.Notes,
	}
}

func MapGroupedTotalDomainToApi(g domain.GroupedTotal, format domain.ValueFormat) api.GroupedTotal {
	return api.GroupedTotal{
		PeriodLabel: g.PeriodLabel,
		Total:       g.Total,
		Formatted:   format.Format(g.Total),
		Count:       g.Count,
		BucketStart: g.BucketStart,
	}
}
