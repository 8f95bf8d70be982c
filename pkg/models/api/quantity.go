package api

import "time"

type CompoundConfig struct {
	Input1Label  string `json:"input1_label"`
	Input1Format string `json:"input1_format"`
	Input2Label  string `json:"input2_label"`
	Input2Format string `json:"input2_format"`
	Operation    string `json:"operation"`
}

type QuantityType struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	ValueFormat       string          `json:"value_format"`
	AggregationType   string          `json:"aggregation_type"`
	AggregationPeriod string          `json:"aggregation_period"`
	Icon              string          `json:"icon"`
	ColorHex          string          `json:"color_hex"`
	CreatedAt         time.Time       `json:"created_at"`
	LastUsedAt        time.Time       `json:"last_used_at"`
	SortOrder         int             `json:"sort_order"`
	Hidden            bool            `json:"hidden"`
	Compound          *CompoundConfig `json:"compound,omitempty"`
}

type Entry struct {
	ID             string    `json:"id"`
	QuantityTypeID string    `json:"quantity_type_id"`
	Value          float64   `json:"value"`
	FormattedValue string    `json:"formatted_value"`
	Timestamp      time.Time `json:"timestamp"`
	Notes          string    `json:"notes,omitempty"`
}

type Total struct {
	QuantityTypeID string  `json:"quantity_type_id"`
	Total          float64 `json:"total"`
	Formatted      string  `json:"formatted"`
}

type GroupedTotal struct {
	PeriodLabel string    `json:"period_label"`
	Total       float64   `json:"total"`
	Formatted   string    `json:"formatted"`
	Count       int       `json:"count"`
	BucketStart time.Time `json:"bucket_start"`
}

type Report struct {
	QuantityTypeID string         `json:"quantity_type_id"`
	GroupedBy      string         `json:"grouped_by"`
	Buckets        []GroupedTotal `json:"buckets"`
}

type AssistantResult struct {
	QuantityTypeID string  `json:"quantity_type_id"`
	Value          float64 `json:"value"`
	Dialog         string  `json:"dialog"`
}
