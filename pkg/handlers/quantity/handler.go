package quantity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tally-tools/tally/pkg/adapters"
	"github.com/tally-tools/tally/pkg/models/api"
	"github.com/tally-tools/tally/pkg/models/domain"
	"github.com/tally-tools/tally/pkg/services/assistant"
	"github.com/tally-tools/tally/pkg/services/export"
	"github.com/tally-tools/tally/pkg/services/tracker"
)

// Assistant is the free-text logging surface the handler depends on.
type Assistant interface {
	Log(ctx context.Context, quantityName, valueText, notes string) (assistant.Result, error)
}

// Exporter writes the full entry history as CSV.
type Exporter interface {
	WriteCSV(ctx context.Context, w io.Writer) error
}

type Handler struct {
	tracker   tracker.Tracker
	assistant Assistant
	exporter  Exporter
}

func NewHandler(t tracker.Tracker, a Assistant, e Exporter) *Handler {
	return &Handler{
		tracker:   t,
		assistant: a,
		exporter:  e,
	}
}

type quantityTypeRequest struct {
	Name              string              `json:"name"`
	ValueFormat       string              `json:"value_format"`
	AggregationType   string              `json:"aggregation_type"`
	AggregationPeriod string              `json:"aggregation_period"`
	Icon              string              `json:"icon"`
	ColorHex          string              `json:"color_hex"`
	Compound          *api.CompoundConfig `json:"compound"`
}

type logEntryRequest struct {
	Value  *float64   `json:"value"`
	Text   string     `json:"text"`
	Value1 *float64   `json:"value1"`
	Value2 *float64   `json:"value2"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
	Notes  string     `json:"notes"`
}

type updateEntryRequest struct {
	Value float64 `json:"value"`
	Notes string  `json:"notes"`
}

type assistantLogRequest struct {
	Quantity string `json:"quantity"`
	Value    string `json:"value"`
	Notes    string `json:"notes"`
}

func (h *Handler) ListQuantityTypes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	includeHidden := r.URL.Query().Get("include_hidden") == "true"

	quantities, err := h.tracker.ListQuantityTypes(ctx, includeHidden)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response := make([]api.QuantityType, 0, len(quantities))
	for _, qt := range quantities {
		response = append(response, adapters.MapQuantityTypeDomainToApi(qt))
	}
	writeJSON(w, r, http.StatusOK, response)
}

func (h *Handler) CreateQuantityType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req quantityTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	qt, err := h.tracker.CreateQuantityType(ctx, paramsFromRequest(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, adapters.MapQuantityTypeDomainToApi(qt))
}

func (h *Handler) GetQuantityType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := quantityID(r)
	if err != nil {
		http.Error(w, "invalid quantity type id", http.StatusBadRequest)
		return
	}

	qt, err := h.tracker.GetQuantityType(ctx, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapQuantityTypeDomainToApi(qt))
}

func (h *Handler) UpdateQuantityType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := quantityID(r)
	if err != nil {
		http.Error(w, "invalid quantity type id", http.StatusBadRequest)
		return
	}

	var req quantityTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	qt, err := h.tracker.UpdateQuantityType(ctx, id, paramsFromRequest(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapQuantityTypeDomainToApi(qt))
}

func (h *Handler) DeleteQuantityType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := quantityID(r)
	if err != nil {
		http.Error(w, "invalid quantity type id", http.StatusBadRequest)
		return
	}

	if err := h.tracker.DeleteQuantityType(ctx, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LogEntry accepts one of four entry shapes: a raw value, value text in
// the quantity's format grammar, a compound pair, or a start/end time
// pair for time-difference quantities.
func (h *Handler) LogEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := quantityID(r)
	if err != nil {
		http.Error(w, "invalid quantity type id", http.StatusBadRequest)
		return
	}

	var req logEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var e domain.Entry
	switch {
	case req.Start != nil && req.End != nil:
		e, err = h.tracker.LogTimeDifferenceEntry(ctx, id, *req.Start, *req.End, req.Notes)
	case req.Value1 != nil && req.Value2 != nil:
		e, err = h.tracker.LogCompoundEntry(ctx, id, *req.Value1, *req.Value2, req.Notes)
	case req.Text != "":
		e, err = h.tracker.LogEntryText(ctx, id, req.Text, req.Notes)
	case req.Value != nil:
		e, err = h.tracker.LogEntry(ctx, id, *req.Value, req.Notes)
	default:
		http.Error(w, "one of value, text, value1/value2 or start/end is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	qt, err := h.tracker.GetQuantityType(ctx, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, adapters.MapEntryDomainToApi(e, qt.ValueFormat))
}

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := quantityID(r)
	if err != nil {
		http.Error(w, "invalid quantity type id", http.StatusBadRequest)
		return
	}

	limit := 0
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		limit, err = strconv.Atoi(rawLimit)
		if err != nil || limit < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
	}

	qt, err := h.tracker.GetQuantityType(ctx, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entries, err := h.tracker.Entries(ctx, id, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response := make([]api.Entry, 0, len(entries))
	for _, e := range entries {
		response = append(response, adapters.MapEntryDomainToApi(e, qt.ValueFormat))
	}
	writeJSON(w, r, http.StatusOK, response)
}

func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return
	}

	var req updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.tracker.UpdateEntry(ctx, id, req.Value, req.Notes); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return
	}

	if err := h.tracker.DeleteEntry(ctx, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetTotal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := quantityID(r)
	if err != nil {
		http.Error(w, "invalid quantity type id", http.StatusBadRequest)
		return
	}

	qt, err := h.tracker.GetQuantityType(ctx, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	total, err := h.tracker.Total(ctx, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, api.Total{
		QuantityTypeID: id.String(),
		Total:          total,
		Formatted:      qt.ValueFormat.Format(total),
	})
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := quantityID(r)
	if err != nil {
		http.Error(w, "invalid quantity type id", http.StatusBadRequest)
		return
	}

	period := domain.GroupingPeriod(r.URL.Query().Get("period"))
	if period == "" {
		period = domain.GroupByDay
	}

	qt, err := h.tracker.GetQuantityType(ctx, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	totals, err := h.tracker.GroupedTotals(ctx, id, period)
	if err != nil {
		writeError(w, r, err)
		return
	}

	buckets := make([]api.GroupedTotal, 0, len(totals))
	for _, g := range totals {
		buckets = append(buckets, adapters.MapGroupedTotalDomainToApi(g, qt.ValueFormat))
	}
	writeJSON(w, r, http.StatusOK, api.Report{
		QuantityTypeID: id.String(),
		GroupedBy:      string(period),
		Buckets:        buckets,
	})
}

func (h *Handler) AssistantLog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req assistantLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Quantity == "" || req.Value == "" {
		http.Error(w, "quantity and value are required", http.StatusBadRequest)
		return
	}

	result, err := h.assistant.Log(ctx, req.Quantity, req.Value, req.Notes)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, api.AssistantResult{
		QuantityTypeID: result.QuantityType.ID.String(),
		Value:          result.Entry.Value,
		Dialog:         result.Dialog,
	})
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(time.Now())))

	if err := h.exporter.WriteCSV(ctx, w); err != nil {
		logger.Error().Err(err).Msg("failed to write csv export")
	}
}

func paramsFromRequest(req quantityTypeRequest) tracker.QuantityTypeParams {
	params := tracker.QuantityTypeParams{
		Name:              req.Name,
		ValueFormat:       domain.ValueFormat(req.ValueFormat),
		AggregationType:   domain.AggregationType(req.AggregationType),
		AggregationPeriod: domain.AggregationPeriod(req.AggregationPeriod),
		Icon:              req.Icon,
		ColorHex:          req.ColorHex,
	}

	if req.Compound != nil {
		params.Compound = &domain.CompoundConfig{
			Input1Label:  req.Compound.Input1Label,
			Input1Format: domain.ValueFormat(req.Compound.Input1Format),
			Input2Label:  req.Compound.Input2Label,
			Input2Format: domain.ValueFormat(req.Compound.Input2Format),
			Operation:    domain.CompoundOperation(req.Compound.Operation),
		}
	}

	return params
}

func quantityID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, tracker.ErrNotFound), errors.Is(err, tracker.ErrEntryNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, tracker.ErrUnparsableValue),
		errors.Is(err, tracker.ErrDivideByZero),
		errors.Is(err, tracker.ErrNotCompound),
		errors.Is(err, tracker.ErrEmptyValue):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, tracker.ErrInvalidQuantity), errors.Is(err, tracker.ErrInvalidGrouping):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
