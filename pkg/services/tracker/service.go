// Package tracker orchestrates quantity type and entry persistence with the
// aggregation core. All mutations bump the owning quantity's last-used
// timestamp and notify subscribers that its totals are stale.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tally-tools/tally/pkg/adapters"
	"github.com/tally-tools/tally/pkg/models/domain"
	"github.com/tally-tools/tally/pkg/services/analytics"
	"github.com/tally-tools/tally/pkg/store/sqlite/entry"
	"github.com/tally-tools/tally/pkg/store/sqlite/quantity"
)

var (
	ErrNotFound        = errors.New("quantity type not found")
	ErrEntryNotFound   = errors.New("entry not found")
	ErrUnparsableValue = errors.New("value could not be parsed")
	ErrDivideByZero    = errors.New("divide by zero")
	ErrNotCompound     = errors.New("quantity type has no compound configuration")
	ErrEmptyValue      = errors.New("value has not been entered")
	ErrInvalidQuantity = errors.New("invalid quantity type definition")
	ErrInvalidGrouping = errors.New("invalid grouping period")
)

// Tracker is the surface the HTTP handlers and the terminal commands
// depend on.
type Tracker interface {
	CreateQuantityType(ctx context.Context, params QuantityTypeParams) (domain.QuantityType, error)
	UpdateQuantityType(ctx context.Context, id uuid.UUID, params QuantityTypeParams) (domain.QuantityType, error)
	DeleteQuantityType(ctx context.Context, id uuid.UUID) error
	GetQuantityType(ctx context.Context, id uuid.UUID) (domain.QuantityType, error)
	FindQuantityTypeByName(ctx context.Context, name string) (domain.QuantityType, error)
	MostRecentlyUsed(ctx context.Context) (domain.QuantityType, error)
	ListQuantityTypes(ctx context.Context, includeHidden bool) ([]domain.QuantityType, error)
	ReorderQuantityTypes(ctx context.Context, ids []uuid.UUID) error
	SetQuantityTypeHidden(ctx context.Context, id uuid.UUID, hidden bool) error

	LogEntry(ctx context.Context, quantityTypeID uuid.UUID, value float64, notes string) (domain.Entry, error)
	LogEntryText(ctx context.Context, quantityTypeID uuid.UUID, text, notes string) (domain.Entry, error)
	LogCompoundEntry(ctx context.Context, quantityTypeID uuid.UUID, value1, value2 float64, notes string) (domain.Entry, error)
	LogTimeDifferenceEntry(ctx context.Context, quantityTypeID uuid.UUID, start, end time.Time, notes string) (domain.Entry, error)
	Entries(ctx context.Context, quantityTypeID uuid.UUID, limit int) ([]domain.Entry, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, value float64, notes string) error
	DeleteEntry(ctx context.Context, id uuid.UUID) error

	Total(ctx context.Context, quantityTypeID uuid.UUID) (float64, error)
	GroupedTotals(ctx context.Context, quantityTypeID uuid.UUID, period domain.GroupingPeriod) ([]domain.GroupedTotal, error)
	Stats(ctx context.Context) (*domain.TrackerStats, error)
}

// QuantityTypeParams carries user-editable quantity type fields.
type QuantityTypeParams struct {
	Name              string
	ValueFormat       domain.ValueFormat
	AggregationType   domain.AggregationType
	AggregationPeriod domain.AggregationPeriod
	Icon              string
	ColorHex          string
	Compound          *domain.CompoundConfig
}

// Options tune service policy.
type Options struct {
	// WeekStart sets the calendar week-start convention for weekly windows
	// and week buckets.
	WeekStart time.Weekday
	// ZeroIsEmpty makes a logged 0 count as "not entered" and rejects it.
	// Off by default: zero is a legitimate value for most metrics.
	ZeroIsEmpty bool
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// cachedTotal is a memoized Total result, valid only while its window
// start matches the current one (windows roll over at midnight).
type cachedTotal struct {
	windowStart time.Time
	value       float64
}

type Service struct {
	quantities quantity.Store
	entries    entry.Store
	weekStart  time.Weekday
	zeroEmpty  bool
	now        func() time.Time

	mu          sync.RWMutex
	subscribers []func(uuid.UUID)
	totals      map[uuid.UUID]cachedTotal
}

var _ Tracker = (*Service)(nil)

func NewService(quantities quantity.Store, entries entry.Store, opts Options) (*Service, error) {
	if quantities == nil {
		return nil, fmt.Errorf("quantity store is nil")
	}
	if entries == nil {
		return nil, fmt.Errorf("entry store is nil")
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	weekStart := opts.WeekStart
	if weekStart < time.Sunday || weekStart > time.Saturday {
		weekStart = domain.DefaultWeekStart
	}

	return &Service{
		quantities: quantities,
		entries:    entries,
		weekStart:  weekStart,
		zeroEmpty:  opts.ZeroIsEmpty,
		now:        now,
		totals:     make(map[uuid.UUID]cachedTotal),
	}, nil
}

// Subscribe registers a callback invoked with a quantity type id whenever
// its totals may have gone stale. Callbacks run synchronously on the
// mutating goroutine; keep them cheap.
func (s *Service) Subscribe(fn func(quantityTypeID uuid.UUID)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Service) invalidate(id uuid.UUID) {
	s.mu.Lock()
	delete(s.totals, id)
	subs := s.subscribers
	s.mu.Unlock()

	for _, fn := range subs {
		fn(id)
	}
}

func (s *Service) CreateQuantityType(ctx context.Context, params QuantityTypeParams) (domain.QuantityType, error) {
	if err := validateParams(params); err != nil {
		return domain.QuantityType{}, err
	}

	count, err := s.quantities.Count(ctx)
	if err != nil {
		return domain.QuantityType{}, fmt.Errorf("count quantity types: %w", err)
	}

	now := s.now()
	qt := domain.QuantityType{
		ID:                uuid.New(),
		Name:              params.Name,
		ValueFormat:       params.ValueFormat,
		AggregationType:   params.AggregationType,
		AggregationPeriod: params.AggregationPeriod,
		Icon:              defaultString(params.Icon, "number"),
		ColorHex:          defaultString(params.ColorHex, "#007AFF"),
		CreatedAt:         now,
		LastUsedAt:        now,
		SortOrder:         int(count),
		Compound:          params.Compound,
	}

	if err := s.quantities.Add(ctx, adapters.MapDomainQuantityTypeToStore(qt)); err != nil {
		return domain.QuantityType{}, fmt.Errorf("create quantity type: %w", err)
	}
	return qt, nil
}

func (s *Service) UpdateQuantityType(ctx context.Context, id uuid.UUID, params QuantityTypeParams) (domain.QuantityType, error) {
	if err := validateParams(params); err != nil {
		return domain.QuantityType{}, err
	}

	qt, err := s.GetQuantityType(ctx, id)
	if err != nil {
		return domain.QuantityType{}, err
	}

	qt.Name = params.Name
	qt.ValueFormat = params.ValueFormat
	qt.AggregationType = params.AggregationType
	qt.AggregationPeriod = params.AggregationPeriod
	qt.Icon = defaultString(params.Icon, qt.Icon)
	qt.ColorHex = defaultString(params.ColorHex, qt.ColorHex)
	qt.Compound = params.Compound

	if err := s.quantities.Update(ctx, adapters.MapDomainQuantityTypeToStore(qt)); err != nil {
		return domain.QuantityType{}, fmt.Errorf("update quantity type: %w", err)
	}

	s.invalidate(id)
	return qt, nil
}

// DeleteQuantityType removes the quantity type and, through the storage
// cascade, every entry logged against it.
func (s *Service) DeleteQuantityType(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetQuantityType(ctx, id); err != nil {
		return err
	}
	if err := s.quantities.Delete(ctx, id.String()); err != nil {
		return fmt.Errorf("delete quantity type: %w", err)
	}
	s.invalidate(id)
	return nil
}

func (s *Service) GetQuantityType(ctx context.Context, id uuid.UUID) (domain.QuantityType, error) {
	rec, err := s.quantities.Get(ctx, id.String())
	if err != nil {
		return domain.QuantityType{}, fmt.Errorf("get quantity type: %w", err)
	}
	if rec == nil {
		return domain.QuantityType{}, ErrNotFound
	}
	return adapters.MapStoreQuantityTypeToDomain(*rec), nil
}

func (s *Service) FindQuantityTypeByName(ctx context.Context, name string) (domain.QuantityType, error) {
	rec, err := s.quantities.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return domain.QuantityType{}, fmt.Errorf("find quantity type: %w", err)
	}
	if rec == nil {
		return domain.QuantityType{}, ErrNotFound
	}
	return adapters.MapStoreQuantityTypeToDomain(*rec), nil
}

func (s *Service) MostRecentlyUsed(ctx context.Context) (domain.QuantityType, error) {
	rec, err := s.quantities.MostRecentlyUsed(ctx)
	if err != nil {
		return domain.QuantityType{}, fmt.Errorf("get most recently used: %w", err)
	}
	if rec == nil {
		return domain.QuantityType{}, ErrNotFound
	}
	return adapters.MapStoreQuantityTypeToDomain(*rec), nil
}

func (s *Service) ListQuantityTypes(ctx context.Context, includeHidden bool) ([]domain.QuantityType, error) {
	recs, err := s.quantities.List(ctx, includeHidden)
	if err != nil {
		return nil, fmt.Errorf("list quantity types: %w", err)
	}

	out := make([]domain.QuantityType, 0, len(recs))
	for _, rec := range recs {
		out = append(out, adapters.MapStoreQuantityTypeToDomain(rec))
	}
	return out, nil
}

// ReorderQuantityTypes assigns ascending sort order following the given id
// sequence.
func (s *Service) ReorderQuantityTypes(ctx context.Context, ids []uuid.UUID) error {
	for i, id := range ids {
		if err := s.quantities.SetSortOrder(ctx, id.String(), i); err != nil {
			return fmt.Errorf("reorder quantity types: %w", err)
		}
	}
	return nil
}

func (s *Service) SetQuantityTypeHidden(ctx context.Context, id uuid.UUID, hidden bool) error {
	if _, err := s.GetQuantityType(ctx, id); err != nil {
		return err
	}
	if err := s.quantities.SetHidden(ctx, id.String(), hidden); err != nil {
		return fmt.Errorf("set hidden: %w", err)
	}
	return nil
}

func (s *Service) LogEntry(ctx context.Context, quantityTypeID uuid.UUID, value float64, notes string) (domain.Entry, error) {
	qt, err := s.GetQuantityType(ctx, quantityTypeID)
	if err != nil {
		return domain.Entry{}, err
	}
	return s.logEntry(ctx, qt, value, notes)
}

// LogEntryText parses text input with the quantity's own format grammar
// before logging. The permissive free-text grammar lives in the assistant
// service.
func (s *Service) LogEntryText(ctx context.Context, quantityTypeID uuid.UUID, text, notes string) (domain.Entry, error) {
	qt, err := s.GetQuantityType(ctx, quantityTypeID)
	if err != nil {
		return domain.Entry{}, err
	}

	value, ok := qt.ValueFormat.Parse(text)
	if !ok {
		return domain.Entry{}, fmt.Errorf("%w: %q", ErrUnparsableValue, text)
	}
	return s.logEntry(ctx, qt, value, notes)
}

// LogCompoundEntry combines two raw sub-values through the quantity's
// compound operation and stores the derived value as a single entry.
func (s *Service) LogCompoundEntry(ctx context.Context, quantityTypeID uuid.UUID, value1, value2 float64, notes string) (domain.Entry, error) {
	qt, err := s.GetQuantityType(ctx, quantityTypeID)
	if err != nil {
		return domain.Entry{}, err
	}
	if !qt.IsCompound() {
		return domain.Entry{}, ErrNotCompound
	}

	derived, ok := qt.Compound.Operation.Calculate(value1, value2)
	if !ok {
		return domain.Entry{}, ErrDivideByZero
	}
	return s.logEntry(ctx, qt, derived, notes)
}

// LogTimeDifferenceEntry derives end minus start in minutes, signed.
func (s *Service) LogTimeDifferenceEntry(ctx context.Context, quantityTypeID uuid.UUID, start, end time.Time, notes string) (domain.Entry, error) {
	qt, err := s.GetQuantityType(ctx, quantityTypeID)
	if err != nil {
		return domain.Entry{}, err
	}
	if !qt.IsCompound() || qt.Compound.Operation != domain.OperationTimeDifference {
		return domain.Entry{}, ErrNotCompound
	}

	return s.logEntry(ctx, qt, domain.CalculateTimeDifference(start, end), notes)
}

func (s *Service) logEntry(ctx context.Context, qt domain.QuantityType, value float64, notes string) (domain.Entry, error) {
	if s.zeroEmpty && value == 0 {
		return domain.Entry{}, ErrEmptyValue
	}

	now := s.now()
	e := domain.Entry{
		ID:             uuid.New(),
		QuantityTypeID: qt.ID,
		Value:          value,
		Timestamp:      now,
		Notes:          notes,
	}

	if err := s.entries.Add(ctx, adapters.MapDomainEntryToStore(e)); err != nil {
		return domain.Entry{}, fmt.Errorf("log entry: %w", err)
	}
	if err := s.quantities.Touch(ctx, qt.ID.String(), now); err != nil {
		return domain.Entry{}, fmt.Errorf("bump last used: %w", err)
	}

	s.invalidate(qt.ID)
	return e, nil
}

func (s *Service) Entries(ctx context.Context, quantityTypeID uuid.UUID, limit int) ([]domain.Entry, error) {
	if _, err := s.GetQuantityType(ctx, quantityTypeID); err != nil {
		return nil, err
	}

	recs, err := s.entries.ListForQuantityType(ctx, quantityTypeID.String(), nil, limit)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	out := make([]domain.Entry, 0, len(recs))
	for _, rec := range recs {
		out = append(out, adapters.MapStoreEntryToDomain(rec))
	}
	return out, nil
}

func (s *Service) UpdateEntry(ctx context.Context, id uuid.UUID, value float64, notes string) error {
	rec, err := s.entries.Get(ctx, id.String())
	if err != nil {
		return fmt.Errorf("get entry: %w", err)
	}
	if rec == nil {
		return ErrEntryNotFound
	}
	if s.zeroEmpty && value == 0 {
		return ErrEmptyValue
	}

	if err := s.entries.Update(ctx, id.String(), value, notes); err != nil {
		return fmt.Errorf("update entry: %w", err)
	}

	qtID, _ := uuid.Parse(rec.QuantityTypeID)
	s.invalidate(qtID)
	return nil
}

func (s *Service) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	rec, err := s.entries.Get(ctx, id.String())
	if err != nil {
		return fmt.Errorf("get entry: %w", err)
	}
	if rec == nil {
		return ErrEntryNotFound
	}

	if err := s.entries.Delete(ctx, id.String()); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	qtID, _ := uuid.Parse(rec.QuantityTypeID)
	s.invalidate(qtID)
	return nil
}

// Total computes the quantity's current total, pushing the period window
// down to the store as a since bound. Results are memoized per quantity
// until a mutation invalidates them or the window rolls over.
func (s *Service) Total(ctx context.Context, quantityTypeID uuid.UUID) (float64, error) {
	qt, err := s.GetQuantityType(ctx, quantityTypeID)
	if err != nil {
		return 0, err
	}

	var since *time.Time
	windowStart, bounded := qt.AggregationPeriod.WindowStart(s.now(), s.weekStart)
	if bounded {
		since = &windowStart
	}

	s.mu.RLock()
	cached, ok := s.totals[quantityTypeID]
	s.mu.RUnlock()
	if ok && cached.windowStart.Equal(windowStart) {
		return cached.value, nil
	}

	recs, err := s.entries.ListForQuantityType(ctx, quantityTypeID.String(), since, 0)
	if err != nil {
		// Degrade to the unfiltered set rather than failing the whole
		// computation.
		recs, err = s.entries.ListForQuantityType(ctx, quantityTypeID.String(), nil, 0)
		if err != nil {
			return 0, fmt.Errorf("list entries for total: %w", err)
		}
	}

	values := make([]float64, 0, len(recs))
	for _, rec := range recs {
		values = append(values, rec.Value)
	}
	total := qt.AggregationType.Aggregate(values)

	s.mu.Lock()
	s.totals[quantityTypeID] = cachedTotal{windowStart: windowStart, value: total}
	s.mu.Unlock()

	return total, nil
}

func (s *Service) GroupedTotals(ctx context.Context, quantityTypeID uuid.UUID, period domain.GroupingPeriod) ([]domain.GroupedTotal, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGrouping, period)
	}

	qt, err := s.GetQuantityType(ctx, quantityTypeID)
	if err != nil {
		return nil, err
	}

	recs, err := s.entries.ListForQuantityType(ctx, quantityTypeID.String(), nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list entries for report: %w", err)
	}

	entries := make([]domain.Entry, 0, len(recs))
	for _, rec := range recs {
		entries = append(entries, adapters.MapStoreEntryToDomain(rec))
	}

	return analytics.CalculateGroupedTotals(qt, entries, period, s.weekStart), nil
}

func (s *Service) Stats(ctx context.Context) (*domain.TrackerStats, error) {
	stats, err := s.entries.Stats(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return adapters.MapStoreEntryStatsToDomain(stats), nil
}

func validateParams(params QuantityTypeParams) error {
	if strings.TrimSpace(params.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidQuantity)
	}
	if !params.ValueFormat.Valid() {
		return fmt.Errorf("%w: unknown value format %q", ErrInvalidQuantity, params.ValueFormat)
	}
	if !params.AggregationType.Valid() {
		return fmt.Errorf("%w: unknown aggregation type %q", ErrInvalidQuantity, params.AggregationType)
	}
	if !params.AggregationPeriod.Valid() {
		return fmt.Errorf("%w: unknown aggregation period %q", ErrInvalidQuantity, params.AggregationPeriod)
	}
	return nil
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
