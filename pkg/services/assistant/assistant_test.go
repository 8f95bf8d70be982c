package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-tools/tally/pkg/models/domain"
	"github.com/tally-tools/tally/pkg/services/tracker"
	"github.com/tally-tools/tally/pkg/store/sqlite"
	entrystore "github.com/tally-tools/tally/pkg/store/sqlite/entry"
	quantitystore "github.com/tally-tools/tally/pkg/store/sqlite/quantity"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func setupAssistant(t *testing.T) (*Service, *tracker.Service, *fakeClock) {
	db, err := sqlite.NewDB(sqlite.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	quantities, err := quantitystore.NewStore(db)
	require.NoError(t, err)
	entries, err := entrystore.NewStore(db)
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)}
	trk, err := tracker.NewService(quantities, entries, tracker.Options{Now: clock.Now})
	require.NoError(t, err)

	svc, err := NewService(trk)
	require.NoError(t, err)
	return svc, trk, clock
}

func TestAssistant_Log(t *testing.T) {
	svc, trk, _ := setupAssistant(t)
	ctx := context.Background()

	_, err := trk.CreateQuantityType(ctx, tracker.QuantityTypeParams{
		Name:              "Reading Time",
		ValueFormat:       domain.ValueFormatDuration,
		AggregationType:   domain.AggregationSum,
		AggregationPeriod: domain.PeriodDaily,
	})
	require.NoError(t, err)

	res, err := svc.Log(ctx, "reading time", "1.5 hours", "before bed")
	require.NoError(t, err)
	assert.Equal(t, 90.0, res.Entry.Value)
	assert.Equal(t, "Logged 1:30 to Reading Time", res.Dialog)
}

func TestAssistant_Log_UnknownQuantity(t *testing.T) {
	svc, _, _ := setupAssistant(t)

	_, err := svc.Log(context.Background(), "Unicorns", "5", "")
	assert.ErrorIs(t, err, tracker.ErrNotFound)
}

func TestAssistant_Log_UnparsableValue(t *testing.T) {
	svc, trk, _ := setupAssistant(t)
	ctx := context.Background()

	_, err := trk.CreateQuantityType(ctx, tracker.QuantityTypeParams{
		Name:              "Steps",
		ValueFormat:       domain.ValueFormatInteger,
		AggregationType:   domain.AggregationSum,
		AggregationPeriod: domain.PeriodDaily,
	})
	require.NoError(t, err)

	_, err = svc.Log(ctx, "Steps", "a lot", "")
	assert.ErrorIs(t, err, tracker.ErrUnparsableValue)
}

func TestAssistant_LogToMostRecent(t *testing.T) {
	svc, trk, clock := setupAssistant(t)
	ctx := context.Background()

	a, err := trk.CreateQuantityType(ctx, tracker.QuantityTypeParams{
		Name:              "Steps",
		ValueFormat:       domain.ValueFormatInteger,
		AggregationType:   domain.AggregationSum,
		AggregationPeriod: domain.PeriodDaily,
	})
	require.NoError(t, err)

	b, err := trk.CreateQuantityType(ctx, tracker.QuantityTypeParams{
		Name:              "Water",
		ValueFormat:       domain.ValueFormatDecimal,
		AggregationType:   domain.AggregationSum,
		AggregationPeriod: domain.PeriodDaily,
	})
	require.NoError(t, err)

	// Using Steps later makes it the most recent target.
	clock.now = clock.now.Add(time.Hour)
	_, err = trk.LogEntry(ctx, a.ID, 100, "")
	require.NoError(t, err)

	res, err := svc.LogToMostRecent(ctx, 500, "")
	require.NoError(t, err)
	assert.Equal(t, a.ID, res.QuantityType.ID)
	assert.NotEqual(t, b.ID, res.QuantityType.ID)
	assert.Equal(t, "Logged 500 to Steps", res.Dialog)
}
