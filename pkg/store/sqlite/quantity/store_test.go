package quantity

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-tools/tally/pkg/models/store"
	"github.com/tally-tools/tally/pkg/store/sqlite"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := sqlite.NewDB(sqlite.Settings{DbPath: ":memory:"})
	require.NoError(t, err)

	s, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{db: db, store: s}
}

func record(name string, sortOrder int) store.QuantityTypeRecord {
	now := time.Date(2026, 3, 18, 10, 0, 0, 0, time.UTC)
	return store.QuantityTypeRecord{
		ID:                uuid.NewString(),
		Name:              name,
		ValueFormat:       "integer",
		AggregationType:   "sum",
		AggregationPeriod: "allTime",
		Icon:              "number",
		ColorHex:          "#007AFF",
		CreatedAt:         now,
		LastUsedAt:        now,
		SortOrder:         sortOrder,
	}
}

func TestQuantityStore_AddAndGet(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	rec := record("Steps", 0)
	rec.CompoundConfig = []byte(`{"input1Label":"a","input1Format":"decimal","input2Label":"b","input2Format":"decimal","operation":"divide"}`)
	require.NoError(t, f.store.Add(ctx, rec))

	got, err := f.store.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.Name, got.Name)
	assert.Equal(t, rec.ValueFormat, got.ValueFormat)
	assert.Equal(t, rec.CreatedAt, got.CreatedAt)
	assert.JSONEq(t, string(rec.CompoundConfig), string(got.CompoundConfig))
}

func TestQuantityStore_GetMissingReturnsNil(t *testing.T) {
	f := setupFixture(t)

	got, err := f.store.Get(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestQuantityStore_GetByNameIsCaseInsensitive(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	rec := record("Reading Time", 0)
	require.NoError(t, f.store.Add(ctx, rec))

	got, err := f.store.GetByName(ctx, "reading time")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.ID, got.ID)
}

func TestQuantityStore_ListOrdersBySortOrder(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	second := record("Water", 1)
	first := record("Steps", 0)
	hidden := record("Old Habit", 2)
	hidden.Hidden = true

	require.NoError(t, f.store.Add(ctx, second))
	require.NoError(t, f.store.Add(ctx, first))
	require.NoError(t, f.store.Add(ctx, hidden))

	visible, err := f.store.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, visible, 2)
	assert.Equal(t, "Steps", visible[0].Name)
	assert.Equal(t, "Water", visible[1].Name)

	all, err := f.store.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestQuantityStore_TouchAndMostRecentlyUsed(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	a := record("A", 0)
	b := record("B", 1)
	require.NoError(t, f.store.Add(ctx, a))
	require.NoError(t, f.store.Add(ctx, b))

	require.NoError(t, f.store.Touch(ctx, a.ID, time.Date(2026, 3, 19, 8, 0, 0, 0, time.UTC)))

	got, err := f.store.MostRecentlyUsed(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, a.ID, got.ID)
}

func TestQuantityStore_Update(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	rec := record("Steps", 0)
	require.NoError(t, f.store.Add(ctx, rec))

	rec.Name = "Daily Steps"
	rec.AggregationType = "average"
	rec.CompoundConfig = nil
	require.NoError(t, f.store.Update(ctx, rec))

	got, err := f.store.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Daily Steps", got.Name)
	assert.Equal(t, "average", got.AggregationType)
	assert.Empty(t, got.CompoundConfig)
}

func TestQuantityStore_SetHidden(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	rec := record("Steps", 0)
	require.NoError(t, f.store.Add(ctx, rec))
	require.NoError(t, f.store.SetHidden(ctx, rec.ID, true))

	got, err := f.store.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, got.Hidden)
}

func TestQuantityStore_DeleteCascadesToEntries(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	rec := record("Steps", 0)
	require.NoError(t, f.store.Add(ctx, rec))

	_, err := f.db.ExecContext(ctx,
		`INSERT INTO entries (id, quantity_type_id, value, timestamp, notes) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), rec.ID, 100.0, "2026-03-18T09:00:00Z", "")
	require.NoError(t, err)

	require.NoError(t, f.store.Delete(ctx, rec.ID))

	var remaining int
	err = f.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries WHERE quantity_type_id = ?`, rec.ID).Scan(&remaining)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
}

func TestQuantityStore_Count(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	n, err := f.store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	require.NoError(t, f.store.Add(ctx, record("Steps", 0)))

	n, err = f.store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}
