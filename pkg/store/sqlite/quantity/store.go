// Package quantity persists quantity type definitions.
package quantity

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tally-tools/tally/pkg/models/store"
)

type Store interface {
	Add(ctx context.Context, rec store.QuantityTypeRecord) error
	Get(ctx context.Context, id string) (*store.QuantityTypeRecord, error)
	GetByName(ctx context.Context, name string) (*store.QuantityTypeRecord, error)
	List(ctx context.Context, includeHidden bool) ([]store.QuantityTypeRecord, error)
	MostRecentlyUsed(ctx context.Context) (*store.QuantityTypeRecord, error)
	Update(ctx context.Context, rec store.QuantityTypeRecord) error
	Touch(ctx context.Context, id string, usedAt time.Time) error
	SetSortOrder(ctx context.Context, id string, order int) error
	SetHidden(ctx context.Context, id string, hidden bool) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type quantityStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &quantityStore{db: db}, nil
}

const columns = `id, name, value_format, aggregation_type, aggregation_period,
	icon, color_hex, created_at, last_used_at, sort_order, hidden, compound_config`

func (q *quantityStore) Add(ctx context.Context, rec store.QuantityTypeRecord) error {
	query := fmt.Sprintf(`INSERT INTO quantity_types (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, columns)

	_, err := q.db.ExecContext(ctx, query,
		rec.ID,
		rec.Name,
		rec.ValueFormat,
		rec.AggregationType,
		rec.AggregationPeriod,
		rec.Icon,
		rec.ColorHex,
		formatTime(rec.CreatedAt),
		formatTime(rec.LastUsedAt),
		rec.SortOrder,
		boolToInt(rec.Hidden),
		nullableBytes(rec.CompoundConfig),
	)
	if err != nil {
		return fmt.Errorf("insert quantity type: %w", err)
	}
	return nil
}

func (q *quantityStore) Get(ctx context.Context, id string) (*store.QuantityTypeRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM quantity_types WHERE id = ?`, columns)
	rec, err := scanQuantityRow(q.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get quantity type: %w", err)
	}
	return rec, nil
}

func (q *quantityStore) GetByName(ctx context.Context, name string) (*store.QuantityTypeRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM quantity_types WHERE name = ? COLLATE NOCASE LIMIT 1`, columns)
	rec, err := scanQuantityRow(q.db.QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get quantity type by name: %w", err)
	}
	return rec, nil
}

func (q *quantityStore) List(ctx context.Context, includeHidden bool) ([]store.QuantityTypeRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM quantity_types`, columns)
	if !includeHidden {
		query += ` WHERE hidden = 0`
	}
	query += ` ORDER BY sort_order, created_at`

	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list quantity types: %w", err)
	}
	defer rows.Close()
	return scanQuantityRows(rows)
}

func (q *quantityStore) MostRecentlyUsed(ctx context.Context) (*store.QuantityTypeRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM quantity_types ORDER BY last_used_at DESC LIMIT 1`, columns)
	rec, err := scanQuantityRow(q.db.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get most recently used quantity type: %w", err)
	}
	return rec, nil
}

func (q *quantityStore) Update(ctx context.Context, rec store.QuantityTypeRecord) error {
	query := `
		UPDATE quantity_types
		SET name = ?, value_format = ?, aggregation_type = ?, aggregation_period = ?,
			icon = ?, color_hex = ?, compound_config = ?
		WHERE id = ?`

	_, err := q.db.ExecContext(ctx, query,
		rec.Name,
		rec.ValueFormat,
		rec.AggregationType,
		rec.AggregationPeriod,
		rec.Icon,
		rec.ColorHex,
		nullableBytes(rec.CompoundConfig),
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("update quantity type: %w", err)
	}
	return nil
}

func (q *quantityStore) Touch(ctx context.Context, id string, usedAt time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE quantity_types SET last_used_at = ? WHERE id = ?`, formatTime(usedAt), id)
	if err != nil {
		return fmt.Errorf("touch quantity type: %w", err)
	}
	return nil
}

func (q *quantityStore) SetSortOrder(ctx context.Context, id string, order int) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE quantity_types SET sort_order = ? WHERE id = ?`, order, id)
	if err != nil {
		return fmt.Errorf("set sort order: %w", err)
	}
	return nil
}

func (q *quantityStore) SetHidden(ctx context.Context, id string, hidden bool) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE quantity_types SET hidden = ? WHERE id = ?`, boolToInt(hidden), id)
	if err != nil {
		return fmt.Errorf("set hidden: %w", err)
	}
	return nil
}

// Delete removes a quantity type. Its entries go with it via the foreign
// key cascade.
func (q *quantityStore) Delete(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM quantity_types WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete quantity type: %w", err)
	}
	return nil
}

func (q *quantityStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quantity_types`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count quantity types: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuantityRow(row rowScanner) (*store.QuantityTypeRecord, error) {
	var (
		rec                   store.QuantityTypeRecord
		createdAt, lastUsedAt string
		hidden                int
		compound              sql.NullString
	)

	err := row.Scan(
		&rec.ID, &rec.Name, &rec.ValueFormat, &rec.AggregationType, &rec.AggregationPeriod,
		&rec.Icon, &rec.ColorHex, &createdAt, &lastUsedAt, &rec.SortOrder, &hidden, &compound,
	)
	if err != nil {
		return nil, err
	}

	rec.CreatedAt = parseTime(createdAt)
	rec.LastUsedAt = parseTime(lastUsedAt)
	rec.Hidden = hidden != 0
	if compound.Valid {
		rec.CompoundConfig = []byte(compound.String)
	}
	return &rec, nil
}

func scanQuantityRows(rows *sql.Rows) ([]store.QuantityTypeRecord, error) {
	records := make([]store.QuantityTypeRecord, 0)
	for rows.Next() {
		rec, err := scanQuantityRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quantity type: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
