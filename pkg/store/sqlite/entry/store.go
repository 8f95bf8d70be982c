// Package entry persists logged entries. The since parameter on read
// methods is the storage-side counterpart of the in-memory period filter:
// both select timestamps >= the window start, inclusive.
package entry

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tally-tools/tally/pkg/models/store"
)

type Store interface {
	Add(ctx context.Context, rec store.EntryRecord) error
	Get(ctx context.Context, id string) (*store.EntryRecord, error)
	ListForQuantityType(ctx context.Context, quantityTypeID string, since *time.Time, limit int) ([]store.EntryRecord, error)
	Update(ctx context.Context, id string, value float64, notes string) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, since *time.Time) (*store.EntryStats, error)
}

type entryStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &entryStore{db: db}, nil
}

func (s *entryStore) Add(ctx context.Context, rec store.EntryRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (id, quantity_type_id, value, timestamp, notes) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.QuantityTypeID, rec.Value, formatTime(rec.Timestamp), rec.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (s *entryStore) Get(ctx context.Context, id string) (*store.EntryRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, quantity_type_id, value, timestamp, notes FROM entries WHERE id = ?`, id)

	rec, err := scanEntryRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return rec, nil
}

func (s *entryStore) ListForQuantityType(
	ctx context.Context,
	quantityTypeID string,
	since *time.Time,
	limit int,
) ([]store.EntryRecord, error) {
	query := `SELECT id, quantity_type_id, value, timestamp, notes
		FROM entries
		WHERE quantity_type_id = ?`
	args := []any{quantityTypeID}

	if since != nil {
		query += ` AND timestamp >= ?`
		args = append(args, formatTime(*since))
	}
	query += ` ORDER BY timestamp DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	return scanEntryRows(rows)
}

func (s *entryStore) Update(ctx context.Context, id string, value float64, notes string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE entries SET value = ?, notes = ? WHERE id = ?`, value, notes, id)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	return nil
}

func (s *entryStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

func (s *entryStore) Stats(ctx context.Context, since *time.Time) (*store.EntryStats, error) {
	query := `SELECT COUNT(*), MIN(timestamp) FROM entries`
	args := []any{}
	if since != nil {
		query += ` WHERE timestamp >= ?`
		args = append(args, formatTime(*since))
	}

	var (
		count    int64
		earliest sql.NullString
	)
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count, &earliest); err != nil {
		return nil, fmt.Errorf("get entry stats: %w", err)
	}

	stats := &store.EntryStats{EntryCount: count}
	if earliest.Valid {
		t := parseTime(earliest.String)
		stats.FirstEntryTime = &t
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntryRow(row rowScanner) (*store.EntryRecord, error) {
	var (
		rec store.EntryRecord
		ts  string
	)
	if err := row.Scan(&rec.ID, &rec.QuantityTypeID, &rec.Value, &ts, &rec.Notes); err != nil {
		return nil, err
	}
	rec.Timestamp = parseTime(ts)
	return &rec, nil
}

func scanEntryRows(rows *sql.Rows) ([]store.EntryRecord, error) {
	records := make([]store.EntryRecord, 0)
	for rows.Next() {
		rec, err := scanEntryRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
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
