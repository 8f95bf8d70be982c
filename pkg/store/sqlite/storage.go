package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const QuantityTypesSchema = `
	CREATE TABLE IF NOT EXISTS quantity_types (
		id                 TEXT PRIMARY KEY,
		name               TEXT NOT NULL,
		value_format       TEXT NOT NULL,
		aggregation_type   TEXT NOT NULL,
		aggregation_period TEXT NOT NULL,
		icon               TEXT NOT NULL DEFAULT 'number',
		color_hex          TEXT NOT NULL DEFAULT '#007AFF',
		created_at         TEXT NOT NULL,
		last_used_at       TEXT NOT NULL,
		sort_order         INTEGER NOT NULL DEFAULT 0,
		hidden             INTEGER NOT NULL DEFAULT 0,
		compound_config    TEXT
	);
`

const EntriesSchema = `
	CREATE TABLE IF NOT EXISTS entries (
		id               TEXT PRIMARY KEY,
		quantity_type_id TEXT NOT NULL REFERENCES quantity_types(id) ON DELETE CASCADE,
		value            REAL NOT NULL,
		timestamp        TEXT NOT NULL,
		notes            TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_entries_quantity_timestamp
		ON entries(quantity_type_id, timestamp);
`

var bootQueries = []string{
	QuantityTypesSchema,
	EntriesSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens (or creates) the SQLite database and applies the schema.
// Pass ":memory:" for tests.
func NewDB(settings Settings) (*sql.DB, error) {
	db, err := sql.Open("sqlite", settings.DbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	for _, query := range bootQueries {
		if _, err := db.Exec(query); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	return db, nil
}
