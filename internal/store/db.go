// Package store persists parse results in an embedded SQLite database.
package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"parsify/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS parsed_documents (
	id              TEXT PRIMARY KEY,
	processor       TEXT NOT NULL,
	supplier_name   TEXT NOT NULL DEFAULT '',
	receipt_date    TEXT NOT NULL DEFAULT '',
	total_amount    TEXT NOT NULL DEFAULT '',
	currency        TEXT NOT NULL DEFAULT '',
	line_item_count INTEGER NOT NULL DEFAULT 0,
	raw_data        BLOB NOT NULL,
	created_at      TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_parsed_documents_created_at ON parsed_documents (created_at);
`

// NewDB opens the SQLite database at the configured path and bootstraps the
// schema. Use path ":memory:" for an ephemeral database.
func NewDB(cfg *config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrapping schema: %w", err)
	}
	return db, nil
}
