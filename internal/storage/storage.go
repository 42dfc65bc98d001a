// Package storage projects one run's derived tables into an in-memory SQLite
// database for ad-hoc SQL. Nothing is written to disk; every run starts empty.
package storage

import (
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps the in-memory database.
type DB struct {
	conn *sqlx.DB
}

// OpenMemory opens an empty in-memory database and applies the schema.
func OpenMemory() (*DB, error) {
	conn, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// each connection to :memory: is a separate database
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Tables lists the schema's tables in load order.
var Tables = []string{"players", "flattened_matches", "paired_matches"}

// Close closes the underlying connection, discarding all data.
func (db *DB) Close() error {
	return db.conn.Close()
}
