// Package sqlite is the record store: an embedded relational database holding
// the users and contacts tables. The process is the sole owner of the file
// for its lifetime, so no locking beyond SQLite's own is needed.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // pure Go sqlite driver
)

// Open opens (creating if needed) the database at path and verifies the
// connection. A single connection is used: the application is one sequential
// console session.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}
