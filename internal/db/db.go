package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// connPragmas run on every new pool connection.
var connPragmas = []string{
	"journal_mode(WAL)",
	"foreign_keys(1)",
	"busy_timeout(5000)",
}

func dsn(path string) string {
	q := make([]string, len(connPragmas))
	for i, p := range connPragmas {
		q[i] = "_pragma=" + p
	}
	return path + "?" + strings.Join(q, "&")
}

// OpenDB opens the SQLite database at path, creating its directory when
// needed. It turns on WAL mode and foreign keys, then runs migrations.
//
// An in-memory database lives on a single connection, so the pool is capped
// at one connection. Callers must not use the *sql.DB while a transaction
// from WithinTx is open on it.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}
