package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// BusyTimeoutMillis is how long SQLite itself waits on a locked store
// before returning SQLITE_BUSY to the caller.
const BusyTimeoutMillis = 5000

// DSN builds the go-sqlite3 connection string for path.
// WAL journaling with synchronous=NORMAL trades the last few commits on a
// crash for reader concurrency. Foreign keys are enforced. Transactions take
// the write lock up front so concurrent writers wait on the busy timeout
// instead of failing when they upgrade.
func DSN(path string) string {
	q := url.Values{}
	q.Set("_journal_mode", "WAL")
	q.Set("_synchronous", "NORMAL")
	q.Set("_busy_timeout", fmt.Sprint(BusyTimeoutMillis))
	q.Set("_foreign_keys", "on")
	q.Set("_txlock", "immediate")
	return "file:" + path + "?" + q.Encode()
}

// Open opens the store at path, creating its parent directory when needed,
// and verifies the connection.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	database, err := sql.Open("sqlite3", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return database, nil
}

// OpenMemory opens a private in-memory store. A single connection is kept
// so every statement sees the same database.
func OpenMemory(ctx context.Context) (*sql.DB, error) {
	database, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	database.SetMaxOpenConns(1)

	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}
