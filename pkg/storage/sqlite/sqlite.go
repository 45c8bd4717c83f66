// Package sqlite implements storage.Storage on an SQLite database file using
// modernc.org/sqlite and goqu. It serves single-host installations and local
// runs where the batch metadata is exported to a file.
package sqlite

import (
	"batchstamp/pkg/storage"
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	_ "modernc.org/sqlite"
)

var _ storage.Storage = (*SQLite)(nil)

// Options configures the SQLite connection.
type Options struct {
	// Path is the database file path.
	Path string
	// BusyTimeout bounds how long a query waits on a locked database.
	BusyTimeout time.Duration
}

// SQLite implements storage.Storage on SQLite.
type SQLite struct {
	// DB is the underlying database handle.
	DB *sql.DB
	// Builder constructs queries bound to DB.
	Builder *goqu.Database
}

// New opens the database at options.Path and verifies it is reachable.
func New(ctx context.Context, options Options) (*SQLite, error) {
	busy := options.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", options.Path, busy.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("could not ping sqlite database: %w", err)
	}

	return &SQLite{
		DB:      db,
		Builder: goqu.Dialect("sqlite3").DB(db),
	}, nil
}

// Close closes the database handle.
func (s *SQLite) Close() error {
	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("could not close sqlite database: %w", err)
	}

	return nil
}
