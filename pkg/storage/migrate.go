package storage

import (
	"batchstamp"
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Migrate applies the embedded batch metadata schema to db using the given
// goose dialect ("postgres" or "sqlite3").
func Migrate(ctx context.Context, db *sql.DB, dialect string) error {
	goose.SetBaseFS(batchstamp.Migrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("could not set goose dialect to %s: %w", dialect, err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("could not migrate database: %w", err)
	}

	return nil
}
