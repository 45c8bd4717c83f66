// Package storage defines the read-only view of the batch metadata store
// that enrichment steps rely on. Backends (PostgreSQL, SQLite) live in
// subpackages and map their driver errors onto serrors kinds.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import (
	"batchstamp/pkg/domain"
	"context"
)

// BatchStorage resolves batch metadata by batch instance identifier.
type BatchStorage interface {
	// BatchCreationTime returns the creation timestamp of the batch identified
	// by id. It fails with serrors.ErrNotFound when no such batch exists and
	// with serrors.ErrUnavailable when the store cannot be queried.
	BatchCreationTime(ctx context.Context, id domain.BatchID) (domain.BatchTimestamp, error)
}

// Storage is a BatchStorage owning a connection pool.
type Storage interface {
	BatchStorage

	// Close releases the underlying connection pool.
	Close() error
}
