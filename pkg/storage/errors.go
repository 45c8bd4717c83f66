package storage

import (
	"batchstamp/pkg/domain"
	"batchstamp/pkg/serrors"
)

const (
	// BatchInstanceTable is the batch metadata table.
	BatchInstanceTable = "batch_instance"
	// IdentifierColumn holds the batch instance identifier.
	IdentifierColumn = "identifier"
	// CreationDateColumn holds the batch creation timestamp.
	CreationDateColumn = "creation_date"
)

// BatchNotFound builds the error returned when no row matches id.
func BatchNotFound(id domain.BatchID) error {
	return serrors.With(serrors.ErrNotFound, "batch instance %q not found", id)
}

// QueryFailed builds the error returned when the store could not be queried.
func QueryFailed(id domain.BatchID, err error) error {
	return serrors.Wrap(serrors.ErrUnavailable, err, "could not query creation date of batch %q", id)
}

// InvalidCreationDate builds the error returned when a stored creation date
// cannot be interpreted.
func InvalidCreationDate(id domain.BatchID, err error) error {
	return serrors.Wrap(serrors.ErrInternal, err, "invalid creation date of batch %q", id)
}
