package postgres

import (
	"batchstamp/pkg/domain"
	"batchstamp/pkg/storage"
	"context"

	"github.com/doug-martin/goqu/v9"
)

// BatchCreationTime returns the creation_date of the batch_instance row
// matching id.
func (p *PgSQL) BatchCreationTime(ctx context.Context, id domain.BatchID) (domain.BatchTimestamp, error) {
	var row PgBatchInstance
	found, err := p.Builder.From(storage.BatchInstanceTable).
		Select(storage.IdentifierColumn, storage.CreationDateColumn).
		Where(goqu.I(storage.IdentifierColumn).Eq(id.String())).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return domain.BatchTimestamp{}, storage.QueryFailed(id, err)
	}
	if !found {
		return domain.BatchTimestamp{}, storage.BatchNotFound(id)
	}

	return row.ToDomain(), nil
}
