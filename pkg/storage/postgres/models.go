package postgres

import (
	"batchstamp/pkg/domain"
	"time"
)

// PgBatchInstance is the projection of batch_instance read by the lookup.
type PgBatchInstance struct {
	Identifier   string    `db:"identifier"`
	CreationDate time.Time `db:"creation_date"`
}

func (p *PgBatchInstance) ToDomain() domain.BatchTimestamp {
	return domain.NewBatchTimestamp(p.CreationDate)
}
