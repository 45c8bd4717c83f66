package sqlite

import (
	"batchstamp/pkg/domain"
	"batchstamp/pkg/storage"
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
)

// creationDateLayouts are the text forms SQLite may hand back for a
// TIMESTAMP column, tried in order.
var creationDateLayouts = []string{ //nolint: gochecknoglobals
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	domain.DateLayout,
}

// BatchCreationTime returns the creation_date of the batch_instance row
// matching id.
func (s *SQLite) BatchCreationTime(ctx context.Context, id domain.BatchID) (domain.BatchTimestamp, error) {
	// the driver returns TIMESTAMP columns either as time.Time or as raw text
	// depending on how the row was written; scanning into a string accepts both.
	var raw string
	found, err := s.Builder.From(storage.BatchInstanceTable).
		Select(storage.CreationDateColumn).
		Where(goqu.I(storage.IdentifierColumn).Eq(id.String())).
		Executor().ScanValContext(ctx, &raw)
	if err != nil {
		return domain.BatchTimestamp{}, storage.QueryFailed(id, err)
	}
	if !found {
		return domain.BatchTimestamp{}, storage.BatchNotFound(id)
	}

	t, err := parseCreationDate(raw)
	if err != nil {
		return domain.BatchTimestamp{}, storage.InvalidCreationDate(id, err)
	}

	return domain.NewBatchTimestamp(t), nil
}

func parseCreationDate(raw string) (time.Time, error) {
	for _, layout := range creationDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized creation_date %q", raw)
}
