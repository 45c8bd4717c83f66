package storage

import (
	"batchstamp/pkg/domain"
	"context"
	"time"
)

type timeoutStorage struct {
	BatchStorage

	timeout time.Duration
}

// WithTimeout bounds every lookup on s by timeout. A non-positive timeout
// returns s unchanged.
func WithTimeout(s BatchStorage, timeout time.Duration) BatchStorage {
	if timeout <= 0 {
		return s
	}

	return timeoutStorage{BatchStorage: s, timeout: timeout}
}

func (t timeoutStorage) BatchCreationTime(ctx context.Context, id domain.BatchID) (domain.BatchTimestamp, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	return t.BatchStorage.BatchCreationTime(ctx, id)
}
