package script

import (
	"batchstamp/internal/persister"
	"batchstamp/internal/stamper"
	"batchstamp/pkg/batchxml"
	"batchstamp/pkg/logger"
	"batchstamp/pkg/metrics"
	"batchstamp/pkg/serrors"
	"batchstamp/pkg/storage"
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ScanDateName is the registry name of the ScanDate script.
const ScanDateName = "scandate"

// Persister writes a batch document back to disk.
type Persister interface {
	Persist(ctx context.Context, doc *batchxml.Document) error
}

// ScanDateOptions configure the ScanDate script.
type ScanDateOptions struct {
	// Instruments records stamping metrics; nil disables them.
	Instruments *metrics.Instruments
}

// ScanDate stamps the batch creation date onto every ScanDate document level
// field and writes the batch xml back.
type ScanDate struct {
	batches   storage.BatchStorage
	persister Persister
	options   ScanDateOptions
}

var (
	_ Script    = (*ScanDate)(nil)
	_ Persister = (*persister.Persister)(nil)
)

// NewScanDate creates the ScanDate script.
func NewScanDate(batches storage.BatchStorage, persister Persister, options ScanDateOptions) *ScanDate {
	return &ScanDate{
		batches:   batches,
		persister: persister,
		options:   options,
	}
}

// Name implements Script.
func (s *ScanDate) Name() string { return ScanDateName }

// Execute looks up the batch creation date, stamps it onto the ScanDate
// fields and persists the document. A failed lookup leaves doc untouched and
// nothing is written. Whether write failures are returned is up to the
// Persister.
func (s *ScanDate) Execute(ctx context.Context, doc *batchxml.Document) error {
	ctx, _ = logger.WithRun(ctx)
	logger.Debug(ctx, "start execution of the scan date script")

	if doc == nil {
		err := serrors.With(serrors.ErrBadRequest, "batch document is nil")
		logger.Error(ctx, "input document is nil", zap.Error(err))

		return err
	}

	id, ok := doc.BatchInstanceIdentifier()
	if !ok {
		err := serrors.With(serrors.ErrConfiguration, "unable to find the batch instance id in batch xml file")
		logger.Error(ctx, "error occurred in scan date script", zap.Error(err))

		return err
	}
	ctx = logger.WithBatch(ctx, id.String())

	ts, err := s.batches.BatchCreationTime(ctx, id)
	if err != nil {
		s.recordLookupFailure(ctx, err)
		logger.Error(ctx, "could not resolve batch creation date", zap.Error(err))

		return fmt.Errorf("could not resolve creation date of batch %s: %w", id, err)
	}

	stamped := stamper.Stamp(doc, ts)
	if s.options.Instruments != nil {
		s.options.Instruments.FieldsStamped.Add(ctx, int64(stamped))
	}
	logger.Info(ctx, "stamped scan date fields",
		zap.Int("fields", stamped),
		zap.Stringer("scanDate", ts))

	if err := s.persister.Persist(ctx, doc); err != nil {
		logger.Error(ctx, "error occurred in scan date script", zap.Error(err))

		return fmt.Errorf("could not persist batch %s: %w", id, err)
	}

	logger.Debug(ctx, "end execution of the scan date script")

	return nil
}

func (s *ScanDate) recordLookupFailure(ctx context.Context, err error) {
	if s.options.Instruments == nil {
		return
	}

	kind := "unknown"
	if k := serrors.KindOf(err); k != nil {
		kind = k.Error()
	}
	s.options.Instruments.LookupFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}
