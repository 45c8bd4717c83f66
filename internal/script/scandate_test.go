package script_test

import (
	"batchstamp/internal/persister"
	"batchstamp/internal/script"
	"batchstamp/pkg/batchxml"
	"batchstamp/pkg/domain"
	"batchstamp/pkg/logger"
	"batchstamp/pkg/serrors"
	mockstorage "batchstamp/pkg/storage/mock"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const batchTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<Batch>
  <BatchInstanceIdentifier>%ID%</BatchInstanceIdentifier>
  <BatchLocalPath>%LOCAL%</BatchLocalPath>
  <Documents>
    <Document>
      <DocumentLevelFields>
        <DocumentLevelField><Name>ScanDate</Name></DocumentLevelField>
        <DocumentLevelField><Name>Vendor</Name><Value>ACME</Value></DocumentLevelField>
      </DocumentLevelFields>
    </Document>
  </Documents>
</Batch>`

var created = domain.NewBatchTimestamp(time.Date(2020, time.May, 1, 10, 0, 0, 0, time.UTC)) //nolint: gochecknoglobals

func newBatch(t *testing.T, id, local string) *batchxml.Document {
	t.Helper()

	r := strings.NewReplacer("%ID%", id, "%LOCAL%", local)
	doc, err := batchxml.ParseString(r.Replace(batchTemplate))
	require.NoError(t, err)

	return doc
}

func newTestScript(t *testing.T, surface bool) (*mockstorage.MockBatchStorage, *script.ScanDate) {
	t.Helper()

	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockBatchStorage(ctrl)
	s := script.NewScanDate(st, persister.New(persister.Options{SurfaceErrors: surface}), script.ScanDateOptions{})

	return st, s
}

func scanDateValue(t *testing.T, doc *batchxml.Document) (string, bool) {
	t.Helper()

	fields := doc.DocumentLevelFields("ScanDate")
	require.Len(t, fields, 1)

	return batchxml.FieldValue(fields[0])
}

func TestScanDate_PlainFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "B1"), 0o755))

	st, s := newTestScript(t, false)
	st.EXPECT().BatchCreationTime(gomock.Any(), domain.BatchID("B1")).Return(created, nil)

	doc := newBatch(t, "B1", root)
	require.NoError(t, s.Execute(context.Background(), doc))

	v, ok := scanDateValue(t, doc)
	require.True(t, ok)
	require.Equal(t, "2020-05-01", v)

	written, err := batchxml.Load(filepath.Join(root, "B1", "B1_batch.xml"))
	require.NoError(t, err)
	v, ok = scanDateValue(t, written)
	require.True(t, ok)
	require.Equal(t, "2020-05-01", v)

	vendor := written.DocumentLevelFields("Vendor")
	require.Len(t, vendor, 1)
	vv, _ := batchxml.FieldValue(vendor[0])
	require.Equal(t, "ACME", vv)
}

func TestScanDate_Archive(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "B1")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "B1_batch.xml.zip"), []byte("not even a zip"), 0o644))

	st, s := newTestScript(t, false)
	st.EXPECT().BatchCreationTime(gomock.Any(), domain.BatchID("B1")).Return(created, nil)

	require.NoError(t, s.Execute(context.Background(), newBatch(t, "B1", root)))

	require.NoFileExists(t, filepath.Join(dir, "B1_batch.xml"))

	written, err := batchxml.Load(filepath.Join(dir, "B1_batch.xml.zip"))
	require.NoError(t, err)
	v, _ := scanDateValue(t, written)
	require.Equal(t, "2020-05-01", v)
}

func TestScanDate_LookupNotFound(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "UNKNOWN"), 0o755))

	st, s := newTestScript(t, false)
	notFound := serrors.With(serrors.ErrNotFound, "batch instance %q not found", "UNKNOWN")
	st.EXPECT().BatchCreationTime(gomock.Any(), domain.BatchID("UNKNOWN")).Return(domain.BatchTimestamp{}, notFound)

	doc := newBatch(t, "UNKNOWN", root)
	before := doc.String()

	err := s.Execute(context.Background(), doc)
	require.ErrorIs(t, err, serrors.ErrNotFound)
	require.ErrorIs(t, err, notFound)

	require.Equal(t, before, doc.String())
	_, ok := scanDateValue(t, doc)
	require.False(t, ok)

	entries, err := os.ReadDir(filepath.Join(root, "UNKNOWN"))
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestScanDate_LookupUnavailable(t *testing.T) {
	st, s := newTestScript(t, false)
	st.EXPECT().BatchCreationTime(gomock.Any(), gomock.Any()).
		Return(domain.BatchTimestamp{}, serrors.Wrap(serrors.ErrUnavailable, errors.New("connection refused"), "query"))

	err := s.Execute(context.Background(), newBatch(t, "B1", t.TempDir()))
	require.ErrorIs(t, err, serrors.ErrUnavailable)
}

func TestScanDate_NilDocument(t *testing.T) {
	_, s := newTestScript(t, false)

	require.NotPanics(t, func() {
		err := s.Execute(context.Background(), nil)
		require.ErrorIs(t, err, serrors.ErrBadRequest)
	})
}

func TestScanDate_MissingBatchID(t *testing.T) {
	_, s := newTestScript(t, false)

	doc, err := batchxml.ParseString("<Batch><BatchLocalPath>/data</BatchLocalPath></Batch>")
	require.NoError(t, err)

	require.ErrorIs(t, s.Execute(context.Background(), doc), serrors.ErrConfiguration)
}

func TestScanDate_MissingLocalPath(t *testing.T) {
	st, s := newTestScript(t, false)
	st.EXPECT().BatchCreationTime(gomock.Any(), domain.BatchID("B1")).Return(created, nil)

	doc, err := batchxml.ParseString(`<Batch><BatchInstanceIdentifier>B1</BatchInstanceIdentifier>
<Documents><Document><DocumentLevelFields>
<DocumentLevelField><Name>ScanDate</Name></DocumentLevelField>
</DocumentLevelFields></Document></Documents></Batch>`)
	require.NoError(t, err)

	require.NoError(t, s.Execute(context.Background(), doc))

	v, ok := scanDateValue(t, doc)
	require.True(t, ok)
	require.Equal(t, "2020-05-01", v)
}

func TestScanDate_PersistenceFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	t.Run("swallowed", func(t *testing.T) {
		st, s := newTestScript(t, false)
		st.EXPECT().BatchCreationTime(gomock.Any(), gomock.Any()).Return(created, nil)

		core, logs := observer.New(zapcore.DebugLevel)
		ctx := logger.WithLogger(context.Background(), zap.New(core))

		doc := newBatch(t, "B1", missing)
		require.NoError(t, s.Execute(ctx, doc))

		// the tree stays mutated even though nothing reached the disk
		v, _ := scanDateValue(t, doc)
		require.Equal(t, "2020-05-01", v)
		require.NoDirExists(t, missing)

		failures := logs.FilterMessage("could not persist batch xml").All()
		require.Len(t, failures, 1)
		require.Equal(t, zapcore.ErrorLevel, failures[0].Level)
		require.Equal(t, true, failures[0].ContextMap()["swallowed"])
		require.Equal(t, "B1", failures[0].ContextMap()["batchID"])
	})

	t.Run("surfaced", func(t *testing.T) {
		st, s := newTestScript(t, true)
		st.EXPECT().BatchCreationTime(gomock.Any(), gomock.Any()).Return(created, nil)

		err := s.Execute(context.Background(), newBatch(t, "B1", missing))
		require.ErrorIs(t, err, serrors.ErrPersistence)
	})
}

func TestScanDate_Name(t *testing.T) {
	_, s := newTestScript(t, false)
	require.Equal(t, script.ScanDateName, s.Name())
}
