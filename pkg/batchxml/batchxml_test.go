package batchxml_test

import (
	"archive/zip"
	"batchstamp/pkg/batchxml"
	"batchstamp/pkg/domain"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleBatch = `<?xml version="1.0" encoding="UTF-8"?>
<Batch>
  <BatchInstanceIdentifier>BI1E</BatchInstanceIdentifier>
  <BatchLocalPath>  /data/system  </BatchLocalPath>
  <Documents>
    <Document>
      <Identifier>DOC1</Identifier>
      <DocumentLevelFields>
        <DocumentLevelField>
          <Name>ScanDate</Name>
        </DocumentLevelField>
        <DocumentLevelField>
          <Name>InvoiceNumber</Name>
          <Value>42</Value>
        </DocumentLevelField>
      </DocumentLevelFields>
    </Document>
    <Document>
      <Identifier>DOC2</Identifier>
      <DocumentLevelFields>
        <DocumentLevelField>
          <Name>ScanDate</Name>
          <Value>1999-01-01</Value>
        </DocumentLevelField>
      </DocumentLevelFields>
    </Document>
  </Documents>
</Batch>`

func TestParse_Accessors(t *testing.T) {
	doc, err := batchxml.ParseString(sampleBatch)
	require.NoError(t, err)

	id, ok := doc.BatchInstanceIdentifier()
	require.True(t, ok)
	require.Equal(t, domain.BatchID("BI1E"), id)

	local, ok := doc.BatchLocalPath()
	require.True(t, ok)
	require.Equal(t, "/data/system", local)

	fields := doc.DocumentLevelFields("ScanDate")
	require.Len(t, fields, 2)

	_, ok = batchxml.FieldValue(fields[0])
	require.False(t, ok)
	v, ok := batchxml.FieldValue(fields[1])
	require.True(t, ok)
	require.Equal(t, "1999-01-01", v)

	require.Len(t, doc.DocumentLevelFields("InvoiceNumber"), 1)
	require.Empty(t, doc.DocumentLevelFields("scandate"))
}

func TestParse_Errors(t *testing.T) {
	_, err := batchxml.ParseString("<Batch><unterminated></Batch>")
	require.Error(t, err)

	_, err = batchxml.ParseString("")
	require.Error(t, err)
}

func TestMissingRootChildren(t *testing.T) {
	doc, err := batchxml.ParseString("<Batch><BatchInstanceIdentifier> </BatchInstanceIdentifier></Batch>")
	require.NoError(t, err)

	_, ok := doc.BatchInstanceIdentifier()
	require.False(t, ok)
	_, ok = doc.BatchLocalPath()
	require.False(t, ok)
}

func TestPath(t *testing.T) {
	require.Equal(t, "B1_batch.xml", batchxml.FileName("B1"))
	require.Equal(t, filepath.Join("/data", "B1", "B1_batch.xml"), batchxml.Path("/data", "B1"))
}

func TestCopyIsIndependent(t *testing.T) {
	doc, err := batchxml.ParseString(sampleBatch)
	require.NoError(t, err)

	cp := doc.Copy()
	cp.Root().SelectElement(batchxml.BatchInstanceIdentifierTag).SetText("OTHER")

	id, _ := doc.BatchInstanceIdentifier()
	require.Equal(t, domain.BatchID("BI1E"), id)
}

func TestLoad_Plain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "BI1E_batch.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleBatch), 0o600))

	doc, err := batchxml.Load(path)
	require.NoError(t, err)
	id, _ := doc.BatchInstanceIdentifier()
	require.Equal(t, domain.BatchID("BI1E"), id)
}

func writeZip(t *testing.T, path, entry, content string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create(entry)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestLoad_Zip(t *testing.T) {
	dir := t.TempDir()
	xmlPath := filepath.Join(dir, "BI1E_batch.xml")
	writeZip(t, xmlPath+".zip", "BI1E_batch.xml", sampleBatch)

	t.Run("explicit archive path", func(t *testing.T) {
		doc, err := batchxml.Load(xmlPath + ".zip")
		require.NoError(t, err)
		require.Len(t, doc.DocumentLevelFields("ScanDate"), 2)
	})

	t.Run("falls back to archive sibling", func(t *testing.T) {
		doc, err := batchxml.Load(xmlPath)
		require.NoError(t, err)
		require.Len(t, doc.DocumentLevelFields("ScanDate"), 2)
	})
}

func TestLoad_Missing(t *testing.T) {
	_, err := batchxml.Load(filepath.Join(t.TempDir(), "nope_batch.xml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteToRoundTrip(t *testing.T) {
	doc, err := batchxml.ParseString(sampleBatch)
	require.NoError(t, err)

	again, err := batchxml.ParseString(doc.String())
	require.NoError(t, err)
	require.Equal(t, doc.String(), again.String())
}
