// Package batchxml wraps the batch xml document produced by extraction.
//
// A batch document looks like:
//
//	<Batch>
//	  <BatchInstanceIdentifier>BI1E</BatchInstanceIdentifier>
//	  <BatchLocalPath>/data/ephesoft-system-folder</BatchLocalPath>
//	  <Documents>
//	    <Document>
//	      <DocumentLevelFields>
//	        <DocumentLevelField>
//	          <Name>ScanDate</Name>
//	          <Value>2020-05-01</Value>
//	        </DocumentLevelField>
//	      </DocumentLevelFields>
//	    </Document>
//	  </Documents>
//	</Batch>
//
// Documents are mutable and owned by a single caller; nothing here is safe
// for concurrent use.
package batchxml

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"batchstamp/pkg/domain"

	"github.com/beevik/etree"
)

const (
	// BatchInstanceIdentifierTag is the root child holding the batch id.
	BatchInstanceIdentifierTag = "BatchInstanceIdentifier"
	// BatchLocalPathTag is the root child holding the batch artifacts folder.
	BatchLocalPathTag = "BatchLocalPath"
	// NameTag is the child of a DocumentLevelField holding its name.
	NameTag = "Name"
	// ValueTag is the child of a DocumentLevelField holding its value.
	ValueTag = "Value"

	// BatchFileSuffix is appended to the batch id to form the xml file name.
	BatchFileSuffix = "_batch.xml"
	// ZipSuffix is appended to the xml file path to form its archive sibling.
	ZipSuffix = ".zip"

	documentLevelFieldsPath = "//DocumentLevelFields/DocumentLevelField"
)

// ErrNoRoot is returned when parsed input holds no root element.
var ErrNoRoot = errors.New("batch xml has no root element")

// Document is an in-memory batch xml tree.
type Document struct {
	tree *etree.Document
}

// New wraps an already parsed etree document.
func New(tree *etree.Document) *Document {
	return &Document{tree: tree}
}

// Parse reads a batch xml document from r.
func Parse(r io.Reader) (*Document, error) {
	tree := etree.NewDocument()
	if _, err := tree.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("could not parse batch xml: %w", err)
	}
	if tree.Root() == nil {
		return nil, ErrNoRoot
	}

	return New(tree), nil
}

// ParseString parses a batch xml document held in s.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Load reads a batch xml document from disk. A path ending in ".zip" is read
// as an archive holding an entry named after the path without that suffix.
// A plain path that does not exist falls back to its ".zip" sibling.
func Load(path string) (*Document, error) {
	if strings.HasSuffix(path, ZipSuffix) {
		return loadZip(path, filepath.Base(strings.TrimSuffix(path, ZipSuffix)))
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		if _, zerr := os.Stat(path + ZipSuffix); zerr == nil {
			return loadZip(path+ZipSuffix, filepath.Base(path))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("could not open batch xml: %w", err)
	}
	defer f.Close() //nolint: errcheck

	return Parse(f)
}

func loadZip(path, entry string) (*Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("could not open batch xml archive: %w", err)
	}
	defer zr.Close() //nolint: errcheck

	rc, err := zr.Open(entry)
	if err != nil {
		return nil, fmt.Errorf("could not open entry %q in %s: %w", entry, path, err)
	}
	defer rc.Close() //nolint: errcheck

	return Parse(rc)
}

// Tree exposes the underlying etree document.
func (d *Document) Tree() *etree.Document { return d.tree }

// Root returns the root element (usually <Batch>).
func (d *Document) Root() *etree.Element { return d.tree.Root() }

// BatchInstanceIdentifier returns the batch id and whether it is present and
// non-empty.
func (d *Document) BatchInstanceIdentifier() (domain.BatchID, bool) {
	text, ok := d.rootChildText(BatchInstanceIdentifierTag)
	id := domain.BatchID(text)
	if !ok || id.IsZero() {
		return "", false
	}

	return id, true
}

// BatchLocalPath returns the trimmed batch folder and whether it is present
// and non-empty.
func (d *Document) BatchLocalPath() (string, bool) {
	text, ok := d.rootChildText(BatchLocalPathTag)
	text = strings.TrimSpace(text)
	if !ok || text == "" {
		return "", false
	}

	return text, true
}

func (d *Document) rootChildText(tag string) (string, bool) {
	root := d.Root()
	if root == nil {
		return "", false
	}
	child := root.SelectElement(tag)
	if child == nil {
		return "", false
	}

	return child.Text(), true
}

// DocumentLevelFields returns every DocumentLevelField element whose Name
// child equals name, in document order, at any depth.
func (d *Document) DocumentLevelFields(name string) []*etree.Element {
	var fields []*etree.Element
	for _, field := range d.tree.FindElements(documentLevelFieldsPath) {
		if n := field.SelectElement(NameTag); n != nil && n.Text() == name {
			fields = append(fields, field)
		}
	}

	return fields
}

// FieldValue returns the Value text of field and whether a Value child exists.
func FieldValue(field *etree.Element) (string, bool) {
	v := field.SelectElement(ValueTag)
	if v == nil {
		return "", false
	}

	return v.Text(), true
}

// WriteTo serializes the document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := d.tree.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("could not serialize batch xml: %w", err)
	}

	return n, nil
}

// String serializes the document, returning "" if serialization fails.
func (d *Document) String() string {
	s, err := d.tree.WriteToString()
	if err != nil {
		return ""
	}

	return s
}

// Copy returns a deep copy of the document.
func (d *Document) Copy() *Document {
	return New(d.tree.Copy())
}

// FileName returns "<id>_batch.xml".
func FileName(id domain.BatchID) string {
	return id.String() + BatchFileSuffix
}

// Path returns the canonical location "<localPath>/<id>/<id>_batch.xml".
func Path(localPath string, id domain.BatchID) string {
	return filepath.Join(localPath, id.String(), FileName(id))
}
