// Package stamper writes the batch creation date into ScanDate fields.
package stamper

import (
	"batchstamp/pkg/batchxml"
	"batchstamp/pkg/domain"
)

// ScanDateField is the name of the document level field that records when a
// batch was scanned.
const ScanDateField = "ScanDate"

// Stamp sets the Value of every ScanDate document level field in doc to ts,
// creating the Value element where it is missing. Existing values are
// overwritten, so stamping twice yields the same tree. It returns the number
// of fields stamped; zero is not an error.
func Stamp(doc *batchxml.Document, ts domain.BatchTimestamp) int {
	return stampField(doc, ScanDateField, ts.String())
}

// stampField sets the Value of every document level field named name to value.
func stampField(doc *batchxml.Document, name, value string) int {
	fields := doc.DocumentLevelFields(name)
	for _, field := range fields {
		v := field.SelectElement(batchxml.ValueTag)
		if v == nil {
			v = field.CreateElement(batchxml.ValueTag)
		}
		v.SetText(value)
	}

	return len(fields)
}
