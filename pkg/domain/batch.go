package domain

import (
	"strings"
	"time"
)

// DateLayout is the canonical text form of a BatchTimestamp. Downstream
// consumers of the batch xml parse ScanDate values with the same layout.
const DateLayout = "2006-01-02"

// BatchID uniquely identifies a batch instance (e.g. "BI1E").
type BatchID string

// String returns the identifier as text.
func (b BatchID) String() string { return string(b) }

// IsZero reports whether the identifier is empty or whitespace only.
func (b BatchID) IsZero() bool { return strings.TrimSpace(string(b)) == "" }

// BatchTimestamp is the creation time of a batch as recorded in the batch
// metadata store. It is read once per stamping pass and never written back.
type BatchTimestamp struct {
	time.Time
}

// NewBatchTimestamp wraps t as a BatchTimestamp.
func NewBatchTimestamp(t time.Time) BatchTimestamp {
	return BatchTimestamp{Time: t}
}

// String renders the timestamp as a calendar date in its own location,
// e.g. "2020-05-01".
func (b BatchTimestamp) String() string {
	return b.Format(DateLayout)
}
