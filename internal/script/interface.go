// Package script holds the enrichment steps a host pipeline runs against a
// batch document after extraction. Steps are registered statically by name
// and invoked through the Script interface.
package script

import (
	"batchstamp/pkg/batchxml"
	"context"
)

// Script is an enrichment step run against a batch document. Execute never
// panics on bad input; it reports failures through the returned error and
// leaves the host to decide how to react.
type Script interface {
	// Name is the name the script is registered under.
	Name() string
	// Execute runs the script against doc, mutating it in place.
	Execute(ctx context.Context, doc *batchxml.Document) error
}
