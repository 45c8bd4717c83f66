// Package domain contains the core domain types shared by the enrichment
// steps: batch identifiers and the batch creation timestamp. They carry no
// infrastructure concerns so storage backends and tree code can share them.
package domain
