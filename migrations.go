// Package batchstamp holds assets shared by the batchstamp binaries.
package batchstamp

import "embed"

// Migrations contains the goose migrations for the batch metadata schema.
//
//go:embed migrations/*.sql
var Migrations embed.FS
