// Package adapters binds one provider's fetch and extraction pipeline
// behind a common interface, and keeps the lookup table the watcher polls
// from.
package adapters

import (
	"context"

	"statuswatch/types"
)

// Adapter is one provider's capability set. FetchLatest performs network
// I/O through the fetch collaborator and reports transient failures as
// typed errors; Extract turns one raw item into zero or more incidents
// and only fails on programmer-level misuse.
type Adapter interface {
	Name() string
	FetchLatest(ctx context.Context, limit int) ([]types.RawItem, error)
	Extract(ctx context.Context, item types.RawItem) ([]types.Incident, error)
}
