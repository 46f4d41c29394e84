package repository

import (
	"context"

	"EtfAlpha/internal/domain/models"
)

// SnapshotSource retrieves one flat snapshot of market rows. A single attempt
// per invocation with a bounded timeout; no retrying. An empty result is a
// valid zero-row table, not an error.
type SnapshotSource interface {
	Name() string
	FetchSnapshot(ctx context.Context) ([]models.RawRow, error)
}

// Metrics records pipeline observability signals.
type Metrics interface {
	RecordFetch(source string, rows int)
	RecordRowsDropped(reason string, n int)
	RecordError(kind string)
	RecordCacheLookup(hit bool)
	RecordStageDuration(stage string, seconds float64)
}
