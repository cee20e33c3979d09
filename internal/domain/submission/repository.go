package submission

import "context"

// Repository stores per-source processing watermarks.
type Repository interface {
	Get(ctx context.Context, source string) (Record, bool, error)
	Upsert(ctx context.Context, record Record) error
}
