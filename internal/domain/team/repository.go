package team

import "context"

// Repository exposes the team roster and the alias table rows. Both are
// read-only from the pipeline's perspective.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	ListAliases(ctx context.Context) ([]Alias, error)
}
