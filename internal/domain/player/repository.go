package player

import "context"

// Repository describes roster reads needed by the pipeline.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	ListActive(ctx context.Context) ([]Player, error)
	ListDisplayAliases(ctx context.Context) ([]DisplayAlias, error)
}
