package prediction

import "context"

// Repository persists reconciled predictions keyed uniquely by
// (player, fixture). UpsertSet commits the whole slice as one atomic unit;
// re-upserting the same key overwrites the stored row.
type Repository interface {
	UpsertSet(ctx context.Context, items []Prediction) error
	ListByGameweek(ctx context.Context, season string, gameweek int) ([]Prediction, error)
}
