package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hjwoodall/prediction-league/internal/domain/prediction"
)

type PredictionRepository struct {
	mu      sync.RWMutex
	byKey   map[string]prediction.Prediction
	upserts int
}

func NewPredictionRepository() *PredictionRepository {
	return &PredictionRepository{byKey: make(map[string]prediction.Prediction)}
}

func (r *PredictionRepository) UpsertSet(_ context.Context, items []prediction.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.byKey[item.Player+"|"+item.FixtureID] = item
	}
	r.upserts++
	return nil
}

func (r *PredictionRepository) ListByGameweek(_ context.Context, season string, gameweek int) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, 0, len(r.byKey))
	for _, item := range r.byKey {
		if item.Season == season && item.Gameweek == gameweek {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Player != out[j].Player {
			return out[i].Player < out[j].Player
		}
		return out[i].FixtureID < out[j].FixtureID
	})
	return out, nil
}

// UpsertCount reports how many UpsertSet calls landed. Used by tests to
// assert that unchanged submissions are skipped.
func (r *PredictionRepository) UpsertCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.upserts
}
