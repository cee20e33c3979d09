package memory

import (
	"context"
	"sync"

	"github.com/hjwoodall/prediction-league/internal/domain/submission"
)

type SubmissionRepository struct {
	mu       sync.RWMutex
	bySource map[string]submission.Record
}

func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{bySource: make(map[string]submission.Record)}
}

func (r *SubmissionRepository) Get(_ context.Context, source string) (submission.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.bySource[source]
	return record, ok, nil
}

func (r *SubmissionRepository) Upsert(_ context.Context, record submission.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bySource[record.Source] = record
	return nil
}
