package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hjwoodall/prediction-league/internal/platform/logging"
	"github.com/panjf2000/ants/v2"
)

const (
	backfillStatusSuccess = "success"
	backfillStatusFailed  = "failed"
)

// BackfillService reprocesses historical gameweeks. Gameweeks are mutually
// independent, so they run on a worker pool; ordering guarantees only matter
// within one gameweek's submissions, which IngestService already enforces.
type BackfillService struct {
	ingest *IngestService
	logger *logging.Logger
}

func NewBackfillService(ingest *IngestService, logger *logging.Logger) *BackfillService {
	if logger == nil {
		logger = logging.Default()
	}
	return &BackfillService{ingest: ingest, logger: logger}
}

type BackfillInput struct {
	Season     string
	Gameweeks  []int
	MaxWorkers int
}

type BackfillTaskResult struct {
	Gameweek   int    `json:"gameweek"`
	Status     string `json:"status"`
	Persisted  int    `json:"persisted"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

type BackfillResult struct {
	TaskCount    int                  `json:"task_count"`
	SuccessCount int                  `json:"success_count"`
	FailedCount  int                  `json:"failed_count"`
	WorkerCount  int                  `json:"worker_count"`
	Tasks        []BackfillTaskResult `json:"tasks"`
}

func (s *BackfillService) Run(ctx context.Context, in BackfillInput) (BackfillResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BackfillService.Run")
	defer span.End()

	if in.Season == "" {
		return BackfillResult{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if len(in.Gameweeks) == 0 {
		return BackfillResult{}, fmt.Errorf("%w: at least one gameweek is required", ErrInvalidInput)
	}
	for _, gw := range in.Gameweeks {
		if gw <= 0 {
			return BackfillResult{}, fmt.Errorf("%w: gameweek must be greater than zero", ErrInvalidInput)
		}
	}

	workerCount := in.MaxWorkers
	if workerCount < 1 {
		workerCount = 2
	}
	if workerCount > len(in.Gameweeks) {
		workerCount = len(in.Gameweeks)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BackfillResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var failedCount atomic.Int32
	tasks := make([]BackfillTaskResult, len(in.Gameweeks))

	var workers sync.WaitGroup
	for idx, gw := range in.Gameweeks {
		idx, gw := idx, gw
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := BackfillTaskResult{Gameweek: gw, Status: backfillStatusSuccess}

			runResult, runErr := s.ingest.Run(ctx, in.Season, gw)
			row.Persisted = runResult.Persisted
			if runErr != nil {
				row.Status = backfillStatusFailed
				row.Message = runErr.Error()
				failedCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()
			tasks[idx] = row
		}); err != nil {
			workers.Done()
			tasks[idx] = BackfillTaskResult{
				Gameweek: gw,
				Status:   backfillStatusFailed,
				Message:  fmt.Sprintf("submit task: %v", err),
			}
			failedCount.Add(1)
		}
	}
	workers.Wait()

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Gameweek < tasks[j].Gameweek })

	result := BackfillResult{
		TaskCount:   len(tasks),
		FailedCount: int(failedCount.Load()),
		WorkerCount: workerCount,
		Tasks:       tasks,
	}
	result.SuccessCount = result.TaskCount - result.FailedCount

	s.logger.InfoContext(ctx, "backfill finished",
		"tasks", result.TaskCount,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
		"workers", result.WorkerCount,
	)

	return result, nil
}
