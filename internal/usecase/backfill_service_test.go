package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/hjwoodall/prediction-league/internal/infrastructure/repository/memory"
)

func TestBackfillRun_ProcessesGameweeks(t *testing.T) {
	source := newFakeSource()
	source.add(1, "2025-26/gw1/round.txt", time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC), "Alan Shaw\nLiverpool 2-1 Everton\n")

	ingest, _, _ := newIngestFixture(source)
	svc := NewBackfillService(ingest, nil)

	result, err := svc.Run(context.Background(), BackfillInput{
		Season:     memory.SeedSeason,
		Gameweeks:  []int{2, 1},
		MaxWorkers: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TaskCount != 2 || result.SuccessCount != 2 || result.FailedCount != 0 {
		t.Fatalf("expected 2 successful tasks, got %+v", result)
	}
	if result.Tasks[0].Gameweek != 1 || result.Tasks[1].Gameweek != 2 {
		t.Fatalf("expected tasks sorted by gameweek, got %+v", result.Tasks)
	}
	if result.Tasks[0].Persisted != 1 {
		t.Fatalf("expected 1 persisted prediction in gameweek 1, got %d", result.Tasks[0].Persisted)
	}
	if result.Tasks[1].Persisted != 0 {
		t.Fatalf("expected nothing persisted in empty gameweek 2, got %d", result.Tasks[1].Persisted)
	}
}

func TestBackfillRun_CapsWorkersAtTaskCount(t *testing.T) {
	ingest, _, _ := newIngestFixture(newFakeSource())
	svc := NewBackfillService(ingest, nil)

	result, err := svc.Run(context.Background(), BackfillInput{
		Season:     memory.SeedSeason,
		Gameweeks:  []int{1},
		MaxWorkers: 8,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.WorkerCount != 1 {
		t.Fatalf("expected worker count capped at 1, got %d", result.WorkerCount)
	}
}

func TestBackfillRun_RejectsInvalidInput(t *testing.T) {
	ingest, _, _ := newIngestFixture(newFakeSource())
	svc := NewBackfillService(ingest, nil)

	if _, err := svc.Run(context.Background(), BackfillInput{Gameweeks: []int{1}}); err == nil {
		t.Fatal("expected error for empty season")
	}
	if _, err := svc.Run(context.Background(), BackfillInput{Season: memory.SeedSeason}); err == nil {
		t.Fatal("expected error for empty gameweek list")
	}
	if _, err := svc.Run(context.Background(), BackfillInput{Season: memory.SeedSeason, Gameweeks: []int{0}}); err == nil {
		t.Fatal("expected error for zero gameweek")
	}
}
