package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hjwoodall/prediction-league/internal/domain/submission"
	"github.com/hjwoodall/prediction-league/internal/infrastructure/repository/memory"
)

type fakeSource struct {
	descriptors map[int][]submission.Descriptor
	bodies      map[string][]byte
	failures    map[string]error
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		descriptors: make(map[int][]submission.Descriptor),
		bodies:      make(map[string][]byte),
		failures:    make(map[string]error),
	}
}

func (f *fakeSource) add(gameweek int, name string, lastModified time.Time, body string) {
	f.descriptors[gameweek] = append(f.descriptors[gameweek], submission.Descriptor{
		Name:         name,
		LastModified: lastModified,
		Size:         int64(len(body)),
	})
	f.bodies[name] = []byte(body)
}

func (f *fakeSource) List(_ context.Context, _ string, gameweek int) ([]submission.Descriptor, error) {
	return append([]submission.Descriptor(nil), f.descriptors[gameweek]...), nil
}

func (f *fakeSource) Download(_ context.Context, name string) ([]byte, error) {
	if err, ok := f.failures[name]; ok {
		return nil, err
	}
	body, ok := f.bodies[name]
	if !ok {
		return nil, fmt.Errorf("unknown submission %s", name)
	}
	return body, nil
}

func newIngestFixture(source SubmissionSource) (*IngestService, *memory.PredictionRepository, *memory.SubmissionRepository) {
	teams := memory.NewTeamRepository(memory.SeedTeams(), memory.SeedTeamAliases())
	players := memory.NewPlayerRepository(memory.SeedPlayers(), memory.SeedDisplayAliases())
	fixtures := memory.NewFixtureRepository(memory.SeedFixtures())
	predictions := memory.NewPredictionRepository()
	watermarks := memory.NewSubmissionRepository()
	reconciler := NewReconcileService(fixtures, predictions, nil)
	svc := NewIngestService(source, teams, players, fixtures, watermarks, reconciler, 2, nil)
	return svc, predictions, watermarks
}

func TestIngestRun_ParsesAndPersists(t *testing.T) {
	source := newFakeSource()
	source.add(1, "2025-26/gw1/alan.txt", time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC), "Alan Shaw\nLiverpool 2-1 Everton\nArsenal 1 v 1 Spurs\n")

	svc, predictions, _ := newIngestFixture(source)
	result, err := svc.Run(context.Background(), memory.SeedSeason, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Submissions != 1 || result.Processed != 1 {
		t.Fatalf("expected 1 submission processed, got %+v", result)
	}
	if result.AliasRewrites != 1 {
		t.Fatalf("expected 1 alias rewrite for Spurs, got %d", result.AliasRewrites)
	}
	if result.Persisted != 2 {
		t.Fatalf("expected 2 persisted predictions, got %d", result.Persisted)
	}
	// The other three active players are filled with sentinels across all
	// five fixtures.
	if result.Filled != 15 {
		t.Fatalf("expected 15 filled predictions, got %d", result.Filled)
	}

	stored, err := predictions.ListByGameweek(context.Background(), memory.SeedSeason, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scores := make(map[string]string)
	for _, item := range stored {
		if item.Player == "Alan Shaw" {
			scores[item.FixtureID] = item.ScoreString()
		}
	}
	if scores["f-01"] != "2-1" {
		t.Fatalf("expected liverpool fixture 2-1, got %q", scores["f-01"])
	}
	if scores["f-02"] != "1-1" {
		t.Fatalf("expected arsenal fixture 1-1, got %q", scores["f-02"])
	}
}

func TestIngestRun_UnchangedSubmissionSkipped(t *testing.T) {
	source := newFakeSource()
	source.add(1, "2025-26/gw1/alan.txt", time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC), "Alan Shaw\nLiverpool 2-1 Everton\n")

	svc, predictions, _ := newIngestFixture(source)

	if _, err := svc.Run(context.Background(), memory.SeedSeason, 1); err != nil {
		t.Fatalf("unexpected error on first run: %v", err)
	}
	upserts := predictions.UpsertCount()

	result, err := svc.Run(context.Background(), memory.SeedSeason, 1)
	if err != nil {
		t.Fatalf("unexpected error on second run: %v", err)
	}
	if result.SkippedUnchanged != 1 {
		t.Fatalf("expected 1 skipped submission, got %d", result.SkippedUnchanged)
	}
	if result.Processed != 0 {
		t.Fatalf("expected nothing processed on re-run, got %d", result.Processed)
	}
	if predictions.UpsertCount() != upserts {
		t.Fatalf("expected no further upserts, got %d after %d", predictions.UpsertCount(), upserts)
	}
}

func TestIngestRun_ChangedContentReprocessed(t *testing.T) {
	source := newFakeSource()
	name := "2025-26/gw1/alan.txt"
	source.add(1, name, time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC), "Alan Shaw\nLiverpool 2-1 Everton\n")

	svc, predictions, _ := newIngestFixture(source)
	if _, err := svc.Run(context.Background(), memory.SeedSeason, 1); err != nil {
		t.Fatalf("unexpected error on first run: %v", err)
	}

	source.bodies[name] = []byte("Alan Shaw\nLiverpool 0-0 Everton\n")
	result, err := svc.Run(context.Background(), memory.SeedSeason, 1)
	if err != nil {
		t.Fatalf("unexpected error on second run: %v", err)
	}
	if result.Processed != 1 || result.SkippedUnchanged != 0 {
		t.Fatalf("expected changed submission to reprocess, got %+v", result)
	}

	stored, err := predictions.ListByGameweek(context.Background(), memory.SeedSeason, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, item := range stored {
		if item.Player == "Alan Shaw" && item.FixtureID == "f-01" && item.ScoreString() != "0-0" {
			t.Fatalf("expected corrected score 0-0, got %s", item.ScoreString())
		}
	}
}

func TestIngestRun_LaterSubmissionWins(t *testing.T) {
	source := newFakeSource()
	source.add(1, "2025-26/gw1/alan-v2.txt", time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC), "Alan Shaw\nLiverpool 0-0 Everton\n")
	source.add(1, "2025-26/gw1/alan-v1.txt", time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC), "Alan Shaw\nLiverpool 2-1 Everton\n")

	svc, predictions, _ := newIngestFixture(source)
	if _, err := svc.Run(context.Background(), memory.SeedSeason, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := predictions.ListByGameweek(context.Background(), memory.SeedSeason, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, item := range stored {
		if item.Player == "Alan Shaw" && item.FixtureID == "f-01" && item.ScoreString() != "0-0" {
			t.Fatalf("expected last-modified submission to win, got %s", item.ScoreString())
		}
	}
}

func TestIngestRun_DownloadFailureIsolated(t *testing.T) {
	source := newFakeSource()
	source.add(1, "2025-26/gw1/alan.txt", time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC), "Alan Shaw\nLiverpool 2-1 Everton\n")
	source.add(1, "2025-26/gw1/ben.txt", time.Date(2025, 8, 15, 11, 0, 0, 0, time.UTC), "Ben Mills\nArsenal 2-0 Spurs\n")
	source.failures["2025-26/gw1/ben.txt"] = errors.New("storage unavailable")

	svc, predictions, watermarks := newIngestFixture(source)
	result, err := svc.Run(context.Background(), memory.SeedSeason, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Failed != 1 {
		t.Fatalf("expected 1 failed submission, got %d", result.Failed)
	}
	if result.Processed != 1 {
		t.Fatalf("expected healthy submission to process, got %d", result.Processed)
	}

	// Ben's file failed transport, not submission. The fill waits for a
	// clean run so his predictions are never misrepresented as sentinels.
	if result.Filled != 0 {
		t.Fatalf("expected fill skipped while a download is failing, got %d", result.Filled)
	}
	stored, err := predictions.ListByGameweek(context.Background(), memory.SeedSeason, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, item := range stored {
		if item.Player == "Ben Mills" {
			t.Fatalf("expected no rows for Ben Mills before his file lands, got %+v", item)
		}
	}

	// The failed source carries no watermark, so the next run retries it.
	if _, found, _ := watermarks.Get(context.Background(), "2025-26/gw1/ben.txt"); found {
		t.Fatal("expected no watermark for failed submission")
	}

	delete(source.failures, "2025-26/gw1/ben.txt")
	result, err = svc.Run(context.Background(), memory.SeedSeason, 1)
	if err != nil {
		t.Fatalf("unexpected error on retry run: %v", err)
	}
	if result.Processed != 1 || result.SkippedUnchanged != 1 {
		t.Fatalf("expected retry to process only the failed file, got %+v", result)
	}
	if result.Filled == 0 {
		t.Fatal("expected sentinel fill to run once the gameweek is clean")
	}
}

func TestIngestRun_ChatExportFlattened(t *testing.T) {
	body := "[15/08/2025, 18:02:11] Al: Liverpool 2-1 Everton\n" +
		"[15/08/2025, 18:02:45] Al: Arsenal 1 v 1 Spurs\n" +
		"[15/08/2025, 18:05:03] Millsy: Burnley 0-2 Man Utd\n" +
		"[15/08/2025, 18:06:30] League Bot: reminder, deadline friday\n"

	source := newFakeSource()
	source.add(1, "2025-26/gw1/chat.txt", time.Date(2025, 8, 15, 19, 0, 0, 0, time.UTC), body)

	svc, predictions, _ := newIngestFixture(source)
	result, err := svc.Run(context.Background(), memory.SeedSeason, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Processed != 1 {
		t.Fatalf("expected chat export to process, got %+v", result)
	}

	stored, err := predictions.ListByGameweek(context.Background(), memory.SeedSeason, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scores := make(map[string]string)
	for _, item := range stored {
		scores[item.Player+"/"+item.FixtureID] = item.ScoreString()
	}
	if scores["Alan Shaw/f-01"] != "2-1" {
		t.Fatalf("expected Al's messages attributed to Alan Shaw, got %q", scores["Alan Shaw/f-01"])
	}
	if scores["Ben Mills/f-03"] != "0-2" {
		t.Fatalf("expected Millsy's message attributed to Ben Mills, got %q", scores["Ben Mills/f-03"])
	}
}

func TestIngestRun_NoSubmissions(t *testing.T) {
	svc, _, _ := newIngestFixture(newFakeSource())

	result, err := svc.Run(context.Background(), memory.SeedSeason, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Submissions != 0 || result.Processed != 0 {
		t.Fatalf("expected empty run result, got %+v", result)
	}
}

func TestIngestRun_RejectsInvalidInput(t *testing.T) {
	svc, _, _ := newIngestFixture(newFakeSource())

	if _, err := svc.Run(context.Background(), " ", 1); err == nil {
		t.Fatal("expected error for empty season")
	}
	if _, err := svc.Run(context.Background(), memory.SeedSeason, 0); err == nil {
		t.Fatal("expected error for zero gameweek")
	}
}
