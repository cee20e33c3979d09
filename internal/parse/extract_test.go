package parse

import (
	"reflect"
	"testing"

	"github.com/hjwoodall/prediction-league/internal/domain/prediction"
)

func TestScanScores(t *testing.T) {
	cases := []struct {
		line string
		want []int
	}{
		{"liverpool 2 v 1 everton", []int{2, 1}},
		{"liverpool 2-1 everton", []int{2, 1}},
		{"liverpool 2 1 everton", []int{2, 1}},
		{"liverpool 10-0 everton", []int{10, 0}},
		{"liverpool v everton", nil},
		{"liverpool 3 everton", []int{3}},
		{"liverpool 9999 v 1 everton", []int{9999, 1}},
		{"liverpool 99999 v 1 everton", []int{1}},
		{"liverpool 9999999999999999999 v 1 everton", []int{1}},
	}

	for _, tc := range cases {
		if got := ScanScores(tc.line); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("ScanScores(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestScanTeams_PreservesTextOrder(t *testing.T) {
	ctx := testContext(t)

	got := ctx.ScanTeams("everton 1 v 2 liverpool")
	want := []string{"everton", "liverpool"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ScanTeams = %v, want %v", got, want)
	}
}

func TestScanTeams_LongestNameWins(t *testing.T) {
	ctx := testContext(t)

	// "aston villa" must match as one team, not leave a partial token that
	// confuses the pair count.
	got := ctx.ScanTeams("aston villa 0-3 man utd")
	want := []string{"aston villa", "man utd"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ScanTeams = %v, want %v", got, want)
	}
}

func TestScanTeams_NotExactlyTwo(t *testing.T) {
	ctx := testContext(t)

	if got := ctx.ScanTeams("liverpool all the way"); got != nil {
		t.Fatalf("expected nil for single team, got %v", got)
	}
	if got := ctx.ScanTeams("liverpool everton arsenal"); got != nil {
		t.Fatalf("expected nil for three teams, got %v", got)
	}
}

func TestExtract_PlayerStateMachine(t *testing.T) {
	ctx := testContext(t)

	lines := []string{
		"Alan Shaw",
		"liverpool 2 v 1 everton",
		"arsenal 0-0 tottenham",
		"Ben Mills",
		"liverpool 3-1 everton",
	}

	preds, skipped := ctx.Extract(lines)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %+v", skipped)
	}
	if len(preds) != 3 {
		t.Fatalf("expected 3 predictions, got %d", len(preds))
	}
	if preds[0].Player != "Alan Shaw" || preds[1].Player != "Alan Shaw" {
		t.Fatalf("first two predictions should belong to Alan Shaw: %+v", preds[:2])
	}
	if preds[2].Player != "Ben Mills" {
		t.Fatalf("third prediction should belong to Ben Mills: %+v", preds[2])
	}
	if preds[0].HomeTeam != "liverpool" || preds[0].AwayTeam != "everton" {
		t.Fatalf("text order not preserved: %+v", preds[0])
	}
	if preds[0].HomeGoals != 2 || preds[0].AwayGoals != 1 {
		t.Fatalf("unexpected goals: %+v", preds[0])
	}
}

func TestExtract_LinesBeforeAnyPlayerAreSkipped(t *testing.T) {
	ctx := testContext(t)

	lines := []string{
		"liverpool 2 v 1 everton",
		"Alan Shaw",
		"arsenal 1-1 tottenham",
	}

	preds, skipped := ctx.Extract(lines)
	if len(preds) != 1 {
		t.Fatalf("expected 1 prediction, got %d", len(preds))
	}
	if len(skipped) != 1 || skipped[0].Reason != SkipNoActivePlayer {
		t.Fatalf("expected one no-player skip, got %+v", skipped)
	}
}

func TestExtract_InactivePlayerDoesNotSwitchContext(t *testing.T) {
	ctx := testContext(t)

	lines := []string{
		"Alan Shaw",
		"Ed Tansley",
		"liverpool 2-0 everton",
	}

	preds, _ := ctx.Extract(lines)
	if len(preds) != 1 {
		t.Fatalf("expected 1 prediction, got %d", len(preds))
	}
	// Ed Tansley is inactive; his name line is an ordinary (unparseable)
	// line and the prediction stays with Alan Shaw.
	if preds[0].Player != "Alan Shaw" {
		t.Fatalf("prediction attributed to %q, want Alan Shaw", preds[0].Player)
	}
}

func TestExtract_SingleScoreBecomesSentinel(t *testing.T) {
	ctx := testContext(t)

	lines := []string{
		"Alan Shaw",
		"liverpool 2 everton",
	}

	preds, skipped := ctx.Extract(lines)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %+v", skipped)
	}
	if len(preds) != 1 {
		t.Fatalf("expected 1 prediction, got %d", len(preds))
	}
	if preds[0].HomeGoals != prediction.SentinelGoals || preds[0].AwayGoals != prediction.SentinelGoals {
		t.Fatalf("expected sentinel goals, got %d-%d", preds[0].HomeGoals, preds[0].AwayGoals)
	}
}

func TestExtract_OversizedScoreBecomesSentinel(t *testing.T) {
	ctx := testContext(t)

	lines := []string{
		"Alan Shaw",
		"liverpool 9999999999999999999 v 1 everton",
	}

	preds, skipped := ctx.Extract(lines)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %+v", skipped)
	}
	if len(preds) != 1 {
		t.Fatalf("expected 1 prediction, got %d", len(preds))
	}
	// The absurd digit run is discarded, leaving one usable score, which is
	// the unparseable-score case: both goals fall back to the sentinel.
	if preds[0].HomeGoals != prediction.SentinelGoals || preds[0].AwayGoals != prediction.SentinelGoals {
		t.Fatalf("expected sentinel goals, got %d-%d", preds[0].HomeGoals, preds[0].AwayGoals)
	}
}

func TestExtract_NoScoresIsSkipped(t *testing.T) {
	ctx := testContext(t)

	lines := []string{
		"Alan Shaw",
		"liverpool v everton",
	}

	preds, skipped := ctx.Extract(lines)
	if len(preds) != 0 {
		t.Fatalf("expected no predictions, got %+v", preds)
	}
	if len(skipped) != 1 || skipped[0].Reason != SkipNoScores {
		t.Fatalf("expected no-scores skip, got %+v", skipped)
	}
}

func TestExtract_SeparatorAgnostic(t *testing.T) {
	ctx := testContext(t)

	variants := []string{
		"liverpool 2 v 1 everton",
		"liverpool 2-1 everton",
		"liverpool 2 - 1 everton",
		"liverpool 2 1 everton",
		"Liverpool 2 V 1 Everton",
	}

	for _, line := range variants {
		preds, skipped := ctx.Extract([]string{"Alan Shaw", line})
		if len(skipped) != 0 {
			t.Fatalf("line %q skipped: %+v", line, skipped)
		}
		if len(preds) != 1 {
			t.Fatalf("line %q: expected 1 prediction, got %d", line, len(preds))
		}
		p := preds[0]
		if p.HomeTeam != "liverpool" || p.AwayTeam != "everton" || p.HomeGoals != 2 || p.AwayGoals != 1 {
			t.Fatalf("line %q extracted wrong: %+v", line, p)
		}
	}
}
