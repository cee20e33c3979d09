package fixture

import (
	"context"
	"testing"
)

type stubRepository struct {
	fixtures []Fixture
}

func (r *stubRepository) ListByGameweek(_ context.Context, season string, gameweek int) ([]Fixture, error) {
	var out []Fixture
	for _, f := range r.fixtures {
		if f.Season == season && f.Gameweek == gameweek {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *stubRepository) FindByTeams(_ context.Context, season string, gameweek int, home, away string) (Fixture, bool, error) {
	for _, f := range r.fixtures {
		if f.Season == season && f.Gameweek == gameweek && f.HomeTeam == home && f.AwayTeam == away {
			return f, true, nil
		}
	}
	return Fixture{}, false, nil
}

func TestResolver_ExactOrder(t *testing.T) {
	repo := &stubRepository{fixtures: []Fixture{
		{ID: "f-01", Season: "2025/26", Gameweek: 1, HomeTeam: "liverpool", AwayTeam: "everton"},
	}}
	resolver := NewResolver(repo)

	got, swapped, found, err := resolver.Resolve(context.Background(), "2025/26", 1, "liverpool", "everton")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !found {
		t.Fatalf("fixture not found")
	}
	if swapped {
		t.Fatalf("exact-order match reported as swapped")
	}
	if got.ID != "f-01" {
		t.Fatalf("unexpected fixture: %+v", got)
	}
}

func TestResolver_ReversedOrder(t *testing.T) {
	repo := &stubRepository{fixtures: []Fixture{
		{ID: "f-03", Season: "2025/26", Gameweek: 1, HomeTeam: "burnley", AwayTeam: "man utd"},
	}}
	resolver := NewResolver(repo)

	got, swapped, found, err := resolver.Resolve(context.Background(), "2025/26", 1, "man utd", "burnley")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !found {
		t.Fatalf("fixture not found in reversed order")
	}
	if !swapped {
		t.Fatalf("reversed match must report swapped")
	}
	if got.HomeTeam != "burnley" || got.AwayTeam != "man utd" {
		t.Fatalf("unexpected fixture: %+v", got)
	}
}

func TestResolver_NotFound(t *testing.T) {
	resolver := NewResolver(&stubRepository{})

	_, _, found, err := resolver.Resolve(context.Background(), "2025/26", 1, "liverpool", "everton")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if found {
		t.Fatalf("expected not found")
	}
}

func TestResolver_RequiresTeams(t *testing.T) {
	resolver := NewResolver(&stubRepository{})

	if _, _, _, err := resolver.Resolve(context.Background(), "2025/26", 1, "", "everton"); err == nil {
		t.Fatalf("expected error for empty home team")
	}
}
