package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/hjwoodall/prediction-league/internal/domain/fixture"
)

type FixtureRepository struct {
	mu                 sync.RWMutex
	fixturesByGameweek map[string][]fixture.Fixture
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	fixturesByGameweek := make(map[string][]fixture.Fixture)
	for _, item := range fixtures {
		key := gameweekKey(item.Season, item.Gameweek)
		fixturesByGameweek[key] = append(fixturesByGameweek[key], item)
	}

	return &FixtureRepository{fixturesByGameweek: fixturesByGameweek}
}

func (r *FixtureRepository) ListByGameweek(_ context.Context, season string, gameweek int) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.fixturesByGameweek[gameweekKey(season, gameweek)]
	out := make([]fixture.Fixture, 0, len(items))
	out = append(out, items...)
	return out, nil
}

func (r *FixtureRepository) FindByTeams(_ context.Context, season string, gameweek int, home, away string) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.fixturesByGameweek[gameweekKey(season, gameweek)] {
		if item.HomeTeam == home && item.AwayTeam == away {
			return item, true, nil
		}
	}
	return fixture.Fixture{}, false, nil
}

func (r *FixtureRepository) Upsert(_ context.Context, item fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := gameweekKey(item.Season, item.Gameweek)
	items := r.fixturesByGameweek[key]
	for i := range items {
		if items[i].HomeTeam == item.HomeTeam && items[i].AwayTeam == item.AwayTeam {
			items[i] = item
			return nil
		}
	}
	r.fixturesByGameweek[key] = append(items, item)
	return nil
}

func gameweekKey(season string, gameweek int) string {
	return fmt.Sprintf("%s/%d", season, gameweek)
}
