package cache

import (
	"context"
	"strconv"

	"github.com/hjwoodall/prediction-league/internal/domain/fixture"
	"github.com/hjwoodall/prediction-league/internal/domain/player"
	"github.com/hjwoodall/prediction-league/internal/domain/team"
	basecache "github.com/hjwoodall/prediction-league/internal/platform/cache"
)

// Read-through decorators over the reference-data repositories. Only the
// slow-changing lookup tables are cached; predictions and watermarks always
// hit the store directly.

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) ListAliases(ctx context.Context) ([]team.Alias, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:aliases", func(ctx context.Context) (any, error) {
		items, err := r.next.ListAliases(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Alias(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Alias)
	return append([]team.Alias(nil), items...), nil
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) ListActive(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:active", func(ctx context.Context) (any, error) {
		items, err := r.next.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) ListDisplayAliases(ctx context.Context) ([]player.DisplayAlias, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:display-aliases", func(ctx context.Context) (any, error) {
		items, err := r.next.ListDisplayAliases(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.DisplayAlias(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.DisplayAlias)
	return append([]player.DisplayAlias(nil), items...), nil
}

type FixtureRepository struct {
	next  fixture.Repository
	cache *basecache.Store
}

func NewFixtureRepository(next fixture.Repository, cache *basecache.Store) *FixtureRepository {
	return &FixtureRepository{next: next, cache: cache}
}

func (r *FixtureRepository) ListByGameweek(ctx context.Context, season string, gameweek int) ([]fixture.Fixture, error) {
	key := "fixture:gw:" + season + ":" + strconv.Itoa(gameweek)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByGameweek(ctx, season, gameweek)
		if err != nil {
			return nil, err
		}
		return append([]fixture.Fixture(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]fixture.Fixture)
	return append([]fixture.Fixture(nil), items...), nil
}

func (r *FixtureRepository) FindByTeams(ctx context.Context, season string, gameweek int, home, away string) (fixture.Fixture, bool, error) {
	key := "fixture:teams:" + season + ":" + strconv.Itoa(gameweek) + ":" + home + ":" + away
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.FindByTeams(ctx, season, gameweek, home, away)
		if err != nil {
			return nil, err
		}
		return cachedFixtureLookup{value: item, exists: exists}, nil
	})
	if err != nil {
		return fixture.Fixture{}, false, err
	}

	cached, _ := v.(cachedFixtureLookup)
	return cached.value, cached.exists, nil
}

type cachedFixtureLookup struct {
	value  fixture.Fixture
	exists bool
}
