package fixture

import (
	"context"
	"fmt"
)

// Resolver maps an extracted (home, away) pair onto the fixture calendar,
// trying both team orders. Swapped is true when only the reversed order
// matched; the caller must then swap the extracted goals so they stay
// attached to the correct physical team.
type Resolver struct {
	repo Repository
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

func (r *Resolver) Resolve(ctx context.Context, season string, gameweek int, home, away string) (Fixture, bool, bool, error) {
	if home == "" || away == "" {
		return Fixture{}, false, false, fmt.Errorf("home and away team are required")
	}

	item, found, err := r.repo.FindByTeams(ctx, season, gameweek, home, away)
	if err != nil {
		return Fixture{}, false, false, fmt.Errorf("find fixture %s v %s: %w", home, away, err)
	}
	if found {
		return item, false, true, nil
	}

	item, found, err = r.repo.FindByTeams(ctx, season, gameweek, away, home)
	if err != nil {
		return Fixture{}, false, false, fmt.Errorf("find fixture %s v %s reversed: %w", home, away, err)
	}
	if found {
		return item, true, true, nil
	}

	return Fixture{}, false, false, nil
}
