package fixture

import "context"

// Repository exposes fixture calendar reads. FindByTeams matches the exact
// team order only; either-order resolution lives in Resolver.
type Repository interface {
	ListByGameweek(ctx context.Context, season string, gameweek int) ([]Fixture, error)
	FindByTeams(ctx context.Context, season string, gameweek int, home, away string) (Fixture, bool, error)
}
