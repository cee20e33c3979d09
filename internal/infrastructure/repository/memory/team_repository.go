package memory

import (
	"context"
	"sync"

	"github.com/hjwoodall/prediction-league/internal/domain/team"
)

type TeamRepository struct {
	mu      sync.RWMutex
	teams   []team.Team
	aliases []team.Alias
}

func NewTeamRepository(teams []team.Team, aliases []team.Alias) *TeamRepository {
	return &TeamRepository{teams: teams, aliases: aliases}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	out = append(out, r.teams...)
	return out, nil
}

func (r *TeamRepository) ListAliases(_ context.Context) ([]team.Alias, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Alias, 0, len(r.aliases))
	out = append(out, r.aliases...)
	return out, nil
}

func (r *TeamRepository) Upsert(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.teams {
		if r.teams[i].Canonical == item.Canonical {
			r.teams[i] = item
			return nil
		}
	}
	r.teams = append(r.teams, item)
	return nil
}

func (r *TeamRepository) UpsertAlias(_ context.Context, item team.Alias) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.aliases {
		if r.aliases[i].Alias == item.Alias {
			r.aliases[i] = item
			return nil
		}
	}
	r.aliases = append(r.aliases, item)
	return nil
}
