package memory

import (
	"context"
	"sync"

	"github.com/hjwoodall/prediction-league/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players []player.Player
	aliases []player.DisplayAlias
}

func NewPlayerRepository(players []player.Player, aliases []player.DisplayAlias) *PlayerRepository {
	return &PlayerRepository{players: players, aliases: aliases}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	out = append(out, r.players...)
	return out, nil
}

func (r *PlayerRepository) ListActive(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	for _, item := range r.players {
		if item.Active {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *PlayerRepository) ListDisplayAliases(_ context.Context) ([]player.DisplayAlias, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.DisplayAlias, 0, len(r.aliases))
	out = append(out, r.aliases...)
	return out, nil
}

func (r *PlayerRepository) Upsert(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.players {
		if r.players[i].Name == item.Name {
			r.players[i] = item
			return nil
		}
	}
	r.players = append(r.players, item)
	return nil
}

func (r *PlayerRepository) UpsertDisplayAlias(_ context.Context, item player.DisplayAlias) error {
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
