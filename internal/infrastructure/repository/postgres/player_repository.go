package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hjwoodall/prediction-league/internal/domain/player"
	qb "github.com/hjwoodall/prediction-league/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	return playersFromRows(rows), nil
}

func (r *PlayerRepository) ListActive(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("active", true)).
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select active players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select active players: %w", err)
	}

	return playersFromRows(rows), nil
}

func (r *PlayerRepository) ListDisplayAliases(ctx context.Context) ([]player.DisplayAlias, error) {
	query, args, err := qb.Select("*").From("player_aliases").
		OrderBy("alias").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player aliases query: %w", err)
	}

	var rows []playerAliasTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player aliases: %w", err)
	}

	out := make([]player.DisplayAlias, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.DisplayAlias{
			Alias:      row.Alias,
			PlayerName: row.PlayerName,
		})
	}

	return out, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) error {
	insertModel := playerInsertModel{
		PublicID: item.ID,
		Name:     item.Name,
		Active:   item.Active,
	}
	query, args, err := qb.InsertModel("players", insertModel, `ON CONFLICT (name)
DO UPDATE SET
    public_id = EXCLUDED.public_id,
    active = EXCLUDED.active,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) UpsertDisplayAlias(ctx context.Context, item player.DisplayAlias) error {
	insertModel := playerAliasInsertModel{
		Alias:      item.Alias,
		PlayerName: item.PlayerName,
	}
	query, args, err := qb.InsertModel("player_aliases", insertModel, `ON CONFLICT (alias)
DO UPDATE SET
    player_name = EXCLUDED.player_name`)
	if err != nil {
		return fmt.Errorf("build upsert player alias query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player alias: %w", err)
	}
	return nil
}

func playersFromRows(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{
			ID:     row.PublicID,
			Name:   row.Name,
			Active: row.Active,
		})
	}
	return out
}
