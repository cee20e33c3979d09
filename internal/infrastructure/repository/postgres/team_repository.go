package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hjwoodall/prediction-league/internal/domain/team"
	qb "github.com/hjwoodall/prediction-league/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		OrderBy("canonical").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{
			ID:        row.PublicID,
			Canonical: row.Canonical,
		})
	}

	return out, nil
}

func (r *TeamRepository) ListAliases(ctx context.Context) ([]team.Alias, error) {
	query, args, err := qb.Select("*").From("team_aliases").
		OrderBy("alias").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team aliases query: %w", err)
	}

	var rows []teamAliasTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team aliases: %w", err)
	}

	out := make([]team.Alias, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Alias{
			Alias:     row.Alias,
			Canonical: row.Canonical,
		})
	}

	return out, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) error {
	insertModel := teamInsertModel{
		PublicID:  item.ID,
		Canonical: item.Canonical,
	}
	query, args, err := qb.InsertModel("teams", insertModel, `ON CONFLICT (canonical)
DO UPDATE SET
    public_id = EXCLUDED.public_id,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team: %w", err)
	}
	return nil
}

func (r *TeamRepository) UpsertAlias(ctx context.Context, item team.Alias) error {
	insertModel := teamAliasInsertModel{
		Alias:     item.Alias,
		Canonical: item.Canonical,
	}
	query, args, err := qb.InsertModel("team_aliases", insertModel, `ON CONFLICT (alias)
DO UPDATE SET
    canonical = EXCLUDED.canonical`)
	if err != nil {
		return fmt.Errorf("build upsert team alias query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team alias: %w", err)
	}
	return nil
}
