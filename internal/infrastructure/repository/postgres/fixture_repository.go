package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hjwoodall/prediction-league/internal/domain/fixture"
	qb "github.com/hjwoodall/prediction-league/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) ListByGameweek(ctx context.Context, season string, gameweek int) ([]fixture.Fixture, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(
			qb.Eq("season", season),
			qb.Eq("gameweek", gameweek),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures by gameweek query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures by gameweek: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureFromRow(row))
	}

	return out, nil
}

func (r *FixtureRepository) FindByTeams(ctx context.Context, season string, gameweek int, home, away string) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(
			qb.Eq("season", season),
			qb.Eq("gameweek", gameweek),
			qb.Eq("home_team", home),
			qb.Eq("away_team", away),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build find fixture by teams query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("find fixture by teams: %w", err)
	}

	return fixtureFromRow(row), true, nil
}

func (r *FixtureRepository) Upsert(ctx context.Context, item fixture.Fixture) error {
	insertModel := fixtureInsertModel{
		PublicID: item.ID,
		Season:   item.Season,
		Gameweek: item.Gameweek,
		HomeTeam: item.HomeTeam,
		AwayTeam: item.AwayTeam,
	}
	query, args, err := qb.InsertModel("fixtures", insertModel, `ON CONFLICT (season, gameweek, home_team, away_team)
DO UPDATE SET
    public_id = EXCLUDED.public_id,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert fixture query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert fixture: %w", err)
	}
	return nil
}

func fixtureFromRow(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		ID:       row.PublicID,
		Season:   row.Season,
		Gameweek: row.Gameweek,
		HomeTeam: row.HomeTeam,
		AwayTeam: row.AwayTeam,
	}
}
