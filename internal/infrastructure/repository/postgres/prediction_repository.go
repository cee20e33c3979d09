package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hjwoodall/prediction-league/internal/domain/prediction"
	qb "github.com/hjwoodall/prediction-league/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// UpsertSet writes the whole reconciled set in one transaction so a failed
// run never leaves a half-written gameweek behind.
func (r *PredictionRepository) UpsertSet(ctx context.Context, items []prediction.Prediction) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert predictions: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := predictionInsertModel{
			Season:          item.Season,
			Gameweek:        item.Gameweek,
			PlayerName:      item.Player,
			FixtureID:       item.FixtureID,
			HomeTeam:        item.HomeTeam,
			AwayTeam:        item.AwayTeam,
			HomeGoals:       item.HomeGoals,
			AwayGoals:       item.AwayGoals,
			PredictedResult: string(item.Result),
		}
		query, args, err := qb.InsertModel("predictions", insertModel, `ON CONFLICT (player_name, fixture_public_id)
DO UPDATE SET
    home_team = EXCLUDED.home_team,
    away_team = EXCLUDED.away_team,
    home_goals = EXCLUDED.home_goals,
    away_goals = EXCLUDED.away_goals,
    predicted_result = EXCLUDED.predicted_result,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert prediction query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert prediction for %s: %w", item.Player, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert predictions: %w", err)
	}

	return nil
}

func (r *PredictionRepository) ListByGameweek(ctx context.Context, season string, gameweek int) ([]prediction.Prediction, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(
			qb.Eq("season", season),
			qb.Eq("gameweek", gameweek),
		).
		OrderBy("player_name", "fixture_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select predictions by gameweek query: %w", err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select predictions by gameweek: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, prediction.Prediction{
			Season:    row.Season,
			Gameweek:  row.Gameweek,
			Player:    row.PlayerName,
			FixtureID: row.FixtureID,
			HomeTeam:  row.HomeTeam,
			AwayTeam:  row.AwayTeam,
			HomeGoals: row.HomeGoals,
			AwayGoals: row.AwayGoals,
			Result:    prediction.Result(row.PredictedResult),
		})
	}

	return out, nil
}
