package postgres

import "time"

type predictionTableModel struct {
	ID              int64     `db:"id"`
	Season          string    `db:"season"`
	Gameweek        int       `db:"gameweek"`
	PlayerName      string    `db:"player_name"`
	FixtureID       string    `db:"fixture_public_id"`
	HomeTeam        string    `db:"home_team"`
	AwayTeam        string    `db:"away_team"`
	HomeGoals       int       `db:"home_goals"`
	AwayGoals       int       `db:"away_goals"`
	PredictedResult string    `db:"predicted_result"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type predictionInsertModel struct {
	Season          string `db:"season"`
	Gameweek        int    `db:"gameweek"`
	PlayerName      string `db:"player_name"`
	FixtureID       string `db:"fixture_public_id"`
	HomeTeam        string `db:"home_team"`
	AwayTeam        string `db:"away_team"`
	HomeGoals       int    `db:"home_goals"`
	AwayGoals       int    `db:"away_goals"`
	PredictedResult string `db:"predicted_result"`
}
