package postgres

import "time"

type fixtureTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	Season    string    `db:"season"`
	Gameweek  int       `db:"gameweek"`
	HomeTeam  string    `db:"home_team"`
	AwayTeam  string    `db:"away_team"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type fixtureInsertModel struct {
	PublicID string `db:"public_id"`
	Season   string `db:"season"`
	Gameweek int    `db:"gameweek"`
	HomeTeam string `db:"home_team"`
	AwayTeam string `db:"away_team"`
}
