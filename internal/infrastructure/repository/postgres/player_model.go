package postgres

import "time"

type playerTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type playerInsertModel struct {
	PublicID string `db:"public_id"`
	Name     string `db:"name"`
	Active   bool   `db:"active"`
}

type playerAliasTableModel struct {
	ID         int64     `db:"id"`
	Alias      string    `db:"alias"`
	PlayerName string    `db:"player_name"`
	CreatedAt  time.Time `db:"created_at"`
}

type playerAliasInsertModel struct {
	Alias      string `db:"alias"`
	PlayerName string `db:"player_name"`
}
