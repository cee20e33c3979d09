package postgres

import "time"

type teamTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	Canonical string    `db:"canonical"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type teamInsertModel struct {
	PublicID  string `db:"public_id"`
	Canonical string `db:"canonical"`
}

type teamAliasTableModel struct {
	ID        int64     `db:"id"`
	Alias     string    `db:"alias"`
	Canonical string    `db:"canonical"`
	CreatedAt time.Time `db:"created_at"`
}

type teamAliasInsertModel struct {
	Alias     string `db:"alias"`
	Canonical string `db:"canonical"`
}
