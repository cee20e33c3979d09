package postgres

import "time"

type submissionTableModel struct {
	ID           int64     `db:"id"`
	Source       string    `db:"source"`
	ContentHash  string    `db:"content_hash"`
	LastModified time.Time `db:"last_modified"`
	ProcessedAt  time.Time `db:"processed_at"`
}

type submissionInsertModel struct {
	Source       string    `db:"source"`
	ContentHash  string    `db:"content_hash"`
	LastModified time.Time `db:"last_modified"`
	ProcessedAt  time.Time `db:"processed_at"`
}
