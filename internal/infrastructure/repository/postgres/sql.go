package postgres

import (
	"database/sql"
	"errors"
)

// isNotFound matches the no-rows result of a Get, including when a driver
// wraps it.
func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
