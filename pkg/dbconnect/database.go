package dbconnect

import "database/sql"

type Database interface {
	Connect() (*sql.DB, error)
	Ping() error
	// Dialect names the SQL flavour so callers can pick placeholders and upserts.
	Dialect() string
}
