package sqlite

import (
	"database/sql"
)

// Open opens a SQLite handle with foreign keys enabled and a busy timeout,
// without the store wrapper. Used by the migration runner.
func Open(dsn string) (*sql.DB, error) {
	dbPath, err := ResolvePath(dsn)
	if err != nil {
		return nil, err
	}
	return openSQL(dbPath)
}

func openSQL(dbPath string) (*sql.DB, error) {
	return sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_busy_timeout=5000")
}
