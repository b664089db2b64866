package db

import (
	"fmt"

	"github.com/bloghq/blogapi/internal/config"
	"github.com/bloghq/blogapi/internal/db/postgres"
	"github.com/bloghq/blogapi/internal/db/sqlite"
)

// New creates the store selected by the settings. The backend follows the
// effective database DSN: DATABASE_URL when set, otherwise PostgreSQL in
// production and a local SQLite file in development.
func New(settings *config.Settings) (Store, error) {
	switch driver := settings.Driver(); driver {
	case "sqlite3":
		return sqlite.New(settings.DatabaseDSN()), nil
	case "postgres":
		return postgres.New(settings.DatabaseDSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}
