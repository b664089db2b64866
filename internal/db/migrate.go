package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/bloghq/blogapi/internal/config"
	"github.com/bloghq/blogapi/internal/db/sqlite"
)

// RunMigrations applies all pending migrations from migrationsDir to the
// database selected by the settings.
func RunMigrations(settings *config.Settings, migrationsDir string) error {
	m, cleanup, err := newMigrate(settings, migrationsDir)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// MigrationVersion reports the current migration version and dirty flag. A
// fresh database reports version 0.
func MigrationVersion(settings *config.Settings, migrationsDir string) (uint, bool, error) {
	m, cleanup, err := newMigrate(settings, migrationsDir)
	if err != nil {
		return 0, false, err
	}
	defer cleanup()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, dirty, nil
}

func newMigrate(settings *config.Settings, migrationsDir string) (*migrate.Migrate, func(), error) {
	if migrationsDir == "" {
		migrationsDir = "/migrations"
		if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
			workDir, _ := os.Getwd()
			migrationsDir = filepath.Join(workDir, "internal", "db", "migrations")
		}
	}

	absPath, err := filepath.Abs(migrationsDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve migrations path: %w", err)
	}
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("migrations directory not found: %s", absPath)
	}

	driverName := settings.Driver()

	var sqlDB *sql.DB
	switch driverName {
	case "sqlite3":
		sqlDB, err = sqlite.Open(settings.DatabaseDSN())
	case "postgres":
		sqlDB, err = sql.Open("postgres", settings.DatabaseDSN())
	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %s", driverName)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	var driver database.Driver
	switch driverName {
	case "sqlite3":
		driver, err = migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	case "postgres":
		driver, err = migratepg.WithInstance(sqlDB, &migratepg.Config{})
	}
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+absPath, driverName, driver)
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return m, func() { sqlDB.Close() }, nil
}
