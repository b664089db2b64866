package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bloghq/blogapi/internal/db/sqlstore"
)

// Store implements the blog store on SQLite.
type Store struct {
	sqlstore.Store
	dsn string
}

// New creates a new SQLite store for the given DSN
// (sqlite://path/to/blog.db or a bare file path).
func New(dsn string) *Store {
	return &Store{
		Store: sqlstore.Store{Dialect: sqlstore.DialectSQLite},
		dsn:   dsn,
	}
}

// Connect opens the database file, creating its directory when needed, and
// ensures the schema exists.
func (s *Store) Connect(ctx context.Context) error {
	dbPath, err := ResolvePath(s.dsn)
	if err != nil {
		return err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := openSQL(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database at path '%s': %w", dbPath, err)
	}

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping SQLite database at path '%s': %w", dbPath, err)
	}

	s.DB = db

	if err := s.CreateTables(ctx); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// ResolvePath extracts the file path from a sqlite DSN and expands ~ and
// relative paths.
func ResolvePath(dsn string) (string, error) {
	dbPath := dsn
	for _, prefix := range []string{"sqlite3://", "sqlite://"} {
		if strings.HasPrefix(dbPath, prefix) {
			dbPath = strings.TrimPrefix(dbPath, prefix)
			break
		}
	}
	if dbPath == "" {
		dbPath = "./blog.db"
	}

	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	} else if !filepath.IsAbs(dbPath) {
		absPath, err := filepath.Abs(dbPath)
		if err != nil {
			return "", fmt.Errorf("failed to resolve absolute path: %w", err)
		}
		dbPath = absPath
	}

	return dbPath, nil
}
