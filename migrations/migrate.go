package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

var (
	ErrNilDB              = errors.New("db is nil")
	ErrUnsupportedDialect = errors.New("unsupported migration dialect")
)

// dialectDirs maps database/sql driver names to their migration directory
// and goose dialect.
var dialectDirs = map[string]struct {
	dir     string
	dialect goose.Dialect
}{
	"pgx":     {dir: "postgres", dialect: goose.DialectPostgres},
	"sqlite3": {dir: "sqlite", dialect: goose.DialectSQLite3},
}

// Migrate applies all pending migrations for the given driver ("pgx" or
// "sqlite3").
func Migrate(db *sql.DB, driver string) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", ErrNilDB)
	}

	target, ok := dialectDirs[driver]
	if !ok {
		return fmt.Errorf("migration error: %w: %q", ErrUnsupportedDialect, driver)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(string(target.dialect)); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, target.dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
