package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite3/*.sql
var embedMigrations embed.FS

var ErrUnknownDialect = errors.New("unknown migration dialect")

// gooseDialects maps the store dialect to the goose dialect and the
// directory holding its migrations.
var gooseDialects = map[string]struct {
	goose string
	dir   string
}{
	"postgres": {goose: "pgx", dir: "postgres"},
	"sqlite3":  {goose: "sqlite3", dir: "sqlite3"},
}

// Migrate applies every pending migration of dialect ("postgres" or
// "sqlite3") to db.
func Migrate(db *sql.DB, dialect string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	d, ok := gooseDialects[dialect]
	if !ok {
		return fmt.Errorf("migration error: %w: %q", ErrUnknownDialect, dialect)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(d.goose); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, d.dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
