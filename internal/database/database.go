// Package database handles PostgreSQL connection management and migration
// execution using goose. It provides a Connect function that returns a
// ready-to-use *sql.DB pool, a Migrate function for the host schema and
// ModuleSchema for module-owned tables.
package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	gooseDB "github.com/pressly/goose/v3/database"
)

//go:embed migrations
var embedMigrations embed.FS

// Connect opens a PostgreSQL connection pool using the provided DSN.
// It verifies the connection with a ping before returning.
func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("database open: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}

	slog.Info("database connected")
	return db, nil
}

// Migrate runs all pending goose migrations of the host schema (users,
// module registry, settings, extras, locale, pages). Migrations are
// embedded at compile time so no external files are needed at runtime.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	slog.Info("database migrations applied")
	return nil
}

// ModuleSchema applies the migrations a module ships with. Each module
// keeps its own goose version table, so module schemas can be installed
// and re-installed independently of the host schema. Applying an
// already-applied schema is a no-op.
type ModuleSchema struct {
	db    *sql.DB
	fsys  fs.FS
	table string
}

// NewModuleSchema returns a ModuleSchema reading migrations from the root
// of fsys and tracking them in <module>_goose_db_version.
func NewModuleSchema(db *sql.DB, module string, fsys fs.FS) *ModuleSchema {
	return &ModuleSchema{db: db, fsys: fsys, table: module + "_goose_db_version"}
}

// ApplySchema runs every pending module migration.
func (m *ModuleSchema) ApplySchema(ctx context.Context) error {
	store, err := gooseDB.NewStore(gooseDB.DialectPostgres, m.table)
	if err != nil {
		return fmt.Errorf("module schema store: %w", err)
	}

	provider, err := goose.NewProvider("", m.db, m.fsys, goose.WithStore(store))
	if err != nil {
		return fmt.Errorf("module schema provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("module schema up: %w", err)
	}

	slog.Info("module schema applied", "table", m.table, "migrations", len(results))
	return nil
}
