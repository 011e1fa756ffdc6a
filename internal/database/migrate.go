package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Migrator applies the embedded schema migrations for one dialect.
type Migrator struct {
	provider *goose.Provider
}

// NewMigrator builds a goose provider over the migrations for driver.
func NewMigrator(db *sql.DB, driver string) (*Migrator, error) {
	var (
		dialect goose.Dialect
		dir     string
	)
	switch driver {
	case DriverSQLite:
		dialect, dir = goose.DialectSQLite3, "migrations/sqlite"
	case DriverPostgres, DriverPgx:
		dialect, dir = goose.DialectPostgres, "migrations/postgres"
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	fsys, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations: %w", err)
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}

	return &Migrator{provider: provider}, nil
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) ([]*goose.MigrationResult, error) {
	results, err := m.provider.Up(ctx)
	if err != nil {
		return results, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return results, nil
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) (*goose.MigrationResult, error) {
	result, err := m.provider.Down(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to roll back migration: %w", err)
	}
	return result, nil
}

// Status lists every known migration and whether it is applied.
func (m *Migrator) Status(ctx context.Context) ([]*goose.MigrationStatus, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}
	return statuses, nil
}

// Migrate brings the schema up to date.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	m, err := NewMigrator(db, driver)
	if err != nil {
		return err
	}
	_, err = m.Up(ctx)
	return err
}
