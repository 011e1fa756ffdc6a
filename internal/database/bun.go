package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	// database/sql drivers selected by name in Open.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

// Open connects to the store, sizes the pool and pings it.
func Open(ctx context.Context, driver, dsn string) (*bun.DB, error) {
	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite serializes writers; one connection also keeps in-memory
		// databases alive for the lifetime of the pool.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	db, err := NewBunDB(sqlDB, driver)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// NewBunDB wraps an existing sql.DB with the dialect matching driver.
func NewBunDB(sqlDB *sql.DB, driver string) (*bun.DB, error) {
	switch driver {
	case DriverSQLite:
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case DriverPostgres, DriverPgx:
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
