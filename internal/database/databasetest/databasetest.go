// Package databasetest opens migrated in-memory SQLite stores for tests.
package databasetest

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/friend-app/internal/database"
)

var seq atomic.Int64

// NewSQLite returns a fresh, fully migrated in-memory database that is
// closed when the test ends.
func NewSQLite(t testing.TB) *bun.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", name, seq.Add(1))

	ctx := context.Background()
	db, err := database.Open(ctx, database.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(ctx, db.DB, database.DriverSQLite))
	return db
}

// CreateUser inserts a bare user row and returns its id.
func CreateUser(t testing.TB, db *bun.DB, username string) int64 {
	t.Helper()

	u := &database.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	}
	_, err := db.NewInsert().Model(u).Returning("id").Exec(context.Background())
	require.NoError(t, err)
	require.NotZero(t, u.ID)
	return u.ID
}

// NewMock returns a Postgres-dialect store backed by sqlmock with regexp
// query matching, for exercising driver failures.
func NewMock(t testing.TB) (*bun.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	db, err := database.NewBunDB(sqlDB, database.DriverPostgres)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, mock
}
