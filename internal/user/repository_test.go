package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/friend-app/internal/apperr"
	"github.com/redmonkez12/friend-app/internal/database"
	"github.com/redmonkez12/friend-app/internal/database/databasetest"
)

func strPtr(s string) *string { return &s }

func TestRepository_CreateAndGet(t *testing.T) {
	repo := NewRepository(databasetest.NewSQLite(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, "alice", "alice@example.com", "hash", strPtr("Alice A"))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)
	assert.Equal(t, "Alice A", *byEmail.FullName)
	assert.Nil(t, byEmail.Bio)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
	assert.Empty(t, byID.PasswordHash)
}

func TestRepository_CreateDuplicate(t *testing.T) {
	db := databasetest.NewSQLite(t)
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, "alice", "alice@example.com", "hash", nil)
	require.NoError(t, err)

	_, err = repo.Create(ctx, "alice", "other@example.com", "hash", nil)
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = repo.Create(ctx, "bob", "alice@example.com", "hash", nil)
	assert.ErrorIs(t, err, ErrDuplicate)

	count, err := db.NewSelect().Model((*database.User)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRepository_NotFound(t *testing.T) {
	repo := NewRepository(databasetest.NewSQLite(t))
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_StoreFailure(t *testing.T) {
	db, mock := databasetest.NewMock(t)
	repo := NewRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO "users"`).WillReturnError(errors.New("connection reset"))
	_, err := repo.Create(ctx, "alice", "alice@example.com", "hash", nil)
	assert.True(t, apperr.Is(err, apperr.KindPersistence))

	mock.ExpectQuery(`SELECT .* FROM "users"`).WillReturnError(errors.New("connection reset"))
	_, err = repo.GetByID(ctx, 1)
	assert.True(t, apperr.Is(err, apperr.KindPersistence))

	require.NoError(t, mock.ExpectationsWereMet())
}
