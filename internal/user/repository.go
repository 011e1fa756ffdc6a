package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/redmonkez12/friend-app/internal/apperr"
	"github.com/redmonkez12/friend-app/internal/database"
)

var (
	ErrNotFound  = apperr.NotFound("User not found")
	ErrDuplicate = apperr.Conflict("Username or email already exists")
)

// Repository handles user data persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user into the database
func (r *Repository) Create(ctx context.Context, username, email, passwordHash string, fullName *string) (*User, error) {
	dbUser := &database.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := r.db.NewInsert().
		Model(dbUser).
		Returning("id").
		Exec(ctx)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, apperr.Persistence("Signup failed", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByEmail retrieves a user by email, password hash included
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("email = ?", email).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apperr.Persistence("Failed to get user by email", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByID retrieves a user by ID without its password hash
func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Column("id", "username", "email", "full_name", "bio", "profile_pic", "created_at").
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apperr.Persistence("Failed to get user", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// mapDBUserToModel converts database model to domain model
func mapDBUserToModel(dbu *database.User) *User {
	return &User{
		ID:           dbu.ID,
		Username:     dbu.Username,
		Email:        dbu.Email,
		PasswordHash: dbu.PasswordHash,
		FullName:     dbu.FullName,
		Bio:          dbu.Bio,
		ProfilePic:   dbu.ProfilePic,
		CreatedAt:    dbu.CreatedAt,
	}
}
