package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redmonkez12/friend-app/internal/user"
)

// ErrInvalidToken covers malformed, tampered, wrong-key and expired tokens alike.
var ErrInvalidToken = errors.New("invalid token")

// TokenClaims represents the claims carried by a session token
type TokenClaims struct {
	UserID    int64
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService defines the interface for token creation and validation.
// Implementations include JWTService (HS256) and PasetoService (PASETO v4.local).
type TokenService interface {
	CreateToken(userID int64, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// PasswordHasher turns a plaintext password into a self-describing hash string.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// UserRepository is the credential store the auth service depends on.
type UserRepository interface {
	Create(ctx context.Context, username, email, passwordHash string, fullName *string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
}
