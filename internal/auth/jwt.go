package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const minJWTKeyLen = 16

// jwtClaims is the JWT payload: the user id plus standard registered claims.
type jwtClaims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies HS256 JWTs
type JWTService struct {
	secret []byte
	parser *jwt.Parser
}

func NewJWTService(secret []byte) (*JWTService, error) {
	if len(secret) < minJWTKeyLen {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes, got %d", minJWTKeyLen, len(secret))
	}

	return &JWTService{
		secret: secret,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}, nil
}

// CreateToken issues a token for userID that expires after duration
func (s *JWTService) CreateToken(userID int64, duration time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates signature, algorithm and expiry and returns the claims
func (s *JWTService) VerifyToken(tokenStr string) (*TokenClaims, error) {
	claims := &jwtClaims{}

	token, err := s.parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	result := &TokenClaims{UserID: claims.UserID}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}
	return result, nil
}
