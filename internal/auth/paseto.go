package auth

import (
	"fmt"
	"strconv"
	"time"

	"aidanwoods.dev/go-paseto"
)

// PasetoService handles PASETO token creation and validation
// Uses v4.local (symmetric encryption with XChaCha20-Poly1305)
type PasetoService struct {
	symmetricKey paseto.V4SymmetricKey
}

func NewPasetoService(symmetricKey []byte) (*PasetoService, error) {
	if len(symmetricKey) != 32 {
		return nil, fmt.Errorf("symmetric key must be exactly 32 bytes, got %d", len(symmetricKey))
	}

	key, err := paseto.V4SymmetricKeyFromBytes(symmetricKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create symmetric key: %w", err)
	}

	return &PasetoService{
		symmetricKey: key,
	}, nil
}

// CreateToken generates a new PASETO v4.local token for userID
func (s *PasetoService) CreateToken(userID int64, duration time.Duration) (string, error) {
	now := time.Now()

	token := paseto.NewToken()
	token.SetIssuedAt(now)
	token.SetExpiration(now.Add(duration))
	token.SetSubject(strconv.FormatInt(userID, 10))

	return token.V4Encrypt(s.symmetricKey, nil), nil
}

// VerifyToken decrypts a PASETO v4.local token, checks expiry and returns the claims
func (s *PasetoService) VerifyToken(tokenStr string) (*TokenClaims, error) {
	// NewParser enforces the NotExpired rule.
	parser := paseto.NewParser()

	token, err := parser.ParseV4Local(s.symmetricKey, tokenStr, nil)
	if err != nil {
		return nil, ErrInvalidToken
	}

	subject, err := token.GetSubject()
	if err != nil {
		return nil, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	issuedAt, err := token.GetIssuedAt()
	if err != nil {
		return nil, ErrInvalidToken
	}

	expiresAt, err := token.GetExpiration()
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &TokenClaims{
		UserID:    userID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}
