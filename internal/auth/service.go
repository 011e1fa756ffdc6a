package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redmonkez12/friend-app/internal/apperr"
	"github.com/redmonkez12/friend-app/internal/logging"
	"github.com/redmonkez12/friend-app/internal/user"
)

var (
	ErrMissingFields      = apperr.Validation("Missing fields")
	ErrMissingCredentials = apperr.Validation("Missing email or password")
	ErrInvalidCredentials = apperr.Unauthorized("Invalid email or password")
	ErrPasswordTooLong    = apperr.Validation("Password is too long")
)

// RegisterInput carries the signup fields. FullName is optional.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// AuthResult is a freshly issued token together with its owner.
type AuthResult struct {
	Token string
	User  user.Public
}

// Service handles authentication business logic
type Service struct {
	userRepo      UserRepository
	tokenService  TokenService
	hasher        PasswordHasher
	logger        *logging.Logger
	tokenDuration time.Duration
}

func NewService(
	userRepo UserRepository,
	tokenService TokenService,
	hasher PasswordHasher,
	logger *logging.Logger,
	tokenDuration time.Duration,
) *Service {
	return &Service{
		userRepo:      userRepo,
		tokenService:  tokenService,
		hasher:        hasher,
		logger:        logger,
		tokenDuration: tokenDuration,
	}
}

// Register creates a new account and signs the user in
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, errPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var fullName *string
	if in.FullName != "" {
		fullName = &in.FullName
	}

	newUser, err := s.userRepo.Create(ctx, in.Username, in.Email, passwordHash, fullName)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", newUser.ID)

	return s.issue(newUser)
}

// Login verifies credentials and issues a token
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	existingUser, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(existingUser.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(existingUser)
}

// Me returns the public profile of userID
func (s *Service) Me(ctx context.Context, userID int64) (*user.Public, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	public := u.Public()
	return &public, nil
}

func (s *Service) issue(u *user.User) (*AuthResult, error) {
	token, err := s.tokenService.CreateToken(u.ID, s.tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	return &AuthResult{Token: token, User: u.Public()}, nil
}
