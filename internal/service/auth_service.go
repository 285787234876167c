package service

import (
	"context"
	"fmt"
	"time"

	"shopkart/internal/identity"
	"shopkart/internal/model"
	"shopkart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// authService implements AuthService.
type authService struct {
	userRepo repository.UserRepository
	tokens   *identity.TokenManager
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, tokens *identity.TokenManager, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// Register creates an account and returns a bearer token for it.
func (s *authService) Register(ctx context.Context, email, name, password string) (*model.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user registered")

	return &model.AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and returns a bearer token.
func (s *authService) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsGuest {
		return nil, model.ErrBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn().Str("user_id", user.ID.String()).Msg("failed login attempt")
		return nil, model.ErrBadCredentials
	}

	token, err := s.tokens.Issue(user.ID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &model.AuthResponse{Token: token, User: user}, nil
}

// Guest creates a guest account and returns a guest bearer token. Guest
// accounts have a user row so their carts persist across requests, but
// no credentials.
func (s *authService) Guest(ctx context.Context) (*model.AuthResponse, error) {
	id := uuid.New()
	user := &model.User{
		ID:        id,
		Email:     fmt.Sprintf("guest-%s@guest.invalid", id),
		Name:      "Guest",
		IsGuest:   true,
		CreatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("guest created")

	return &model.AuthResponse{Token: token, User: user}, nil
}
