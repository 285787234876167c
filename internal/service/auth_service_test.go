package service

import (
	"context"
	"testing"
	"time"

	"shopkart/internal/identity"
	"shopkart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testTokenManager() *identity.TokenManager {
	return identity.NewTokenManager("test-secret", time.Hour)
}

func TestAuthService_Register_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc := NewAuthService(userRepo, testTokenManager(), zerolog.Nop())

	resp, err := svc.Register(context.Background(), "alice@example.com", "Alice", "password123")

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.False(t, resp.User.IsGuest)

	// The password is stored hashed, never verbatim
	assert.NotEqual(t, "password123", resp.User.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(resp.User.PasswordHash), []byte("password123")))

	// The issued token resolves back to the new user
	id, err := testTokenManager().Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, identity.KindUser, id.Kind)
	assert.Equal(t, resp.User.ID, id.UserID)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(model.ErrEmailTaken)

	svc := NewAuthService(userRepo, testTokenManager(), zerolog.Nop())

	resp, err := svc.Register(context.Background(), "alice@example.com", "Alice", "password123")

	assert.ErrorIs(t, err, model.ErrEmailTaken)
	assert.Nil(t, resp)
}

func TestAuthService_Login_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &model.User{ID: uuid.New(), Email: "alice@example.com", PasswordHash: string(hash)}
	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(user, nil)

	svc := NewAuthService(userRepo, testTokenManager(), zerolog.Nop())

	resp, err := svc.Login(context.Background(), "alice@example.com", "password123")

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	svc := NewAuthService(userRepo, testTokenManager(), zerolog.Nop())

	_, err := svc.Login(context.Background(), "nobody@example.com", "password123")

	assert.ErrorIs(t, err, model.ErrBadCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &model.User{ID: uuid.New(), Email: "alice@example.com", PasswordHash: string(hash)}
	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(user, nil)

	svc := NewAuthService(userRepo, testTokenManager(), zerolog.Nop())

	_, err = svc.Login(context.Background(), "alice@example.com", "wrong")

	assert.ErrorIs(t, err, model.ErrBadCredentials)
}

func TestAuthService_Login_GuestAccountRejected(t *testing.T) {
	guest := &model.User{ID: uuid.New(), Email: "guest-x@guest.invalid", IsGuest: true}
	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", mock.Anything, guest.Email).Return(guest, nil)

	svc := NewAuthService(userRepo, testTokenManager(), zerolog.Nop())

	_, err := svc.Login(context.Background(), guest.Email, "")

	assert.ErrorIs(t, err, model.ErrBadCredentials)
}

func TestAuthService_Guest(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc := NewAuthService(userRepo, testTokenManager(), zerolog.Nop())

	resp, err := svc.Guest(context.Background())

	require.NoError(t, err)
	assert.True(t, resp.User.IsGuest)
	assert.Contains(t, resp.User.Email, "@guest.invalid")

	id, err := testTokenManager().Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, identity.KindGuest, id.Kind)
	assert.Equal(t, resp.User.ID, id.UserID)
}
