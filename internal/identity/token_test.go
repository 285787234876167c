package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	userID := uuid.New()

	token, err := manager.Issue(userID, false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, KindUser, id.Kind)
	assert.Equal(t, userID, id.UserID)
	assert.True(t, id.HasUser())
}

func TestTokenManager_GuestToken(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	userID := uuid.New()

	token, err := manager.Issue(userID, true)
	require.NoError(t, err)

	id, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, KindGuest, id.Kind)
	assert.Equal(t, userID, id.UserID)
	assert.True(t, id.HasUser())
}

func TestTokenManager_Parse_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue(uuid.New(), false)
	require.NoError(t, err)

	id, err := verifier.Parse(token)
	assert.Error(t, err)
	assert.Equal(t, Anonymous(), id)
}

func TestTokenManager_Parse_ExpiredToken(t *testing.T) {
	manager := NewTokenManager("test-secret", -time.Minute)

	token, err := manager.Issue(uuid.New(), false)
	require.NoError(t, err)

	id, err := manager.Parse(token)
	assert.Error(t, err)
	assert.Equal(t, Anonymous(), id)
}

func TestTokenManager_Parse_Garbage(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	id, err := manager.Parse("not-a-token")
	assert.Error(t, err)
	assert.Equal(t, Anonymous(), id)
}

func TestTokenManager_Parse_RejectsUnsignedToken(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	id, err := manager.Parse(tokenString)
	assert.Error(t, err)
	assert.Equal(t, Anonymous(), id)
}

func TestTokenManager_Parse_BadSubject(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tokenString, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	id, err := manager.Parse(tokenString)
	assert.Error(t, err)
	assert.Equal(t, Anonymous(), id)
}
