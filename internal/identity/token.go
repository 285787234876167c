package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the JWT payload for user and guest tokens.
type Claims struct {
	Guest bool `json:"guest,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues and parses HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager with the given signing secret
// and token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue creates a signed token for the given user ID.
func (m *TokenManager) Issue(userID uuid.UUID, guest bool) (string, error) {
	now := time.Now()
	claims := Claims{
		Guest: guest,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and returns the identity it carries.
func (m *TokenManager) Parse(tokenString string) (Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return Anonymous(), fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return Anonymous(), fmt.Errorf("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Anonymous(), fmt.Errorf("invalid subject claim: %w", err)
	}

	kind := KindUser
	if claims.Guest {
		kind = KindGuest
	}
	return Identity{Kind: kind, UserID: userID}, nil
}
