package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopkart/internal/identity"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORS(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("adds CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("short-circuits preflight requests", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/products", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestLogging_PassesThrough(t *testing.T) {
	handler := Logging(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestRecovery(t *testing.T) {
	t.Run("recovers from panic", func(t *testing.T) {
		handler := Recovery(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		req := httptest.NewRequest(http.MethodGet, "/panicky", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"success": false, "message": "internal server error"}`, rec.Body.String())
	})

	t.Run("passes through without panic", func(t *testing.T) {
		handler := Recovery(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/calm", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestIdentity(t *testing.T) {
	tokens := identity.NewTokenManager("test-secret", time.Hour)

	captured := identity.Anonymous()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = identity.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Identity(tokens, zerolog.Nop())(next)

	t.Run("no header resolves anonymous", func(t *testing.T) {
		captured = identity.Identity{Kind: identity.KindUser, UserID: uuid.New()}
		req := httptest.NewRequest(http.MethodGet, "/cart/get_items/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, identity.Anonymous(), captured)
	})

	t.Run("valid bearer token resolves user", func(t *testing.T) {
		userID := uuid.New()
		token, err := tokens.Issue(userID, false)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/cart/get_items/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, identity.KindUser, captured.Kind)
		assert.Equal(t, userID, captured.UserID)
	})

	t.Run("guest token resolves guest", func(t *testing.T) {
		userID := uuid.New()
		token, err := tokens.Issue(userID, true)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/cart/get_items/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, identity.KindGuest, captured.Kind)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cart/get_items/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cart/get_items/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		expired := identity.NewTokenManager("test-secret", -time.Minute)
		token, err := expired.Issue(uuid.New(), false)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/cart/get_items/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
