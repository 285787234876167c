package middleware

import (
	"net/http"
	"strings"

	"shopkart/internal/identity"

	"github.com/rs/zerolog"
)

// Identity resolves the acting identity for each request and stores it
// in the request context. A valid bearer token yields a user or guest
// identity; anything else falls back to the anonymous session identity,
// whose cart lives in the scs-managed session.
func Identity(tokens *identity.TokenManager, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := identity.Anonymous()

			if header := r.Header.Get("Authorization"); header != "" {
				token, ok := strings.CutPrefix(header, "Bearer ")
				if !ok {
					logger.Warn().Str("path", r.URL.Path).Msg("malformed authorization header")
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnauthorized)
					w.Write([]byte(`{"success": false, "message": "malformed authorization header"}`))
					return
				}

				parsed, err := tokens.Parse(token)
				if err != nil {
					logger.Warn().Err(err).Str("path", r.URL.Path).Msg("invalid bearer token")
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnauthorized)
					w.Write([]byte(`{"success": false, "message": "invalid or expired token"}`))
					return
				}
				id = parsed
			}

			ctx := identity.WithIdentity(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
