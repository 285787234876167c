package identity

import (
	"context"

	"github.com/google/uuid"
)

// Kind distinguishes how the acting identity was resolved.
type Kind int

const (
	// KindAnonymous is a request with no bearer token, identified only
	// by its server-side session.
	KindAnonymous Kind = iota
	// KindUser is a registered user authenticated by a bearer token.
	KindUser
	// KindGuest is a guest-token holder. Guests have a user row so their
	// carts persist, but no credentials.
	KindGuest
)

// Identity is the resolved actor for a request. It is carried explicitly
// through the service layer rather than read from ambient state.
type Identity struct {
	Kind   Kind
	UserID uuid.UUID // zero for anonymous identities
}

// HasUser reports whether the identity maps to a user row.
func (i Identity) HasUser() bool {
	return i.Kind != KindAnonymous && i.UserID != uuid.Nil
}

// Anonymous returns the anonymous identity.
func Anonymous() Identity {
	return Identity{Kind: KindAnonymous}
}

type contextKey struct{}

// WithIdentity returns a context carrying the identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext extracts the identity from the context, falling back to
// anonymous when none was set.
func FromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(contextKey{}).(Identity); ok {
		return id
	}
	return Anonymous()
}
