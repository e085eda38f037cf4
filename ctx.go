package registry

import (
	"context"

	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

var ownerCtxKey = &contextKey{"owner"}
var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithContext sets the Owner in the given context
func WithContext(r context.Context, owner *Owner) context.Context {
	return context.WithValue(r, ownerCtxKey, owner)
}

// FromContext finds the owner from the context.
func FromContext(ctx context.Context) (*Owner, bool) {
	raw, ok := ctx.Value(ownerCtxKey).(*Owner)
	return raw, ok
}

// WithClaimsContext sets the AuthClaims in the given context
func WithClaimsContext(r context.Context, claims AuthClaims) context.Context {
	return context.WithValue(r, claimsCtxKey, claims)
}

// GetClaims extracts the AuthClaims from the standard context
func GetClaims(ctx context.Context) (AuthClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(AuthClaims)
	return raw, ok
}

// GetRouterClaims extracts the AuthClaims from the router context
func GetRouterClaims(ctx router.Context, key string) (AuthClaims, bool) {
	if key == "" {
		key = "owner" // Default key used by JWT middleware
	}
	raw := ctx.Locals(key)
	if raw == nil {
		return nil, false
	}
	claims, ok := raw.(AuthClaims)
	return claims, ok
}

// CurrentOwnerID resolves the authenticated owner's id from the router
// context. Handlers use it to scope every vehicle query.
func CurrentOwnerID(ctx router.Context, key string) (uuid.UUID, error) {
	claims, ok := GetRouterClaims(ctx, key)
	if !ok {
		return uuid.Nil, ErrUnableToFindSession
	}

	id, err := uuid.Parse(claims.OwnerID())
	if err != nil {
		return uuid.Nil, ErrUnableToMapClaims
	}

	return id, nil
}
