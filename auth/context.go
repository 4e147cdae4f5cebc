package auth

import (
	"context"

	"github.com/jrsteele09/go-storefront-api/token"
)

type contextKey struct{}

var claimsKey = contextKey{}

// ContextWithClaims attaches verified token claims to ctx
func ContextWithClaims(ctx context.Context, claims token.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the claims placed by the auth middleware, if any
func ClaimsFromContext(ctx context.Context) (token.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(token.Claims)
	return claims, ok
}
