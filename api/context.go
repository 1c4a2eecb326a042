package api

import (
	"context"

	"github.com/bbarboza/portfolio-backend/auth"
)

type keyType string

const (
	claimsKey keyType = "claims"
)

// ctxWithClaims attaches verified token claims to the request context.
func ctxWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ctxGetClaims retrieves the verified claims, or nil for anonymous requests.
func ctxGetClaims(ctx context.Context) *auth.Claims {
	if claims, ok := ctx.Value(claimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
