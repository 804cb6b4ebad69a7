package auth

import "context"

type ctxKey string

const sessionContextKey ctxKey = "session"

// ContextWithSession stores verified session claims for downstream handlers.
func ContextWithSession(ctx context.Context, claims *SessionClaims) context.Context {
	return context.WithValue(ctx, sessionContextKey, claims)
}

// SessionFromContext returns the session claims the middleware stored.
func SessionFromContext(ctx context.Context) (*SessionClaims, bool) {
	claims, ok := ctx.Value(sessionContextKey).(*SessionClaims)
	return claims, ok && claims != nil
}
