package backend

import (
	"context"
	"strings"
)

type ctxKey string

const tokenKey ctxKey = "backend_access_token"

// WithToken stores the caller's backend access token in the context so every
// proxied request downstream is made on their behalf.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, strings.TrimSpace(token))
}

// TokenFromContext extracts the access token, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(tokenKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

const actorKey ctxKey = "backend_actor"

// Actor identifies the signed-in user a proxied mutation is performed by.
type Actor struct {
	ID    string
	Email string
}

// WithActor stores the acting user for audit recording.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext extracts the acting user, if any.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	v, ok := ctx.Value(actorKey).(Actor)
	return v, ok
}
