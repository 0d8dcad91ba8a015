package integration

import (
	"context"
	"errors"
)

var ErrUnauthenticated = errors.New("unauthenticated")

type contextKey int

const (
	bearerTokenKey contextKey = iota
	userIDKey
)

func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerTokenKey, token)
}

func BearerTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(bearerTokenKey).(string)
	return token, ok && token != ""
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

type HeaderUserLookup struct{}

// NewHeaderUserLookup trusts the user id an upstream gateway put in the
// request context.
func NewHeaderUserLookup() *HeaderUserLookup {
	return &HeaderUserLookup{}
}

func (HeaderUserLookup) CurrentUserID(ctx context.Context) (string, error) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return "", ErrUnauthenticated
	}
	return id, nil
}
