package ctxutil

import "context"

type principalKey struct{}

// Principal is the authenticated caller attached by the auth middleware.
// Subject is the identity provider's stable subject identifier.
type Principal struct {
	Subject string
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func GetPrincipal(ctx context.Context) *Principal {
	val := ctx.Value(principalKey{})
	p, ok := val.(Principal)
	if !ok {
		return nil
	}
	return &p
}
