// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// ActorKey is the context key for the operator name.
type ActorKey struct{}

// WithActor returns a context carrying the name of whoever is operating manut.
// Services fall back to it when a technician or resolver is not given.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, ActorKey{}, actor)
}

// ActorFromContext returns the operator name from context, or empty string if not set.
func ActorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ActorKey{}).(string); ok {
		return v
	}
	return ""
}

// ActorOr returns name when it is not empty, otherwise the actor from ctx.
func ActorOr(ctx context.Context, name string) string {
	if name != "" {
		return name
	}
	return ActorFromContext(ctx)
}
