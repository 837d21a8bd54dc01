package domain

import "context"

// SystemActor is stamped into audit fields when no caller identity is known.
const SystemActor = "system"

type actorKey struct{}

// WithActor returns a copy of ctx carrying the acting user's id.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the acting user's id, or SystemActor.
func ActorFrom(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
		return actor
	}
	return SystemActor
}
