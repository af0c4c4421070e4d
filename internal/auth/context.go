package auth

import "context"

type contextKey string

const actorKey contextKey = "actor"

// Actor identifies who is performing a request. It is stamped onto every
// inventory transaction the request generates.
type Actor struct {
	UserID   string
	Username string
	Role     string
}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext returns the request actor. The bool is false on requests
// that bypassed the auth middleware.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey).(Actor)
	return actor, ok
}

// ActorName returns the username for audit fields, or "system" when the
// context carries no actor (background work, tests).
func ActorName(ctx context.Context) string {
	if actor, ok := ActorFromContext(ctx); ok && actor.Username != "" {
		return actor.Username
	}
	return "system"
}
