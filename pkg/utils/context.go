package utils

import (
	"context"

	"review-api/internal/policy"
)

type contextKey string

const ActorKey contextKey = "actor"

// GetActor returns the request actor; anonymous when none was set.
func GetActor(ctx context.Context) policy.Actor {
	actor, _ := ctx.Value(ActorKey).(policy.Actor)
	return actor
}

func SetActor(ctx context.Context, actor policy.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}
