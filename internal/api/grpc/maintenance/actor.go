package maintenance

import (
	"context"
	"strings"

	"google.golang.org/grpc/metadata"

	"github.com/oshokin/door-guard/internal/domain/door"
)

// ActorMetadataKey carries the caller as "user@host".
const ActorMetadataKey = "x-door-actor"

// WithActor returns a context that sends actor with outgoing calls.
func WithActor(ctx context.Context, actor *door.Actor) context.Context {
	if actor == nil {
		return ctx
	}

	return metadata.AppendToOutgoingContext(ctx, ActorMetadataKey, actor.String())
}

// ActorFromContext extracts the caller of an incoming call.
func ActorFromContext(ctx context.Context) (*door.Actor, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, false
	}

	values := md.Get(ActorMetadataKey)
	if len(values) == 0 {
		return nil, false
	}

	username, hostname, found := strings.Cut(values[0], "@")
	if !found || username == "" || hostname == "" {
		return nil, false
	}

	return &door.Actor{Hostname: hostname, Username: username}, true
}
