package alarm

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/oshokin/wakey-wakey/internal/logger"
)

// ActorMetadataKey carries the caller identity, "user@host".
const ActorMetadataKey = "x-wakey-actor"

const unknownActor = "unknown"

// WithActor attaches the caller identity to outgoing calls.
func WithActor(ctx context.Context, actor string) context.Context {
	if actor == "" {
		return ctx
	}

	return metadata.AppendToOutgoingContext(ctx, ActorMetadataKey, actor)
}

// ActorFromContext returns the caller identity of an incoming call.
func ActorFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return unknownActor
	}

	values := md.Get(ActorMetadataKey)
	if len(values) == 0 || values[0] == "" {
		return unknownActor
	}

	return values[0]
}

// UnaryActorInterceptor scopes the request logger to the caller and method.
func UnaryActorInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx = logger.WithFields(ctx, "actor", ActorFromContext(ctx), "method", info.FullMethod)

		resp, err := handler(ctx, req)
		if err != nil {
			logger.WarnKV(ctx, "Request failed", "error", err)
		} else {
			logger.Debug(ctx, "Request handled")
		}

		return resp, err
	}
}

// StreamActorInterceptor is UnaryActorInterceptor for streaming calls.
func StreamActorInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx := logger.WithFields(ss.Context(), "actor", ActorFromContext(ss.Context()), "method", info.FullMethod)

		logger.Info(ctx, "Stream opened")
		defer logger.Info(ctx, "Stream closed")

		return handler(srv, &loggedStream{ServerStream: ss, ctx: ctx})
	}
}

type loggedStream struct {
	grpc.ServerStream

	ctx context.Context //nolint:containedctx // Overrides the stream context.
}

func (s *loggedStream) Context() context.Context {
	return s.ctx
}
