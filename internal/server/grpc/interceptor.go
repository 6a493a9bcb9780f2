package grpc

import (
	"context"

	"github.com/dmitrijs2005/pricekeeper/internal/common"
	"github.com/dmitrijs2005/pricekeeper/internal/rpc"
	"github.com/dmitrijs2005/pricekeeper/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const ownerIDKey ctxKey = "ownerID"

func ownerIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ownerIDKey).(string)
	return v, ok && v != ""
}

// accessTokenInterceptor authenticates writes. Ping stays open so clients can
// probe reachability without credentials.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if info.FullMethod == rpc.InsertPriceEntryMethod {

		var accessToken string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			values := md.Get(common.AccessTokenHeaderName)
			if len(values) > 0 {
				accessToken = values[0]
			}
		}
		if len(accessToken) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}

		ownerID, err := auth.GetOwnerIDFromToken(accessToken, s.jwtSecret)
		if err != nil {
			s.logger.Warn(ctx, "rejected token", "error", err)
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		ctx = context.WithValue(ctx, ownerIDKey, ownerID)
	}

	return handler(ctx, req)
}

func (s *GRPCServer) rateLimitInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if s.limiter == nil || info.FullMethod != rpc.InsertPriceEntryMethod {
		return handler(ctx, req)
	}

	ownerID, _ := ownerIDFromContext(ctx)
	if !s.limiter.getLimiter(ownerID).Allow() {
		s.logger.Warn(ctx, "rate limit exceeded", "owner", ownerID)
		return nil, status.Error(codes.ResourceExhausted, "too many requests")
	}

	return handler(ctx, req)
}
