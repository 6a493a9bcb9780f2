// Package grpc exposes the price store over gRPC: the service handlers, the
// access token and rate limit interceptors, and the server lifecycle.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/pricekeeper/internal/logging"
	"github.com/dmitrijs2005/pricekeeper/internal/rpc"
	"github.com/dmitrijs2005/pricekeeper/internal/server/models"
	"google.golang.org/grpc"
)

// EntryInserter stores a price entry on behalf of an owner.
type EntryInserter interface {
	Insert(ctx context.Context, ownerID string, entry *models.PriceEntry) (string, error)
}

type GRPCServer struct {
	rpc.UnimplementedPriceStoreServer
	address   string
	entries   EntryInserter
	logger    logging.Logger
	jwtSecret []byte
	limiter   *ownerRateLimiter
}

// NewGRPCServer builds a server. A non-positive rps disables rate limiting.
func NewGRPCServer(a string, l logging.Logger, es EntryInserter, secretKey string, rps float64, burst int) *GRPCServer {
	s := &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		entries:   es,
		jwtSecret: []byte(secretKey),
	}
	if rps > 0 {
		s.limiter = newOwnerRateLimiter(rps, burst)
	}
	return s
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor, s.rateLimitInterceptor))
	rpc.RegisterPriceStoreServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis and stops gracefully once ctx is done.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	defer close(stopped)

	go func() {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping gRPC server...")
			srv.GracefulStop()
		case <-stopped:
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
