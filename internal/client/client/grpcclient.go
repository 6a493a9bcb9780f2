package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pricekeeper/internal/client/models"
	"github.com/dmitrijs2005/pricekeeper/internal/common"
	"github.com/dmitrijs2005/pricekeeper/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc.PriceStoreClient
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewPriceStoreClient creates a client for the store at endpointURL. The
// connection is established lazily on the first call.
func NewPriceStoreClient(endpointURL, accessToken string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, accessToken: accessToken}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewPriceStoreClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &emptypb.Empty{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.GetValue() != common.PingOK {
		return ErrUnavailable
	}

	return nil
}

// Insert sends e to the store. Any failure is a *RemoteWriteError.
func (s *GRPCClient) Insert(ctx context.Context, e models.RemotePriceEntry) (string, error) {
	req, err := rpc.EncodeEntry(rpc.Entry{
		OwnerID:    e.OwnerID,
		ProductID:  e.ProductRef,
		SupplierID: e.SupplierRef,
		Price:      e.Price,
		Quantity:   e.Quantity,
		Notes:      e.Notes,
		EntryDate:  e.EntryDate,
		CreatedAt:  e.CreatedAt,
	})
	if err != nil {
		return "", &RemoteWriteError{Err: fmt.Errorf("encode entry: %w", err)}
	}

	resp, err := s.client.InsertPriceEntry(ctx, req)
	if err != nil {
		return "", &RemoteWriteError{Err: s.mapError(err)}
	}

	id, err := rpc.DecodeInsertResult(resp)
	if err != nil {
		return "", &RemoteWriteError{Err: err}
	}
	return id, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.InvalidArgument, codes.ResourceExhausted:
		return fmt.Errorf("%w: %s", ErrRejected, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
