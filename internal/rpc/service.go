package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "pricekeeper.PriceStore"

	InsertPriceEntryMethod = "/" + ServiceName + "/InsertPriceEntry"
	PingMethod             = "/" + ServiceName + "/Ping"
)

// PriceStoreClient is the client API for the PriceStore service.
type PriceStoreClient interface {
	InsertPriceEntry(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type priceStoreClient struct {
	cc grpc.ClientConnInterface
}

func NewPriceStoreClient(cc grpc.ClientConnInterface) PriceStoreClient {
	return &priceStoreClient{cc}
}

func (c *priceStoreClient) InsertPriceEntry(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, InsertPriceEntryMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *priceStoreClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, PingMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// PriceStoreServer is the server API for the PriceStore service.
type PriceStoreServer interface {
	InsertPriceEntry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
}

// UnimplementedPriceStoreServer can be embedded to satisfy PriceStoreServer.
type UnimplementedPriceStoreServer struct{}

func (UnimplementedPriceStoreServer) InsertPriceEntry(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method InsertPriceEntry not implemented")
}

func (UnimplementedPriceStoreServer) Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func RegisterPriceStoreServer(s grpc.ServiceRegistrar, srv PriceStoreServer) {
	s.RegisterService(&PriceStoreServiceDesc, srv)
}

func insertPriceEntryHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PriceStoreServer).InsertPriceEntry(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: InsertPriceEntryMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PriceStoreServer).InsertPriceEntry(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func pingHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PriceStoreServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: PingMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PriceStoreServer).Ping(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// PriceStoreServiceDesc is the grpc.ServiceDesc for the PriceStore service.
var PriceStoreServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PriceStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "InsertPriceEntry",
			Handler:    insertPriceEntryHandler,
		},
		{
			MethodName: "Ping",
			Handler:    pingHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pricekeeper.proto",
}
