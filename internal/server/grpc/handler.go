package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/pricekeeper/internal/common"
	"github.com/dmitrijs2005/pricekeeper/internal/rpc"
	"github.com/dmitrijs2005/pricekeeper/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func (s *GRPCServer) InsertPriceEntry(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	ownerID, ok := ownerIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	in, err := rpc.DecodeEntry(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	entry := &models.PriceEntry{
		OwnerID:    in.OwnerID,
		ProductID:  in.ProductID,
		SupplierID: in.SupplierID,
		Price:      in.Price,
		Quantity:   in.Quantity,
		Notes:      in.Notes,
		EntryDate:  in.EntryDate,
		CreatedAt:  in.CreatedAt,
	}

	id, err := s.entries.Insert(ctx, ownerID, entry)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidEntry):
			return nil, status.Error(codes.InvalidArgument, err.Error())
		case errors.Is(err, common.ErrForbidden):
			return nil, status.Error(codes.PermissionDenied, "owner mismatch")
		default:
			s.logger.Error(ctx, "insert failed", "owner", ownerID, "error", err)
			return nil, status.Error(codes.Internal, "internal error")
		}
	}

	s.logger.Info(ctx, "Price entry stored", "id", id, "owner", ownerID, "product", entry.ProductID)
	return rpc.EncodeInsertResult(id), nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(common.PingOK), nil
}
