package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/pricekeeper/internal/common"
	"github.com/dmitrijs2005/pricekeeper/internal/rpc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

func sampleRequest(t *testing.T) *structpb.Struct {
	t.Helper()
	s, err := rpc.EncodeEntry(rpc.Entry{
		OwnerID:    "u1",
		ProductID:  "p1",
		SupplierID: "s1",
		Price:      decimal.RequireFromString("4.75"),
		Quantity:   decimal.NewFromInt(3),
		Notes:      "bulk",
		EntryDate:  time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return s
}

func ownerCtx(owner string) context.Context {
	return context.WithValue(context.Background(), ownerIDKey, owner)
}

func TestInsertPriceEntry_Success(t *testing.T) {
	fi := &fakeInserter{id: "row-42"}
	s := newTestServer(fi)

	resp, err := s.InsertPriceEntry(ownerCtx("u1"), sampleRequest(t))
	require.NoError(t, err)

	id, err := rpc.DecodeInsertResult(resp)
	require.NoError(t, err)
	assert.Equal(t, "row-42", id)

	require.Len(t, fi.calls, 1)
	got := fi.calls[0]
	assert.Equal(t, "u1", fi.owner)
	assert.Equal(t, "p1", got.ProductID)
	assert.Equal(t, "s1", got.SupplierID)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("4.75")))
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, "bulk", got.Notes)
	assert.True(t, got.CreatedAt.IsZero())
}

func TestInsertPriceEntry_NoOwnerInContext(t *testing.T) {
	s := newTestServer(&fakeInserter{})
	_, err := s.InsertPriceEntry(context.Background(), sampleRequest(t))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestInsertPriceEntry_Malformed(t *testing.T) {
	fi := &fakeInserter{}
	s := newTestServer(fi)

	req := sampleRequest(t)
	req.Fields[rpc.FieldPrice] = structpb.NewNumberValue(4.75)

	_, err := s.InsertPriceEntry(ownerCtx("u1"), req)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Empty(t, fi.calls)
}

func TestInsertPriceEntry_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"invalid", fmt.Errorf("%w: quantity must be positive", common.ErrInvalidEntry), codes.InvalidArgument},
		{"forbidden", common.ErrForbidden, codes.PermissionDenied},
		{"db failure", errors.New("db error: conn reset"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&fakeInserter{err: tt.err})
			_, err := s.InsertPriceEntry(ownerCtx("u1"), sampleRequest(t))
			assert.Equal(t, tt.want, status.Code(err))
		})
	}
}

func TestPing(t *testing.T) {
	s := newTestServer(nil)
	resp, err := s.Ping(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, common.PingOK, resp.GetValue())
}
