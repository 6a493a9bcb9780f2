// Package rpc describes the pricekeeper.PriceStore gRPC service.
//
// pricekeeper.proto is the contract. Its messages are protobuf well-known
// types, so the stubs in service.go are written against the existing
// structpb, emptypb and wrapperspb packages rather than generated code.
// Tests keep the descriptor and the .proto in step.
//
// EncodeEntry and DecodeEntry convert between Entry and the Struct payload.
package rpc
