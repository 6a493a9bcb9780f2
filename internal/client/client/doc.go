// Package client contains the client-side building blocks that talk to the
// outside world.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) for the remote
//     price store: Insert a price entry and Ping for reachability.
//  2. A concrete gRPC implementation (see GRPCClient) that manages a
//     connection, injects the access token via an interceptor, and maps gRPC
//     status codes to sentinel errors.
//  3. Local persistence bootstrap (OpenDatabase, RunMigrations): the SQLite
//     file backing the pending queue, with embedded goose migrations.
//
// # Error Handling
//
// Insert failures are returned as *RemoteWriteError. Its cause matches one of
// ErrUnavailable, ErrUnauthorized or ErrRejected under errors.Is, or is a
// generic rpc error.
//
// Concurrency & Contexts
//
// GRPCClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation and deadlines.
package client
