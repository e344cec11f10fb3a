// Package solverclient dispatches a flattened Model to an external solver
// backend and reports its solutions back in terms of the model's own
// declarations (spec.md §2, §6 "External Interfaces"). The wire transport
// is gRPC with google.protobuf.Struct payloads rather than a hand-generated
// .pb.go service: a constraint model's flattened form is naturally a bag
// of named scalar/array values, which structpb.Struct already represents
// without needing a bespoke schema compiled per solver family.
package solverclient

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

// Solution maps each reported decision variable's name to its solved
// value, already converted out of protobuf's Struct representation.
type Solution map[string]interface{}

// SolverClient is the interface a rewritten model is dispatched through.
// Both the gRPC-backed client below and solverclient.FakeSolver (fake.go)
// implement it, so tests never need a live solver process.
type SolverClient interface {
	// Solve submits a flattened model (as a protobuf Struct keyed by
	// constraint/variable name) and returns every solution the backend
	// reports before ctx is cancelled or the backend reports exhaustion.
	Solve(ctx context.Context, model *structpb.Struct) ([]Solution, error)
}

// GRPCSolverClient dispatches to an out-of-process solver adaptor over
// gRPC. It wraps a raw *grpc.ClientConn and a generic solveRPC function
// rather than a generated stub, since no .proto-compiled service exists for
// this exercise's purposes; production use would replace solveRPC with a
// generated client method without changing this type's exported surface.
type GRPCSolverClient struct {
	conn     *grpc.ClientConn
	method   string
	solveRPC func(ctx context.Context, cc *grpc.ClientConn, method string, in *structpb.Struct) (*structpb.Struct, error)
}

// Dial connects to a solver adaptor listening at target (e.g.
// "localhost:50051"), using plaintext transport credentials — the adaptor
// is assumed to run on a trusted local network or behind a service mesh
// that terminates TLS, matching how the teacher's own examples keep
// transport security out of the example code paths.
func Dial(target string, method string) (*GRPCSolverClient, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("solverclient: dialing %s: %w", target, err)
	}
	return &GRPCSolverClient{conn: conn, method: method, solveRPC: invokeSolve}, nil
}

// Close releases the underlying connection.
func (c *GRPCSolverClient) Close() error { return c.conn.Close() }

// Solve marshals model's entries into a protobuf Struct request and
// invokes the configured RPC method, unmarshalling each returned Struct
// entry back into a Solution map.
func (c *GRPCSolverClient) Solve(ctx context.Context, model *structpb.Struct) ([]Solution, error) {
	resp, err := c.solveRPC(ctx, c.conn, c.method, model)
	if err != nil {
		return nil, fmt.Errorf("solverclient: rpc %s: %w", c.method, err)
	}
	solutionsField, ok := resp.Fields["solutions"]
	if !ok {
		return nil, nil
	}
	list := solutionsField.GetListValue()
	if list == nil {
		return nil, nil
	}
	out := make([]Solution, 0, len(list.Values))
	for _, v := range list.Values {
		s := v.GetStructValue()
		if s == nil {
			continue
		}
		out = append(out, s.AsMap())
	}
	return out, nil
}

// invokeSolve performs a generic unary RPC call against method using
// grpc.ClientConn.Invoke directly, the low-level entry point generated
// stubs themselves call into — used here in place of a generated stub.
func invokeSolve(ctx context.Context, cc *grpc.ClientConn, method string, in *structpb.Struct) (*structpb.Struct, error) {
	out := &structpb.Struct{}
	if err := cc.Invoke(ctx, method, in, out); err != nil {
		return nil, err
	}
	return out, nil
}
