package solverclient

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// client_test.go exercises GRPCSolverClient.Solve's response decoding logic
// by swapping in a stub solveRPC, avoiding the need for a live gRPC server.

func TestGRPCSolverClientSolveDecodesSolutions(t *testing.T) {
	c := &GRPCSolverClient{
		method: "/solver.Solver/Solve",
		solveRPC: func(ctx context.Context, cc *grpc.ClientConn, method string, in *structpb.Struct) (*structpb.Struct, error) {
			resp, err := structpb.NewStruct(map[string]interface{}{
				"solutions": []interface{}{
					map[string]interface{}{"x": 1.0, "y": 2.0},
					map[string]interface{}{"x": 3.0, "y": 4.0},
				},
			})
			if err != nil {
				t.Fatalf("failed to build stub response: %v", err)
			}
			return resp, nil
		},
	}

	solutions, err := c.Solve(context.Background(), &structpb.Struct{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(solutions) != 2 {
		t.Fatalf("expected 2 decoded solutions, got %d", len(solutions))
	}
	if solutions[0]["x"] != 1.0 || solutions[1]["y"] != 4.0 {
		t.Errorf("expected decoded solution fields to round-trip, got %v", solutions)
	}
}

func TestGRPCSolverClientSolveHandlesMissingSolutionsField(t *testing.T) {
	c := &GRPCSolverClient{
		method: "/solver.Solver/Solve",
		solveRPC: func(ctx context.Context, cc *grpc.ClientConn, method string, in *structpb.Struct) (*structpb.Struct, error) {
			return &structpb.Struct{}, nil
		},
	}

	solutions, err := c.Solve(context.Background(), &structpb.Struct{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if solutions != nil {
		t.Errorf("expected a nil result when the response has no \"solutions\" field, got %v", solutions)
	}
}

func TestGRPCSolverClientSolveWrapsRPCError(t *testing.T) {
	rpcErr := errors.New("connection refused")
	c := &GRPCSolverClient{
		method: "/solver.Solver/Solve",
		solveRPC: func(ctx context.Context, cc *grpc.ClientConn, method string, in *structpb.Struct) (*structpb.Struct, error) {
			return nil, rpcErr
		},
	}

	_, err := c.Solve(context.Background(), &structpb.Struct{})
	if err == nil || !errors.Is(err, rpcErr) {
		t.Fatalf("expected the rpc error to be wrapped with %%w, got %v", err)
	}
}

// Both transports must satisfy SolverClient so they are interchangeable in
// the rewriting pipeline's dispatch step.
var (
	_ SolverClient = (*GRPCSolverClient)(nil)
	_ SolverClient = (*FakeSolver)(nil)
)
