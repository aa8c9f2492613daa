package remote

import (
	"context"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/tancalc/internal/history"
	"github.com/danielpatrickdp/tancalc/internal/tangent"
)

// #region server-struct
// Recorder stores served evaluations. *history.Store satisfies it.
type Recorder interface {
	Save(rec history.Record) (history.Record, error)
}

// Server implements EvaluatorServer on top of a local evaluator.
type Server struct {
	ev     *tangent.Evaluator
	method string
	rec    Recorder
}

// NewServer returns a Server. rec may be nil to skip recording.
func NewServer(ev *tangent.Evaluator, method string, rec Recorder) *Server {
	return &Server{ev: ev, method: method, rec: rec}
}

// #endregion server-struct

// #region handlers
// Evaluate computes tan for the requested angle.
func (s *Server) Evaluate(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a, err := angleFrom(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	r := s.ev.EvaluateAngle(a)

	if s.rec != nil {
		if _, err := s.rec.Save(history.NewRecord(a, s.method, r, history.SourceRPC)); err != nil {
			log.Printf("record evaluation: %v", err)
		}
	}

	resp, err := responseFor(a, r)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

// IsUndefined reports only the asymptote check.
func (s *Server) IsUndefined(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	a, err := angleFrom(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	resp, err := structpb.NewStruct(map[string]interface{}{
		"undefined": tangent.IsUndefined(a.Value(), a.InDegrees()),
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

// #endregion handlers

// #region grpc-server
// NewGRPCServer builds a gRPC server with srv registered and call logging on.
func NewGRPCServer(srv EvaluatorServer, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{grpc.UnaryInterceptor(LoggingInterceptor)}, opts...)
	gs := grpc.NewServer(opts...)
	Register(gs, srv)
	return gs
}

// LoggingInterceptor logs method, status code and latency of each unary call.
func LoggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	log.Printf("rpc %s code=%s dur=%s", info.FullMethod, status.Code(err), time.Since(start))
	return resp, err
}

// #endregion grpc-server
