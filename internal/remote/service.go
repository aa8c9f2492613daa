// Package remote serves the tangent evaluator over gRPC and provides a client
// for it. Messages are google.protobuf.Struct values so no generated code is
// needed: requests carry {value, unit}, responses {undefined, value, radians}.
package remote

import (
	"context"
	"errors"
	"fmt"
	"math"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/tancalc/internal/tangent"
)

// #region names
const (
	serviceName       = "tancalc.Evaluator"
	evaluateMethod    = "/tancalc.Evaluator/Evaluate"
	isUndefinedMethod = "/tancalc.Evaluator/IsUndefined"
)

// #endregion names

// #region interfaces
// EvaluatorServer is the server API for the tancalc.Evaluator service.
type EvaluatorServer interface {
	Evaluate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	IsUndefined(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// EvaluatorClient is the client API for the tancalc.Evaluator service.
type EvaluatorClient interface {
	Evaluate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	IsUndefined(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

// #endregion interfaces

// #region client-stub
type evaluatorClient struct {
	cc grpc.ClientConnInterface
}

// NewEvaluatorClient wraps a connection in the EvaluatorClient API.
func NewEvaluatorClient(cc grpc.ClientConnInterface) EvaluatorClient {
	return &evaluatorClient{cc: cc}
}

func (c *evaluatorClient) Evaluate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, evaluateMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *evaluatorClient) IsUndefined(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, isUndefinedMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// #endregion client-stub

// #region service-desc
var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*EvaluatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Evaluate", Handler: evaluateHandler},
		{MethodName: "IsUndefined", Handler: isUndefinedHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tancalc/evaluator.proto",
}

// Register attaches srv to a gRPC server.
func Register(s grpc.ServiceRegistrar, srv EvaluatorServer) {
	s.RegisterService(&serviceDesc, srv)
}

func evaluateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EvaluatorServer).Evaluate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: evaluateMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EvaluatorServer).Evaluate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func isUndefinedHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EvaluatorServer).IsUndefined(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: isUndefinedMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EvaluatorServer).IsUndefined(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// #endregion service-desc

// #region messages
var errBadRequest = errors.New("bad request")

func requestFor(a tangent.Angle) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"value": a.Value(),
		"unit":  a.Unit().String(),
	})
}

// angleFrom reads {value, unit}. unit defaults to radians.
func angleFrom(req *structpb.Struct) (tangent.Angle, error) {
	fields := req.GetFields()
	v, ok := fields["value"]
	if !ok {
		return tangent.Angle{}, fmt.Errorf("%w: missing value", errBadRequest)
	}
	num, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return tangent.Angle{}, fmt.Errorf("%w: value is not a number", errBadRequest)
	}
	if math.IsNaN(num.NumberValue) || math.IsInf(num.NumberValue, 0) {
		return tangent.Angle{}, fmt.Errorf("%w: value is not finite", errBadRequest)
	}

	unit := tangent.Radians
	if u, ok := fields["unit"]; ok {
		s, ok := u.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return tangent.Angle{}, fmt.Errorf("%w: unit is not a string", errBadRequest)
		}
		parsed, err := tangent.ParseUnit(s.StringValue)
		if err != nil {
			return tangent.Angle{}, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		unit = parsed
	}
	return tangent.NewAngle(num.NumberValue, unit), nil
}

func responseFor(a tangent.Angle, r tangent.Result) (*structpb.Struct, error) {
	fields := map[string]interface{}{
		"undefined": r.IsUndefined(),
		"radians":   a.Radians(),
	}
	if v, ok := r.Float(); ok {
		fields["value"] = v
	}
	return structpb.NewStruct(fields)
}

func resultFrom(resp *structpb.Struct) (tangent.Result, error) {
	fields := resp.GetFields()
	if fields["undefined"].GetBoolValue() {
		return tangent.Undefined, nil
	}
	v, ok := fields["value"]
	if !ok {
		return tangent.Result{}, errors.New("response has neither value nor undefined")
	}
	return tangent.Value(v.GetNumberValue()), nil
}

// #endregion messages
