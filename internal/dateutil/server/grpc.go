package server

import (
	"context"
	"errors"
	"strconv"

	"github.com/msto63/mdw-dateutil/internal/dateutil/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "mdw.dateutil.v1.DateUtil"

// Full method names
const (
	InvokeMethod         = "/" + ServiceName + "/Invoke"
	InvokeBatchMethod    = "/" + ServiceName + "/InvokeBatch"
	ListOperationsMethod = "/" + ServiceName + "/ListOperations"
)

// DateUtilServer is the server API of the DateUtil service.
//
//	Invoke         {operation: string, args: [string]}  -> {operation, value}
//	InvokeBatch    {requests: [{id, op, args}]}           -> {responses: [{id, operation, value, error, code}]}
//	ListOperations Empty                                  -> {operations: [{name, command, args, description, optional}]}
type DateUtilServer interface {
	Invoke(context.Context, *structpb.Struct) (*structpb.Struct, error)
	InvokeBatch(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListOperations(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// ServiceDesc describes the DateUtil service for grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DateUtilServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Invoke", Handler: invokeHandler},
		{MethodName: "InvokeBatch", Handler: invokeBatchHandler},
		{MethodName: "ListOperations", Handler: listOperationsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mdw/dateutil/v1/dateutil.proto",
}

// RegisterDateUtilServer registers srv on s
func RegisterDateUtilServer(s grpc.ServiceRegistrar, srv DateUtilServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func structHandler(method string, call func(DateUtilServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DateUtilServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(DateUtilServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var (
	invokeHandler      = structHandler(InvokeMethod, DateUtilServer.Invoke)
	invokeBatchHandler = structHandler(InvokeBatchMethod, DateUtilServer.InvokeBatch)
)

func listOperationsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DateUtilServer).ListOperations(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListOperationsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DateUtilServer).ListOperations(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// Ensure Server implements DateUtilServer
var _ DateUtilServer = (*Server)(nil)

// Invoke implements DateUtilServer.Invoke
func (s *Server) Invoke(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	op, args, err := decodeRequest(req.GetFields(), "operation")
	if err != nil {
		return nil, err
	}

	res, err := s.service.Invoke(ctx, op, args...)
	if err != nil {
		return nil, toStatus(err)
	}

	value, err := structpb.NewValue(res.Value)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode value: %v", err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"operation": structpb.NewStringValue(res.Operation),
		"value":     value,
	}}, nil
}

// InvokeBatch implements DateUtilServer.InvokeBatch
func (s *Server) InvokeBatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	list := req.GetFields()["requests"].GetListValue()
	if list == nil {
		return nil, status.Error(codes.InvalidArgument, "requests is required")
	}

	reqs := make([]service.Request, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		fields := v.GetStructValue().GetFields()
		op, args, err := decodeRequest(fields, "op")
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "requests[%d]: %s", i, status.Convert(err).Message())
		}
		reqs = append(reqs, service.Request{ID: fields["id"].GetStringValue(), Op: op, Args: args})
	}

	responses := s.service.InvokeBatch(ctx, reqs)
	out := make([]*structpb.Value, len(responses))
	for i, r := range responses {
		value, err := structpb.NewValue(r.Value)
		if err != nil {
			return nil, status.Errorf(codes.Internal, "encode value: %v", err)
		}
		out[i] = structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"id":        structpb.NewStringValue(r.ID),
			"operation": structpb.NewStringValue(r.Operation),
			"value":     value,
			"error":     structpb.NewStringValue(r.Error),
			"code":      structpb.NewStringValue(r.Code),
		}})
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"responses": structpb.NewListValue(&structpb.ListValue{Values: out}),
	}}, nil
}

// ListOperations implements DateUtilServer.ListOperations
func (s *Server) ListOperations(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	ops := service.Operations()
	list := make([]interface{}, len(ops))
	for i, op := range ops {
		args := make([]interface{}, len(op.Args))
		for j, a := range op.Args {
			args[j] = a
		}
		list[i] = map[string]interface{}{
			"name":        op.Name,
			"command":     op.Command,
			"args":        args,
			"description": op.Description,
			"optional":    op.Optional,
		}
	}

	out, err := structpb.NewStruct(map[string]interface{}{"operations": list})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode operations: %v", err)
	}
	return out, nil
}

// decodeRequest reads the operation name from field opKey and the args list.
// Numeric args are accepted and rendered as integers.
func decodeRequest(fields map[string]*structpb.Value, opKey string) (string, []string, error) {
	op := fields[opKey].GetStringValue()
	if op == "" {
		return "", nil, status.Errorf(codes.InvalidArgument, "%s is required", opKey)
	}

	var args []string
	for i, v := range fields["args"].GetListValue().GetValues() {
		switch k := v.GetKind().(type) {
		case *structpb.Value_StringValue:
			args = append(args, k.StringValue)
		case *structpb.Value_NumberValue:
			if k.NumberValue != float64(int64(k.NumberValue)) {
				return "", nil, status.Errorf(codes.InvalidArgument, "args[%d]: %v is not an integer", i, k.NumberValue)
			}
			args = append(args, strconv.FormatInt(int64(k.NumberValue), 10))
		default:
			return "", nil, status.Errorf(codes.InvalidArgument, "args[%d]: want string or number", i)
		}
	}
	return op, args, nil
}

// toStatus maps service errors onto gRPC status codes
func toStatus(err error) error {
	switch {
	case service.IsInvalidInput(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case service.IsUnknownOperation(err):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
