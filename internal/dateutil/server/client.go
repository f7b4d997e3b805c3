package server

import (
	"context"
	"math"

	mdwerror "github.com/msto63/mdw-dateutil/foundation/core/error"
	"github.com/msto63/mdw-dateutil/foundation/utils/datex"
	"github.com/msto63/mdw-dateutil/internal/dateutil/service"
	coreGrpc "github.com/msto63/mdw-dateutil/pkg/core/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls a remote DateUtil server
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to the server at addr
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	conn, err := coreGrpc.Dial(coreGrpc.DefaultClientConfig(addr), opts...)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to connect to dateutil server").
			WithCode(mdwerror.CodeNetworkError).
			WithDetail("address", addr)
	}
	return &Client{conn: conn}, nil
}

// Close closes the connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// Invoke runs an operation remotely. Errors are translated back so that
// service.IsInvalidInput and service.IsUnknownOperation work as for local calls.
func (c *Client) Invoke(ctx context.Context, op string, args ...string) (*service.Result, error) {
	list := make([]interface{}, len(args))
	for i, a := range args {
		list[i] = a
	}
	req, err := structpb.NewStruct(map[string]interface{}{"operation": op, "args": list})
	if err != nil {
		return nil, mdwerror.Wrap(err, "encode request").WithCode(mdwerror.CodeInvalidInput)
	}

	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, InvokeMethod, req, resp); err != nil {
		return nil, fromStatus(err, op)
	}

	fields := resp.GetFields()
	return &service.Result{
		Operation: fields["operation"].GetStringValue(),
		Value:     decodeValue(fields["value"]),
	}, nil
}

// InvokeBatch evaluates requests remotely
func (c *Client) InvokeBatch(ctx context.Context, reqs []service.Request) ([]service.Response, error) {
	list := make([]interface{}, len(reqs))
	for i, r := range reqs {
		args := make([]interface{}, len(r.Args))
		for j, a := range r.Args {
			args[j] = a
		}
		list[i] = map[string]interface{}{"id": r.ID, "op": r.Op, "args": args}
	}
	req, err := structpb.NewStruct(map[string]interface{}{"requests": list})
	if err != nil {
		return nil, mdwerror.Wrap(err, "encode request").WithCode(mdwerror.CodeInvalidInput)
	}

	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, InvokeBatchMethod, req, resp); err != nil {
		return nil, fromStatus(err, "batch")
	}

	values := resp.GetFields()["responses"].GetListValue().GetValues()
	out := make([]service.Response, len(values))
	for i, v := range values {
		f := v.GetStructValue().GetFields()
		out[i] = service.Response{
			ID:        f["id"].GetStringValue(),
			Operation: f["operation"].GetStringValue(),
			Value:     decodeValue(f["value"]),
			Error:     f["error"].GetStringValue(),
			Code:      f["code"].GetStringValue(),
		}
	}
	return out, nil
}

// ListOperations returns the operations the server offers
func (c *Client) ListOperations(ctx context.Context) ([]service.Operation, error) {
	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, ListOperationsMethod, &emptypb.Empty{}, resp); err != nil {
		return nil, fromStatus(err, "listOperations")
	}

	values := resp.GetFields()["operations"].GetListValue().GetValues()
	ops := make([]service.Operation, len(values))
	for i, v := range values {
		f := v.GetStructValue().GetFields()
		var args []string
		for _, a := range f["args"].GetListValue().GetValues() {
			args = append(args, a.GetStringValue())
		}
		ops[i] = service.Operation{
			Name:        f["name"].GetStringValue(),
			Command:     f["command"].GetStringValue(),
			Args:        args,
			Description: f["description"].GetStringValue(),
			Optional:    int(f["optional"].GetNumberValue()),
		}
	}
	return ops, nil
}

// decodeValue turns integral numbers back into int64
func decodeValue(v *structpb.Value) interface{} {
	if v == nil {
		return nil
	}
	if n, ok := v.GetKind().(*structpb.Value_NumberValue); ok {
		if f := n.NumberValue; f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f)
		}
	}
	return v.AsInterface()
}

// fromStatus maps a gRPC status back onto the service error sentinels
func fromStatus(err error, op string) error {
	st := status.Convert(err)
	switch st.Code() {
	case codes.InvalidArgument:
		return mdwerror.Wrap(datex.ErrInvalidInput, st.Message()).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation(op)
	case codes.NotFound:
		return mdwerror.Wrap(service.ErrUnknownOperation, st.Message()).
			WithCode(mdwerror.CodeNotFound).
			WithOperation(op)
	case codes.Unavailable:
		return mdwerror.Wrap(err, "dateutil server unavailable").
			WithCode(mdwerror.CodeServiceUnavailable).
			WithOperation(op)
	case codes.DeadlineExceeded:
		return mdwerror.Wrap(err, "remote call timed out").
			WithCode(mdwerror.CodeTimeout).
			WithOperation(op)
	default:
		return mdwerror.Wrap(err, "remote call failed").
			WithCode(mdwerror.CodeInternal).
			WithOperation(op)
	}
}
