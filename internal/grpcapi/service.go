package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified name of the checkpoint scanner API.
// Its messages are protobuf well-known types, so there is no generated code.
const ServiceName = "mbg.checkpoint.v1.CheckpointService"

const (
	methodResolveClearance = "/" + ServiceName + "/ResolveClearance"
	methodRevokeClearance  = "/" + ServiceName + "/RevokeClearance"
	methodRecordEntry      = "/" + ServiceName + "/RecordEntry"
)

// CheckpointServer is the server API for the checkpoint scanner service.
type CheckpointServer interface {
	// ResolveClearance takes the scanned code.
	ResolveClearance(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	// RevokeClearance takes the clearance id.
	RevokeClearance(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	// RecordEntry takes a Struct shaped like the JSON entry request.
	RecordEntry(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterCheckpointServer(s grpc.ServiceRegistrar, srv CheckpointServer) {
	s.RegisterService(&ServiceDesc, srv)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CheckpointServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ResolveClearance", Handler: resolveClearanceHandler},
		{MethodName: "RevokeClearance", Handler: revokeClearanceHandler},
		{MethodName: "RecordEntry", Handler: recordEntryHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mbg/checkpoint/v1/checkpoint.proto",
}

func resolveClearanceHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CheckpointServer).ResolveClearance(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodResolveClearance}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CheckpointServer).ResolveClearance(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func revokeClearanceHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CheckpointServer).RevokeClearance(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodRevokeClearance}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CheckpointServer).RevokeClearance(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func recordEntryHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CheckpointServer).RecordEntry(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodRecordEntry}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CheckpointServer).RecordEntry(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Client calls the checkpoint service over conn.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) ResolveClearance(ctx context.Context, code string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodResolveClearance, wrapperspb.String(code), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RevokeClearance(ctx context.Context, id string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodRevokeClearance, wrapperspb.String(id), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RecordEntry(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodRecordEntry, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
