package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// AttestServer is the server contract for tnattest.v1.AttestService.
// The service uses well-known protobuf types for requests and responses,
// so the descriptor is registered by hand instead of via protoc output.
type AttestServer interface {
	DecodePayload(context.Context, *wrapperspb.BytesValue) (*structpb.Struct, error)
	DecodeQueryResult(context.Context, *wrapperspb.BytesValue) (*structpb.ListValue, error)
}

// RegisterAttestServer registers the decode service with a gRPC server.
func RegisterAttestServer(s grpc.ServiceRegistrar, srv AttestServer) {
	s.RegisterService(&AttestService_ServiceDesc, srv)
}

func _AttestService_DecodePayload_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AttestServer).DecodePayload(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/tnattest.v1.AttestService/DecodePayload",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AttestServer).DecodePayload(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _AttestService_DecodeQueryResult_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AttestServer).DecodeQueryResult(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/tnattest.v1.AttestService/DecodeQueryResult",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AttestServer).DecodeQueryResult(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

// AttestService_ServiceDesc wires method names to handlers. Kept in the
// shape protoc-gen-go-grpc emits so a future generated replacement is a
// drop-in.
var AttestService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "tnattest.v1.AttestService",
	HandlerType: (*AttestServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "DecodePayload",
			Handler:    _AttestService_DecodePayload_Handler,
		},
		{
			MethodName: "DecodeQueryResult",
			Handler:    _AttestService_DecodeQueryResult_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tnattest/v1/attest.proto",
}
