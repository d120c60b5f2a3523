package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "khqr.v1.FormService"

// FormServiceServer is the server API for khqr.v1.FormService. Messages are
// google.protobuf.Struct so clients need no generated code.
type FormServiceServer interface {
	GetForm(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
	Generate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	Save(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
	Restore(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
}

var FormServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FormServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetForm", newEmpty, func(s FormServiceServer, ctx context.Context, in proto.Message) (*structpb.Struct, error) {
			return s.GetForm(ctx, in.(*emptypb.Empty))
		}),
		unary("Generate", newStruct, func(s FormServiceServer, ctx context.Context, in proto.Message) (*structpb.Struct, error) {
			return s.Generate(ctx, in.(*structpb.Struct))
		}),
		unary("Save", newEmpty, func(s FormServiceServer, ctx context.Context, in proto.Message) (*structpb.Struct, error) {
			return s.Save(ctx, in.(*emptypb.Empty))
		}),
		unary("Restore", newEmpty, func(s FormServiceServer, ctx context.Context, in proto.Message) (*structpb.Struct, error) {
			return s.Restore(ctx, in.(*emptypb.Empty))
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "khqr/v1/form.proto",
}

func RegisterFormServiceServer(s grpc.ServiceRegistrar, srv FormServiceServer) {
	s.RegisterService(&FormServiceDesc, srv)
}

func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func newEmpty() proto.Message  { return new(emptypb.Empty) }
func newStruct() proto.Message { return new(structpb.Struct) }

func unary(
	method string,
	newReq func() proto.Message,
	call func(FormServiceServer, context.Context, proto.Message) (*structpb.Struct, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(FormServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(FormServiceServer), ctx, req.(proto.Message))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
