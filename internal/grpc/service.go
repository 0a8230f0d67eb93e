package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "showshelf.v1.CatalogueService"

// CatalogueServer is the server API of the catalogue service. Shows travel as
// structpb documents with the persisted field names.
type CatalogueServer interface {
	ListShows(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetShow(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	AddShow(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveShow(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	ToggleWatched(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

// CatalogueServiceDesc describes the catalogue service for grpc.Server.RegisterService.
var CatalogueServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogueServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListShows", Handler: unaryHandler("ListShows", newMessage[emptypb.Empty], CatalogueServer.ListShows)},
		{MethodName: "GetShow", Handler: unaryHandler("GetShow", newMessage[wrapperspb.StringValue], CatalogueServer.GetShow)},
		{MethodName: "AddShow", Handler: unaryHandler("AddShow", newMessage[structpb.Struct], CatalogueServer.AddShow)},
		{MethodName: "RemoveShow", Handler: unaryHandler("RemoveShow", newMessage[wrapperspb.StringValue], CatalogueServer.RemoveShow)},
		{MethodName: "ToggleWatched", Handler: unaryHandler("ToggleWatched", newMessage[wrapperspb.StringValue], CatalogueServer.ToggleWatched)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "showshelf/v1/catalogue.proto",
}

// RegisterCatalogueServer registers srv on s.
func RegisterCatalogueServer(s grpc.ServiceRegistrar, srv CatalogueServer) {
	s.RegisterService(&CatalogueServiceDesc, srv)
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func newMessage[T any]() *T {
	return new(T)
}

func unaryHandler[Req proto.Message](
	method string,
	newReq func() Req,
	call func(CatalogueServer, context.Context, Req) (*structpb.Struct, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CatalogueServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CatalogueServer), ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
