package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully-qualified gRPC service name
const ServiceName = "costbasis.v1.CostBasisService"

// Full method names, as sent on the wire
const (
	ListAccountsMethod = "/" + ServiceName + "/ListAccounts"
	ListAssetsMethod   = "/" + ServiceName + "/ListAssets"
	GetViewMethod      = "/" + ServiceName + "/GetView"
	RenderChartMethod  = "/" + ServiceName + "/RenderChart"
)

// CostBasisServer is the server API of CostBasisService.
// Requests and responses are structpb.Struct documents; RenderChart answers
// with the PNG bytes.
type CostBasisServer interface {
	ListAccounts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListAssets(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetView(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RenderChart(context.Context, *structpb.Struct) (*wrapperspb.BytesValue, error)
}

// CostBasisServiceDesc describes CostBasisService for grpc.Server.RegisterService
var CostBasisServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CostBasisServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListAccounts",
			Handler:    unaryHandler(ListAccountsMethod, CostBasisServer.ListAccounts),
		},
		{
			MethodName: "ListAssets",
			Handler:    unaryHandler(ListAssetsMethod, CostBasisServer.ListAssets),
		},
		{
			MethodName: "GetView",
			Handler:    unaryHandler(GetViewMethod, CostBasisServer.GetView),
		},
		{
			MethodName: "RenderChart",
			Handler:    unaryHandler(RenderChartMethod, CostBasisServer.RenderChart),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "costbasis/v1/costbasis.proto",
}

// RegisterCostBasisServer registers srv on s
func RegisterCostBasisServer(s grpc.ServiceRegistrar, srv CostBasisServer) {
	s.RegisterService(&CostBasisServiceDesc, srv)
}

// unaryHandler decodes a structpb.Struct request and runs call through the
// server's interceptor chain
func unaryHandler[Resp any](
	fullMethod string,
	call func(CostBasisServer, context.Context, *structpb.Struct) (Resp, error),
) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CostBasisServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(CostBasisServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}
