package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "velesarc.craft.v1alpha1.CraftService"

// Method names
const (
	MethodCreateStation  = "CreateStation"
	MethodGetStation     = "GetStation"
	MethodListStations   = "ListStations"
	MethodDepositItems   = "DepositItems"
	MethodWithdrawOutput = "WithdrawOutput"
	MethodQueueRecipe    = "QueueRecipe"
	MethodCancelEntry    = "CancelEntry"
	MethodTick           = "Tick"
	MethodInteract       = "Interact"
	MethodListRecipes    = "ListRecipes"
	MethodEvaluateOutput = "EvaluateOutput"
	MethodSimulate       = "Simulate"
)

// CraftServiceServer is the server API of the craft service. Messages are
// JSON objects carried as google.protobuf.Struct.
type CraftServiceServer interface {
	CreateStation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetStation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListStations(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DepositItems(context.Context, *structpb.Struct) (*structpb.Struct, error)
	WithdrawOutput(context.Context, *structpb.Struct) (*structpb.Struct, error)
	QueueRecipe(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CancelEntry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Tick(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Interact(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListRecipes(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EvaluateOutput(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Simulate(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(CraftServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(method string, call unaryCall) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(CraftServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(CraftServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the craft service for grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CraftServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodCreateStation, CraftServiceServer.CreateStation),
		unary(MethodGetStation, CraftServiceServer.GetStation),
		unary(MethodListStations, CraftServiceServer.ListStations),
		unary(MethodDepositItems, CraftServiceServer.DepositItems),
		unary(MethodWithdrawOutput, CraftServiceServer.WithdrawOutput),
		unary(MethodQueueRecipe, CraftServiceServer.QueueRecipe),
		unary(MethodCancelEntry, CraftServiceServer.CancelEntry),
		unary(MethodTick, CraftServiceServer.Tick),
		unary(MethodInteract, CraftServiceServer.Interact),
		unary(MethodListRecipes, CraftServiceServer.ListRecipes),
		unary(MethodEvaluateOutput, CraftServiceServer.EvaluateOutput),
		unary(MethodSimulate, CraftServiceServer.Simulate),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "velesarc/craft/v1alpha1/craft.proto",
}

// RegisterCraftServiceServer registers srv with s
func RegisterCraftServiceServer(s grpc.ServiceRegistrar, srv CraftServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls the craft service by method name
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps a client connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes method with the request object
func (c *Client) Call(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if req == nil {
		req = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
