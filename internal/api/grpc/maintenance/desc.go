package maintenance

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "doorguard.v1.MaintenanceService"

	getStatusMethod    = "/" + ServiceName + "/GetStatus"
	setOccupancyMethod = "/" + ServiceName + "/SetOccupancy"
)

// MaintenanceServiceServer is the server API of the maintenance service.
type MaintenanceServiceServer interface {
	GetStatus(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	SetOccupancy(ctx context.Context, req *wrapperspb.BoolValue) (*emptypb.Empty, error)
}

// MaintenanceServiceClient is the client API of the maintenance service.
type MaintenanceServiceClient interface {
	GetStatus(ctx context.Context, req *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	SetOccupancy(ctx context.Context, req *wrapperspb.BoolValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

// ServiceDesc describes the maintenance service for grpc.Server.
//
//nolint:gochecknoglobals // Service descriptors are package-level by convention.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MaintenanceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetStatus", Handler: getStatusHandler},
		{MethodName: "SetOccupancy", Handler: setOccupancyHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "doorguard/v1/maintenance.proto",
}

// RegisterMaintenanceServiceServer registers srv on s.
func RegisterMaintenanceServiceServer(s grpc.ServiceRegistrar, srv MaintenanceServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func getStatusHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(MaintenanceServiceServer).GetStatus(ctx, in) //nolint:forcetypeassert // Guaranteed by HandlerType.
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getStatusMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MaintenanceServiceServer).GetStatus(ctx, req.(*emptypb.Empty)) //nolint:forcetypeassert // Decoded above.
	}

	return interceptor(ctx, in, info, handler)
}

func setOccupancyHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(wrapperspb.BoolValue)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(MaintenanceServiceServer).SetOccupancy(ctx, in) //nolint:forcetypeassert // Guaranteed by HandlerType.
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: setOccupancyMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MaintenanceServiceServer).SetOccupancy(ctx, req.(*wrapperspb.BoolValue)) //nolint:forcetypeassert // Decoded above.
	}

	return interceptor(ctx, in, info, handler)
}

type maintenanceServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewMaintenanceServiceClient returns a client bound to cc.
func NewMaintenanceServiceClient(cc grpc.ClientConnInterface) MaintenanceServiceClient {
	return &maintenanceServiceClient{cc: cc}
}

func (c *maintenanceServiceClient) GetStatus(
	ctx context.Context,
	req *emptypb.Empty,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, getStatusMethod, req, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *maintenanceServiceClient) SetOccupancy(
	ctx context.Context,
	req *wrapperspb.BoolValue,
	opts ...grpc.CallOption,
) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, setOccupancyMethod, req, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}
