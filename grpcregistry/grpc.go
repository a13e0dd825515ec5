package grpcregistry

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// RegistryServer is the server API for the Registry gRPC service.
//
// Requests and responses are protobuf Struct values so this package does not
// require a protoc/codegen toolchain; codec.go defines the field layout.
//
// Proto definition: registry.proto.
type RegistryServer interface {
	Create(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Update(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Clear(context.Context, *structpb.Struct) (*structpb.Struct, error)
	TransferDelegate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddCategory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveCategory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetEntry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetDelegate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetVersion(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCategoryApproval(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetDeployer(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedRegistryServer can be embedded to have forward compatible
// implementations.
type UnimplementedRegistryServer struct{}

func (UnimplementedRegistryServer) Create(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Create not implemented")
}
func (UnimplementedRegistryServer) Update(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Update not implemented")
}
func (UnimplementedRegistryServer) Clear(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Clear not implemented")
}
func (UnimplementedRegistryServer) TransferDelegate(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method TransferDelegate not implemented")
}
func (UnimplementedRegistryServer) AddCategory(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method AddCategory not implemented")
}
func (UnimplementedRegistryServer) RemoveCategory(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveCategory not implemented")
}
func (UnimplementedRegistryServer) GetEntry(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetEntry not implemented")
}
func (UnimplementedRegistryServer) GetDelegate(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDelegate not implemented")
}
func (UnimplementedRegistryServer) GetVersion(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetVersion not implemented")
}
func (UnimplementedRegistryServer) GetCategoryApproval(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCategoryApproval not implemented")
}
func (UnimplementedRegistryServer) GetDeployer(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDeployer not implemented")
}

// RegisterRegistryServer registers the Registry service on a gRPC server.
func RegisterRegistryServer(s grpc.ServiceRegistrar, srv RegistryServer) {
	s.RegisterService(&Registry_ServiceDesc, srv)
}

// RegistryClient is the client API for the Registry gRPC service.
type RegistryClient interface {
	Create(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Update(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Clear(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	TransferDelegate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	AddCategory(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RemoveCategory(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetEntry(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetDelegate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetVersion(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetCategoryApproval(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetDeployer(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type registryClient struct{ cc grpc.ClientConnInterface }

func NewRegistryClient(cc grpc.ClientConnInterface) RegistryClient { return &registryClient{cc: cc} }

func (c *registryClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *registryClient) Create(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "/xdao.anchor.grpcregistry.v1.Registry/Create", in, opts)
}

func (c *registryClient) Update(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "/xdao.anchor.grpcregistry.v1.Registry/Update", in, opts)
}

func (c *registryClient) Clear(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "/xdao.anchor.grpcregistry.v1.Registry/Clear", in, opts)
}

func (c *registryClient) TransferDelegate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "/xdao.anchor.grpcregistry.v1.Registry/TransferDelegate", in, opts)
}

func (c *registryClient) AddCategory(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "/xdao.anchor.grpcregistry.v1.Registry/AddCategory", in, opts)
}

func (c *registryClient) RemoveCategory(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "/xdao.anchor.grpcregistry.v1.Registry/RemoveCategory", in, opts)
}

func (c *registryClient) GetEntry(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "/xdao.anchor.grpcregistry.v1.Registry/GetEntry", in, opts)
}

func (c *registryClient) GetDelegate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "/xdao.anchor.grpcregistry.v1.Registry/GetDelegate", in, opts)
}

func (c *registryClient) GetVersion(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "/xdao.anchor.grpcregistry.v1.Registry/GetVersion", in, opts)
}

func (c *registryClient) GetCategoryApproval(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "/xdao.anchor.grpcregistry.v1.Registry/GetCategoryApproval", in, opts)
}

func (c *registryClient) GetDeployer(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "/xdao.anchor.grpcregistry.v1.Registry/GetDeployer", in, opts)
}

type registryMethod func(RegistryServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func registryHandler(name string, call registryMethod) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	full := "/xdao.anchor.grpcregistry.v1.Registry/" + name
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(RegistryServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(RegistryServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Registry_ServiceDesc is the grpc.ServiceDesc for the Registry service.
var Registry_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "xdao.anchor.grpcregistry.v1.Registry",
	HandlerType: (*RegistryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Create", Handler: registryHandler("Create", RegistryServer.Create)},
		{MethodName: "Update", Handler: registryHandler("Update", RegistryServer.Update)},
		{MethodName: "Clear", Handler: registryHandler("Clear", RegistryServer.Clear)},
		{MethodName: "TransferDelegate", Handler: registryHandler("TransferDelegate", RegistryServer.TransferDelegate)},
		{MethodName: "AddCategory", Handler: registryHandler("AddCategory", RegistryServer.AddCategory)},
		{MethodName: "RemoveCategory", Handler: registryHandler("RemoveCategory", RegistryServer.RemoveCategory)},
		{MethodName: "GetEntry", Handler: registryHandler("GetEntry", RegistryServer.GetEntry)},
		{MethodName: "GetDelegate", Handler: registryHandler("GetDelegate", RegistryServer.GetDelegate)},
		{MethodName: "GetVersion", Handler: registryHandler("GetVersion", RegistryServer.GetVersion)},
		{MethodName: "GetCategoryApproval", Handler: registryHandler("GetCategoryApproval", RegistryServer.GetCategoryApproval)},
		{MethodName: "GetDeployer", Handler: registryHandler("GetDeployer", RegistryServer.GetDeployer)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "registry.proto",
}
