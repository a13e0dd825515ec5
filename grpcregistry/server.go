package grpcregistry

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"xdao.co/anchor/addr"
	"xdao.co/anchor/registry"
)

// Server exposes a registry.Registry over the Registry gRPC service.
//
// The caller identity is taken from the request payload; the daemon is a
// test harness for the authorization core, not an authenticator.
type Server struct {
	UnimplementedRegistryServer
	Registry *registry.Registry
}

func (s *Server) ready() error {
	if s == nil || s.Registry == nil {
		return status.Error(codes.FailedPrecondition, "missing registry")
	}
	return nil
}

func (s *Server) Create(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	caller, err := addressField(in, "caller")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	subject, err := addressField(in, "subject")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	hash, err := hashField(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	proof, err := proofField(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := s.Registry.Create(caller, subject, hash, proof); err != nil {
		return nil, mapErr(err)
	}
	e, ok := s.Registry.Entry(subject, addr.DefaultCategory())
	return entryResponse(e, ok, s.Registry.Version(subject, addr.DefaultCategory()))
}

func (s *Server) Update(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	caller, err := addressField(in, "caller")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	subject, err := addressField(in, "subject")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	category, err := categoryField(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	hash, err := hashField(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := s.Registry.Update(caller, subject, category, hash); err != nil {
		return nil, mapErr(err)
	}
	e, ok := s.Registry.Entry(subject, category)
	return entryResponse(e, ok, s.Registry.Version(subject, category))
}

func (s *Server) Clear(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	caller, err := addressField(in, "caller")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	subject, err := addressField(in, "subject")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	category, err := categoryField(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := s.Registry.Clear(caller, subject, category); err != nil {
		return nil, mapErr(err)
	}
	return newStruct(map[string]interface{}{
		"version": float64(s.Registry.Version(subject, category)),
	})
}

func (s *Server) TransferDelegate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	caller, err := addressField(in, "caller")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	subject, err := addressField(in, "subject")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	category, err := categoryField(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	delegate, err := delegateField(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := s.Registry.TransferDelegate(caller, subject, category, delegate); err != nil {
		return nil, mapErr(err)
	}
	return newStruct(map[string]interface{}{
		"delegate": s.Registry.DelegateOf(subject, category).String(),
	})
}

func (s *Server) AddCategory(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.manageCategory(in, s.Registry.AddCategory)
}

func (s *Server) RemoveCategory(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.manageCategory(in, s.Registry.RemoveCategory)
}

func (s *Server) manageCategory(in *structpb.Struct, op func(addr.Address, addr.Address, addr.Category) error) (*structpb.Struct, error) {
	caller, err := addressField(in, "caller")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	subject, err := addressField(in, "subject")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	category, err := categoryField(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := op(caller, subject, category); err != nil {
		return nil, mapErr(err)
	}
	return newStruct(map[string]interface{}{
		"approved": s.Registry.CategoryApproved(subject, category),
	})
}

func (s *Server) GetEntry(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	subject, err := addressField(in, "subject")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	category, err := categoryField(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	e, ok := s.Registry.Entry(subject, category)
	return entryResponse(e, ok, s.Registry.Version(subject, category))
}

func (s *Server) GetDelegate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	subject, err := addressField(in, "subject")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	category, err := categoryField(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return newStruct(map[string]interface{}{
		"delegate": s.Registry.DelegateOf(subject, category).String(),
	})
}

func (s *Server) GetVersion(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	subject, err := addressField(in, "subject")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	category, err := categoryField(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return newStruct(map[string]interface{}{
		"version": float64(s.Registry.Version(subject, category)),
	})
}

func (s *Server) GetCategoryApproval(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	subject, err := addressField(in, "subject")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	category, err := categoryField(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return newStruct(map[string]interface{}{
		"approved": s.Registry.CategoryApproved(subject, category),
	})
}

func (s *Server) GetDeployer(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	_ = ctx
	if err := s.ready(); err != nil {
		return nil, err
	}
	subject, err := addressField(in, "subject")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	deployer, ok := s.Registry.Deployer(subject)
	fields := map[string]interface{}{"present": ok}
	if ok {
		fields["deployer"] = deployer.Hex()
	}
	return newStruct(fields)
}
