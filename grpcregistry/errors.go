package grpcregistry

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"xdao.co/anchor/registry"
)

// Registry error kinds map one-to-one onto gRPC status codes so the client
// can reconstruct the kind without parsing messages.

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	switch registry.KindOf(err) {
	case registry.KindValidation:
		return status.Error(codes.InvalidArgument, err.Error())
	case registry.KindAuthorization:
		return status.Error(codes.Unauthenticated, err.Error())
	case registry.KindPermission:
		return status.Error(codes.PermissionDenied, err.Error())
	case registry.KindNotFound:
		return status.Error(codes.NotFound, err.Error())
	case registry.KindSentinelLock:
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	kind := registry.Kind("")
	switch st.Code() {
	case codes.InvalidArgument:
		kind = registry.KindValidation
	case codes.Unauthenticated:
		kind = registry.KindAuthorization
	case codes.PermissionDenied:
		kind = registry.KindPermission
	case codes.NotFound:
		kind = registry.KindNotFound
	case codes.FailedPrecondition:
		kind = registry.KindSentinelLock
	default:
		return err
	}
	return &registry.Error{Kind: kind, Message: st.Message()}
}
