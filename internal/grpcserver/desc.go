package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceDesc describes recruitment.v1.CandidateService for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CandidateServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListCandidates", Handler: listCandidatesHandler},
		{MethodName: "CreateCandidate", Handler: createCandidateHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "recruitment/v1/candidate.proto",
}

func listCandidatesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CandidateServiceServer).ListCandidates(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodListCandidates}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CandidateServiceServer).ListCandidates(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func createCandidateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CandidateServiceServer).CreateCandidate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodCreateCandidate}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CandidateServiceServer).CreateCandidate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
