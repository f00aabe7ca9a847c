// Package grpcserver implements the CandidateService gRPC server.
//
// It delegates all business logic to candidate.Service and handles only the
// gRPC transport concerns: error mapping and conversion between the domain
// model and google.protobuf.Struct messages. Messages are schemaless Structs
// whose fields follow the HTTP API's JSON shape.
package grpcserver

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"jobmate/recruitment-service/internal/apperr"
	"jobmate/recruitment-service/internal/candidate"
	"jobmate/recruitment-service/internal/logger"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "recruitment.v1.CandidateService"

// Full method names, as seen by interceptors and clients.
const (
	MethodListCandidates  = "/" + ServiceName + "/ListCandidates"
	MethodCreateCandidate = "/" + ServiceName + "/CreateCandidate"
)

// CandidateService is the subset of candidate.Service exposed over gRPC.
type CandidateService interface {
	List(ctx context.Context, page, limit int) (*candidate.Page, error)
	Create(ctx context.Context, in candidate.Candidate) (*candidate.CreateResult, error)
}

// CandidateServiceServer is the server API for recruitment.v1.CandidateService.
type CandidateServiceServer interface {
	ListCandidates(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateCandidate(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// Server implements CandidateServiceServer.
type Server struct {
	svc CandidateService
	log *zap.Logger
}

// NewServer constructs a gRPC Server backed by svc.
func NewServer(svc CandidateService, log *zap.Logger) *Server {
	return &Server{svc: svc, log: logger.Component(log, "grpc")}
}

// New returns a grpc.Server with the candidate service and the standard
// health service registered.
func New(svc CandidateService, log *zap.Logger) *grpc.Server {
	srv := NewServer(svc, log)
	gs := grpc.NewServer(grpc.UnaryInterceptor(loggingInterceptor(srv.log)))
	gs.RegisterService(&ServiceDesc, srv)

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(gs, hs)

	return gs
}

// ─── RPC implementations ──────────────────────────────────────────────────────

// ListCandidates returns one page of candidates. The request may carry numeric
// "page" and "limit" fields; missing or non-positive values use the defaults.
func (s *Server) ListCandidates(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	page := intField(req, "page", candidate.DefaultPage)
	limit := intField(req, "limit", candidate.DefaultLimit)

	res, err := s.svc.List(ctx, page, limit)
	if err != nil {
		return nil, s.toGRPCError(MethodListCandidates, err)
	}
	return toStruct(res)
}

// CreateCandidate creates a candidate from a request shaped like the HTTP
// POST /candidates body.
func (s *Server) CreateCandidate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in candidate.Candidate
	if err := fromStruct(req, &in); err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid candidate payload")
	}

	res, err := s.svc.Create(ctx, in)
	if err != nil {
		return nil, s.toGRPCError(MethodCreateCandidate, err)
	}
	return toStruct(res)
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// toGRPCError maps domain errors to gRPC status errors. Errors outside the
// taxonomy are logged with their cause and reported generically.
func (s *Server) toGRPCError(method string, err error) error {
	ae, ok := apperr.As(err)
	if !ok {
		s.log.Error("unexpected error",
			zap.String(logger.FieldMethod, method),
			zap.Error(err),
		)
		return status.Error(codes.Internal, "internal server error")
	}
	if ae.Kind == apperr.KindServer || ae.Kind == apperr.KindTimeout {
		s.log.Warn("request failed",
			zap.String(logger.FieldMethod, method),
			zap.Error(err),
		)
	}
	switch ae.Kind {
	case apperr.KindValidation:
		return status.Error(codes.InvalidArgument, ae.Msg)
	case apperr.KindConflict:
		return status.Error(codes.AlreadyExists, ae.Msg)
	case apperr.KindTimeout:
		return status.Error(codes.DeadlineExceeded, ae.Msg)
	}
	return status.Error(codes.Internal, ae.Msg)
}

func intField(s *structpb.Struct, name string, def int) int {
	v, ok := s.GetFields()[name]
	if !ok {
		return def
	}
	n := int(v.GetNumberValue())
	if n < 1 {
		return def
	}
	return n
}

// toStruct converts a JSON-tagged value into a Struct.
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "encode response")
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, status.Error(codes.Internal, "encode response")
	}
	return out, nil
}

// fromStruct decodes a Struct into a JSON-tagged value.
func fromStruct(s *structpb.Struct, v any) error {
	b, err := protojson.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "marshal struct")
	}
	return errors.Wrap(json.Unmarshal(b, v), "decode struct")
}

func loggingInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		fields := []zap.Field{
			zap.String(logger.FieldMethod, info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("elapsed", time.Since(start)),
		}
		if code == codes.Internal {
			log.Warn("rpc failed", fields...)
		} else {
			log.Debug("rpc", fields...)
		}
		return resp, err
	}
}
