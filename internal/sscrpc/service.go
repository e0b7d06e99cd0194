// Package sscrpc carries core.Service over gRPC. Messages are protobuf
// Structs produced by the wire package, so the service is declared by hand
// rather than generated from a .proto file.
package sscrpc

import (
	"context"
	"fmt"

	"github.com/signalsfoundry/sscweb/core"
	"github.com/signalsfoundry/sscweb/internal/logging"
	"github.com/signalsfoundry/sscweb/internal/observability"
	"github.com/signalsfoundry/sscweb/internal/wire"
	"github.com/signalsfoundry/sscweb/model"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "ssc.v1.SatelliteSituationCenter"

// Operation names, shared with metrics labels.
const (
	OpGetAllSatellites = "GetAllSatellites"
	OpGetKmlFiles      = "GetKmlFiles"
	OpGetData          = "GetData"
)

func fullMethod(op string) string { return "/" + ServiceName + "/" + op }

// handler is the server-side shape registered with gRPC.
type handler interface {
	getAllSatellites(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	getKmlFiles(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	getData(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes the SSC service to grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*handler)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: OpGetAllSatellites, Handler: unaryHandler(OpGetAllSatellites, handler.getAllSatellites)},
		{MethodName: OpGetKmlFiles, Handler: unaryHandler(OpGetKmlFiles, handler.getKmlFiles)},
		{MethodName: OpGetData, Handler: unaryHandler(OpGetData, handler.getData)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ssc/v1/ssc.proto",
}

func unaryHandler(op string, call func(handler, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		h := srv.(handler)
		if interceptor == nil {
			return call(h, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(op)}
		return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(h, ctx, req.(*structpb.Struct))
		})
	}
}

type server struct {
	svc core.Service
	log logging.Logger
}

// Register exposes svc on s.
func Register(s grpc.ServiceRegistrar, svc core.Service, log logging.Logger) {
	if log == nil {
		log = logging.Noop()
	}
	s.RegisterService(&ServiceDesc, &server{svc: svc, log: log})
}

// NewServer builds a grpc.Server serving svc with request-id, tracing and
// metrics interceptors installed. collector may be nil.
func NewServer(svc core.Service, log logging.Logger, collector *observability.Collector, opts ...grpc.ServerOption) *grpc.Server {
	if log == nil {
		log = logging.Noop()
	}
	base := []grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			RequestIDUnaryServerInterceptor(log),
			TracingUnaryServerInterceptor(),
			collector.UnaryServerInterceptor(),
		),
	}
	s := grpc.NewServer(append(base, opts...)...)
	Register(s, svc, log)
	return s
}

func (s *server) getAllSatellites(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	sats, err := s.svc.GetAllSatellites(ctx)
	if err != nil {
		return nil, s.fail(ctx, OpGetAllSatellites, err)
	}
	return s.reply(ctx, OpGetAllSatellites, wire.SatelliteList{Satellites: sats})
}

func (s *server) getKmlFiles(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := wire.Decode[model.TrajectoryRequest](in)
	if err != nil {
		return nil, s.fail(ctx, OpGetKmlFiles, fmt.Errorf("%w: %v", ErrBadRequest, err))
	}
	res, err := s.svc.GetKmlFiles(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, OpGetKmlFiles, err)
	}
	logging.LoggerFromContext(ctx, s.log).Debug(ctx, "kml files served",
		logging.String("status", string(res.StatusCode)),
		logging.Int("urls", len(res.URLs)),
	)
	return s.reply(ctx, OpGetKmlFiles, res)
}

func (s *server) getData(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := wire.Decode[model.DataRequest](in)
	if err != nil {
		return nil, s.fail(ctx, OpGetData, fmt.Errorf("%w: %v", ErrBadRequest, err))
	}
	res, err := s.svc.GetData(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, OpGetData, err)
	}
	logging.LoggerFromContext(ctx, s.log).Debug(ctx, "data served",
		logging.String("status", string(res.StatusCode)),
		logging.Int("satellites", len(res.Data)),
	)
	return s.reply(ctx, OpGetData, res)
}

func (s *server) reply(ctx context.Context, op string, v any) (*structpb.Struct, error) {
	out, err := wire.Encode(v)
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	return out, nil
}

func (s *server) fail(ctx context.Context, op string, err error) error {
	logging.LoggerFromContext(ctx, s.log).Warn(ctx, "ssc rpc failed",
		logging.String("operation", op),
		logging.Err(err),
	)
	return ToStatusError(err)
}
