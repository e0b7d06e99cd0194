package sscrpc

import (
	"context"
	"fmt"
	"time"

	"github.com/signalsfoundry/sscweb/internal/logging"
	"github.com/signalsfoundry/sscweb/internal/observability"
	"github.com/signalsfoundry/sscweb/internal/wire"
	"github.com/signalsfoundry/sscweb/model"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client is a core.Service backed by a gRPC connection.
type Client struct {
	conn      *grpc.ClientConn
	log       logging.Logger
	collector *observability.Collector
	dialOpts  []grpc.DialOption
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithCollector records client call metrics on collector.
func WithCollector(collector *observability.Collector) Option {
	return func(c *Client) { c.collector = collector }
}

// WithDialOptions appends raw gRPC dial options, for instance transport
// credentials replacing the insecure default.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(c *Client) { c.dialOpts = append(c.dialOpts, opts...) }
}

// Dial creates a client for target. The connection is established lazily.
func Dial(target string, opts ...Option) (*Client, error) {
	c := &Client{log: logging.Noop()}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logging.Noop()
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		grpc.WithChainUnaryInterceptor(RequestIDUnaryClientInterceptor()),
	}, c.dialOpts...)

	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("sscrpc: dial %s: %w", target, err)
	}
	c.conn = conn
	return c, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// GetAllSatellites fetches the satellite catalogue.
func (c *Client) GetAllSatellites(ctx context.Context) ([]model.SatelliteDescription, error) {
	out, err := invoke[wire.SatelliteList](ctx, c, OpGetAllSatellites, &structpb.Struct{}, func(*wire.SatelliteList) string {
		return string(model.StatusSuccess)
	})
	if err != nil {
		return nil, err
	}
	return out.Satellites, nil
}

// GetKmlFiles submits a trajectory request.
func (c *Client) GetKmlFiles(ctx context.Context, req *model.TrajectoryRequest) (*model.FileResult, error) {
	in, err := wire.Encode(req)
	if err != nil {
		return nil, err
	}
	return invoke[model.FileResult](ctx, c, OpGetKmlFiles, in, func(r *model.FileResult) string {
		return string(r.StatusCode)
	})
}

// GetData submits a data request.
func (c *Client) GetData(ctx context.Context, req *model.DataRequest) (*model.DataResult, error) {
	in, err := wire.Encode(req)
	if err != nil {
		return nil, err
	}
	return invoke[model.DataResult](ctx, c, OpGetData, in, func(r *model.DataResult) string {
		return string(r.StatusCode)
	})
}

func invoke[T any](ctx context.Context, c *Client, op string, in *structpb.Struct, statusOf func(*T) string) (*T, error) {
	ctx, _ = logging.EnsureRequestID(ctx)
	ctx, span := observability.StartSpan(ctx, "SSC/"+op,
		attribute.String("rpc.system", "grpc"),
		attribute.String("ssc.operation", op),
	)
	start := time.Now()

	result, err := func() (*T, error) {
		out := new(structpb.Struct)
		if err := c.conn.Invoke(ctx, fullMethod(op), in, out); err != nil {
			return nil, fmt.Errorf("sscrpc: %s: %w", op, err)
		}
		return wire.Decode[T](out)
	}()

	resultStatus := observability.StatusTransportError
	if err == nil {
		resultStatus = statusOf(result)
	}
	c.collector.ObserveCall(op, resultStatus, time.Since(start))
	observability.EndSpan(span, resultStatus, err)

	log := c.log.With(
		logging.String("operation", op),
		logging.String("request_id", logging.RequestIDFromContext(ctx)),
	)
	if err != nil {
		log.Warn(ctx, "ssc call failed", logging.Err(err))
		return nil, err
	}
	log.Debug(ctx, "ssc call completed", logging.String("status", resultStatus))
	return result, nil
}
