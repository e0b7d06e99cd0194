package observability

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// StatusTransportError labels calls that never produced a service status.
const StatusTransportError = "TRANSPORT_ERROR"

// Collector bundles Prometheus metrics for the SSC surface: server-side RPC
// handling, client-side calls labelled by the service's result status, and
// rendered output volume.
type Collector struct {
	gatherer prometheus.Gatherer

	RPCRequests  *prometheus.CounterVec
	RPCDurations *prometheus.HistogramVec

	ClientCalls     *prometheus.CounterVec
	ClientDurations *prometheus.HistogramVec

	RenderedRows prometheus.Counter
}

// NewCollector registers SSC Prometheus metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	buckets := []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ssc_rpc_requests_total",
		Help: "Total number of handled SSC RPCs, labeled by service, method, and gRPC status code.",
	}, []string{"service", "method", "code"}), "ssc_rpc_requests_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ssc_rpc_request_duration_seconds",
		Help:    "SSC RPC handling latency in seconds.",
		Buckets: buckets,
	}, []string{"service", "method"}), "ssc_rpc_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	clientCalls, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ssc_client_calls_total",
		Help: "Total number of SSC client calls, labeled by operation and result status code.",
	}, []string{"operation", "status"}), "ssc_client_calls_total")
	if err != nil {
		return nil, err
	}

	clientDurations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ssc_client_call_duration_seconds",
		Help:    "SSC client call latency in seconds, including transport.",
		Buckets: buckets,
	}, []string{"operation"}), "ssc_client_call_duration_seconds")
	if err != nil {
		return nil, err
	}

	rows, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ssc_rendered_rows_total",
		Help: "Total number of per-instant rows rendered from data results.",
	}), "ssc_rendered_rows_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:        gatherer,
		RPCRequests:     requests,
		RPCDurations:    durations,
		ClientCalls:     clientCalls,
		ClientDurations: clientDurations,
		RenderedRows:    rows,
	}, nil
}

// UnaryServerInterceptor records request counts and durations for unary RPCs.
func (c *Collector) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		if c == nil {
			return resp, err
		}

		fullMethod := ""
		if info != nil {
			fullMethod = info.FullMethod
		}
		service, method := SplitMethod(fullMethod)
		code := status.Code(err).String()

		if c.RPCRequests != nil {
			c.RPCRequests.WithLabelValues(service, method, code).Inc()
		}
		if c.RPCDurations != nil {
			c.RPCDurations.WithLabelValues(service, method).Observe(time.Since(start).Seconds())
		}

		return resp, err
	}
}

// ObserveCall records one client call. status is the service's result
// status code, or StatusTransportError when the call failed before one was
// received.
func (c *Collector) ObserveCall(operation, status string, d time.Duration) {
	if c == nil {
		return
	}
	if status == "" {
		status = "UNKNOWN"
	}
	if c.ClientCalls != nil {
		c.ClientCalls.WithLabelValues(operation, status).Inc()
	}
	if c.ClientDurations != nil {
		c.ClientDurations.WithLabelValues(operation).Observe(d.Seconds())
	}
}

// AddRenderedRows counts rows written by the result printer.
func (c *Collector) AddRenderedRows(n int) {
	if c == nil || c.RenderedRows == nil || n <= 0 {
		return
	}
	c.RenderedRows.Add(float64(n))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SplitMethod parses a fully-qualified gRPC method name into service and method
// components. It tolerates empty strings and partial paths, returning
// "unknown"/"unknown" when parsing fails.
func SplitMethod(fullMethod string) (string, string) {
	if fullMethod == "" {
		return "unknown", "unknown"
	}
	fullMethod = strings.TrimPrefix(fullMethod, "/")
	parts := strings.Split(fullMethod, "/")
	if len(parts) < 2 {
		return "unknown", "unknown"
	}
	service := parts[len(parts)-2]
	method := parts[len(parts)-1]
	if dot := strings.LastIndex(service, "."); dot >= 0 && dot+1 < len(service) {
		service = service[dot+1:]
	}
	if service == "" {
		service = "unknown"
	}
	if method == "" {
		method = "unknown"
	}
	return service, method
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}
