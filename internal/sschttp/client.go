package sschttp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/signalsfoundry/sscweb/internal/logging"
	"github.com/signalsfoundry/sscweb/internal/observability"
	"github.com/signalsfoundry/sscweb/internal/wire"
	"github.com/signalsfoundry/sscweb/model"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
)

// ErrUnexpectedStatus is returned when the server answers with a non-2xx
// HTTP status.
var ErrUnexpectedStatus = errors.New("sschttp: unexpected http status")

// Client is a core.Service backed by the HTTP/JSON endpoints of Handler.
type Client struct {
	http      *resty.Client
	limiter   *rate.Limiter
	log       logging.Logger
	collector *observability.Collector
}

// NewClient builds a client from cfg. log and collector may be nil.
func NewClient(cfg Config, log logging.Logger, collector *observability.Collector) *Client {
	if log == nil {
		log = logging.Noop()
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent()
	}

	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", cfg.UserAgent)
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{http: rc, limiter: limiter, log: log, collector: collector}
}

// GetAllSatellites fetches the satellite catalogue.
func (c *Client) GetAllSatellites(ctx context.Context) ([]model.SatelliteDescription, error) {
	var out wire.SatelliteList
	err := c.do(ctx, "GetAllSatellites", func(r *resty.Request) (*resty.Response, error) {
		return r.SetResult(&out).Get(PathObservatories)
	}, func() string { return string(model.StatusSuccess) })
	if err != nil {
		return nil, err
	}
	return out.Satellites, nil
}

// GetKmlFiles submits a trajectory request.
func (c *Client) GetKmlFiles(ctx context.Context, req *model.TrajectoryRequest) (*model.FileResult, error) {
	var out model.FileResult
	err := c.do(ctx, "GetKmlFiles", func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(req).SetResult(&out).Post(PathKml)
	}, func() string { return string(out.StatusCode) })
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetData submits a data request.
func (c *Client) GetData(ctx context.Context, req *model.DataRequest) (*model.DataResult, error) {
	var out model.DataResult
	err := c.do(ctx, "GetData", func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(req).SetResult(&out).Post(PathLocations)
	}, func() string { return string(out.StatusCode) })
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, op string, send func(*resty.Request) (*resty.Response, error), statusOf func() string) error {
	ctx, reqID := logging.EnsureRequestID(ctx)
	ctx, span := observability.StartSpan(ctx, "SSC/"+op,
		attribute.String("http.client", "resty"),
		attribute.String("ssc.operation", op),
	)
	start := time.Now()

	err := func() error {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return fmt.Errorf("sschttp: %s: rate limit: %w", op, err)
			}
		}
		resp, err := send(c.http.R().SetContext(ctx).SetHeader(RequestIDHeader, reqID))
		if err != nil {
			return fmt.Errorf("sschttp: %s: %w", op, err)
		}
		if resp.IsError() {
			return fmt.Errorf("%w: %s returned %d: %s", ErrUnexpectedStatus, op, resp.StatusCode(), resp.String())
		}
		return nil
	}()

	resultStatus := observability.StatusTransportError
	if err == nil {
		resultStatus = statusOf()
	}
	c.collector.ObserveCall(op, resultStatus, time.Since(start))
	observability.EndSpan(span, resultStatus, err)

	log := c.log.With(
		logging.String("operation", op),
		logging.String("request_id", reqID),
	)
	if err != nil {
		log.Warn(ctx, "ssc call failed", logging.Err(err))
		return err
	}
	log.Debug(ctx, "ssc call completed", logging.String("status", resultStatus))
	return nil
}
