package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/signalsfoundry/sscweb/core"
	"github.com/signalsfoundry/sscweb/internal/logging"
	"github.com/signalsfoundry/sscweb/internal/observability"
	"github.com/signalsfoundry/sscweb/internal/sschttp"
	"github.com/signalsfoundry/sscweb/internal/sscrpc"
	"github.com/signalsfoundry/sscweb/model"
	"github.com/signalsfoundry/sscweb/render"
	"github.com/signalsfoundry/sscweb/timectrl"
)

// Config holds the example client settings.
type Config struct {
	Transport        string
	Address          string
	CoordinateSystem model.CoordinateSystem
	Span             time.Duration
	XLSXPath         string
	Timeout          time.Duration
}

var errUsage = errors.New("usage")

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}

	log := logging.NewFromEnv()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv("ssc-example"), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.Err(err))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	collector, err := observability.NewCollector(prometheus.NewRegistry())
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.Err(err))
		os.Exit(1)
	}

	svc, closeSvc, err := dialService(cfg, log, collector)
	if err != nil {
		log.Error(ctx, "failed to create client", logging.Err(err))
		os.Exit(1)
	}
	defer closeSvc()

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	if err := run(ctx, cfg, svc, timectrl.SystemClock{}, os.Stdout, log, collector); err != nil {
		log.Error(ctx, "example failed", logging.Err(err))
		os.Exit(1)
	}
}

func parseConfig(args []string) (Config, error) {
	fs := flag.NewFlagSet("ssc-example", flag.ContinueOnError)
	cfg := Config{}
	var cs string
	fs.StringVar(&cfg.Transport, "transport", "grpc", "service transport: grpc or http")
	fs.StringVar(&cfg.Address, "addr", "", "service address (default 127.0.0.1:50051 for grpc, http://127.0.0.1:8080 for http)")
	fs.StringVar(&cs, "coords", string(model.CoordinateSystemGEO), "coordinate system for the data request")
	fs.DurationVar(&cfg.Span, "span", 24*time.Hour, "length of the data request window starting now")
	fs.StringVar(&cfg.XLSXPath, "xlsx", "", "also write the data result to this .xlsx file")
	fs.DurationVar(&cfg.Timeout, "timeout", time.Minute, "overall deadline for the example run")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	parsed, ok := model.ParseCoordinateSystem(cs)
	if !ok {
		return Config{}, fmt.Errorf("%w: unknown coordinate system %q", errUsage, cs)
	}
	cfg.CoordinateSystem = parsed

	switch cfg.Transport {
	case "grpc":
		if cfg.Address == "" {
			cfg.Address = "127.0.0.1:50051"
		}
	case "http":
		if cfg.Address == "" {
			cfg.Address = sschttp.DefaultConfig().BaseURL
		}
	default:
		return Config{}, fmt.Errorf("%w: unknown transport %q", errUsage, cfg.Transport)
	}
	return cfg, nil
}

func dialService(cfg Config, log logging.Logger, collector *observability.Collector) (core.Service, func(), error) {
	switch cfg.Transport {
	case "http":
		httpCfg := sschttp.DefaultConfig()
		httpCfg.BaseURL = cfg.Address
		return sschttp.NewClient(httpCfg, log, collector), func() {}, nil
	default:
		client, err := sscrpc.Dial(cfg.Address, sscrpc.WithLogger(log), sscrpc.WithCollector(collector))
		if err != nil {
			return nil, nil, err
		}
		return client, func() { _ = client.Close() }, nil
	}
}

// run walks the service: catalogue summary, a KML request without
// satellites, one for the ISS, then a data request rendered to out.
func run(ctx context.Context, cfg Config, svc core.Service, clock timectrl.Clock, out io.Writer, log logging.Logger, collector *observability.Collector) error {
	p := render.NewPrinter(out)
	start, end := timectrl.Window(clock, cfg.Span)

	sats, err := svc.GetAllSatellites(ctx)
	if err != nil {
		return fmt.Errorf("get satellites: %w", err)
	}
	active, inactive := core.PartitionSatellites(sats, start)
	if err := p.CatalogSummary(len(sats), len(active), len(inactive)); err != nil {
		return err
	}

	kmlStart, kmlEnd := start.Add(-3*time.Hour), start
	for _, specs := range [][]model.SatelliteSpec{nil, {{ID: "iss", ResolutionFactor: 1}}} {
		res, err := svc.GetKmlFiles(ctx, core.BuildTrajectoryRequest(kmlStart, kmlEnd, specs...))
		if err != nil {
			return fmt.Errorf("get kml files: %w", err)
		}
		if err := p.FileResult(res); err != nil {
			return err
		}
	}

	data, err := svc.GetData(ctx, core.ExampleDataRequest(start, end, cfg.CoordinateSystem))
	if err != nil {
		return fmt.Errorf("get data: %w", err)
	}
	if data.Failed() {
		if err := p.Status(data.Result); err != nil {
			return err
		}
	}
	if err := p.DataResult(data); err != nil {
		return err
	}
	rows := 0
	for _, sd := range data.Data {
		rows += len(render.Rows(sd))
	}
	collector.AddRenderedRows(rows)

	log.Info(ctx, "example completed",
		logging.String("coordinate_system", string(cfg.CoordinateSystem)),
		logging.String("status", string(data.StatusCode)),
		logging.Int("rows", rows),
	)

	if cfg.XLSXPath != "" {
		if err := writeXLSX(cfg.XLSXPath, data); err != nil {
			return err
		}
		log.Info(ctx, "wrote workbook", logging.String("path", cfg.XLSXPath))
	}
	return nil
}

func writeXLSX(path string, data *model.DataResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render.WriteXLSX(f, data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
