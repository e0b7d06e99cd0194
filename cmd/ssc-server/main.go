package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/signalsfoundry/sscweb/internal/ephemeris"
	"github.com/signalsfoundry/sscweb/internal/logging"
	"github.com/signalsfoundry/sscweb/internal/observability"
	"github.com/signalsfoundry/sscweb/internal/sschttp"
	"github.com/signalsfoundry/sscweb/internal/sscrpc"
)

// Config holds the server settings gathered from flags and environment.
type Config struct {
	GRPCAddress    string
	HTTPAddress    string
	MetricsAddress string
	// PublicURL prefixes KML artifact URLs; defaults to the HTTP listener.
	PublicURL string
	Step      time.Duration
	MaxPoints int
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	log := logging.NewFromEnv()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	grpcLis, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		log.Error(ctx, "failed to listen for gRPC", logging.String("addr", cfg.GRPCAddress), logging.Err(err))
		os.Exit(1)
	}
	httpLis, err := net.Listen("tcp", cfg.HTTPAddress)
	if err != nil {
		log.Error(ctx, "failed to listen for HTTP", logging.String("addr", cfg.HTTPAddress), logging.Err(err))
		os.Exit(1)
	}

	if err := run(ctx, cfg, log, prometheus.DefaultRegisterer, grpcLis, httpLis); err != nil {
		log.Error(ctx, "ssc server failed", logging.Err(err))
		os.Exit(1)
	}
}

func parseConfig(args []string) (Config, error) {
	defaults := ephemeris.DefaultConfig()

	fs := flag.NewFlagSet("ssc-server", flag.ContinueOnError)
	cfg := Config{}
	fs.StringVar(&cfg.GRPCAddress, "grpc-addr", envOr("SSC_GRPC_ADDR", ":50051"), "TCP address the SSC gRPC server listens on")
	fs.StringVar(&cfg.HTTPAddress, "http-addr", envOr("SSC_HTTP_ADDR", ":8080"), "TCP address the SSC HTTP/JSON server listens on")
	fs.StringVar(&cfg.MetricsAddress, "metrics-addr", envOr("SSC_METRICS_ADDR", ":9090"), "HTTP address for Prometheus /metrics; empty disables")
	fs.StringVar(&cfg.PublicURL, "public-url", os.Getenv("SSC_PUBLIC_URL"), "base URL clients use to fetch KML artifacts")
	fs.DurationVar(&cfg.Step, "step", defaults.Step, "default sampling interval")
	fs.IntVar(&cfg.MaxPoints, "max-points", envInt("SSC_MAX_POINTS", defaults.MaxPoints), "maximum samples per satellite")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

// run serves until ctx is cancelled or a listener fails.
func run(ctx context.Context, cfg Config, log logging.Logger, reg prometheus.Registerer, grpcLis, httpLis net.Listener) error {
	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv("ssc-server"), log)
	if err != nil {
		return err
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	collector, err := observability.NewCollector(reg)
	if err != nil {
		return err
	}

	ephCfg := ephemeris.DefaultConfig()
	ephCfg.ArtifactBaseURL = cfg.PublicURL
	if ephCfg.ArtifactBaseURL == "" {
		ephCfg.ArtifactBaseURL = "http://" + httpLis.Addr().String()
	}
	if cfg.Step > 0 {
		ephCfg.Step = cfg.Step
	}
	if cfg.MaxPoints > 0 {
		ephCfg.MaxPoints = cfg.MaxPoints
	}
	svc, err := ephemeris.New(ephCfg, log)
	if err != nil {
		return err
	}

	grpcSrv := sscrpc.NewServer(svc, log, collector)

	mux := http.NewServeMux()
	mux.Handle("/", sschttp.Handler(svc, log))
	mux.Handle("/kml/", svc.KMLHandler())
	httpSrv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	metricsSrv := serveMetrics(cfg.MetricsAddress, collector, log)

	errCh := make(chan error, 2)
	log.Info(ctx, "starting SSC gRPC server", logging.String("addr", grpcLis.Addr().String()))
	go func() {
		if err := grpcSrv.Serve(grpcLis); err != nil {
			errCh <- err
		}
	}()
	log.Info(ctx, "starting SSC HTTP server",
		logging.String("addr", httpLis.Addr().String()),
		logging.String("artifact_base_url", ephCfg.ArtifactBaseURL),
	)
	go func() {
		if err := httpSrv.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	log.Info(context.Background(), "shutting down SSC server")
	grpcSrv.GracefulStop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutdownCtx)
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	return serveErr
}

func serveMetrics(addr string, collector *observability.Collector, log logging.Logger) *http.Server {
	if collector == nil || addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.Err(err))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
