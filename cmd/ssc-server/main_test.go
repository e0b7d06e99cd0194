package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/signalsfoundry/sscweb/core"
	"github.com/signalsfoundry/sscweb/internal/logging"
	"github.com/signalsfoundry/sscweb/internal/sschttp"
	"github.com/signalsfoundry/sscweb/internal/sscrpc"
	"github.com/signalsfoundry/sscweb/model"
)

func TestParseConfig(t *testing.T) {
	t.Setenv("SSC_HTTP_ADDR", ":18080")
	t.Setenv("SSC_MAX_POINTS", "42")

	cfg, err := parseConfig([]string{"-grpc-addr", ":15051", "-step", "30s"})
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	if cfg.GRPCAddress != ":15051" || cfg.HTTPAddress != ":18080" || cfg.MaxPoints != 42 || cfg.Step != 30*time.Second {
		t.Fatalf("config = %+v", cfg)
	}

	if _, err := parseConfig([]string{"-max-points", "many"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSSCServerStartupSmoke(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	grpcLis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen: %v", err)
	}
	httpLis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen: %v", err)
	}

	runCtx, stop := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() {
		errCh <- run(runCtx, Config{}, logging.Noop(), prometheus.NewRegistry(), grpcLis, httpLis)
	}()

	rpc, err := sscrpc.Dial(grpcLis.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer rpc.Close()

	sats, err := rpc.GetAllSatellites(ctx)
	if err != nil {
		t.Fatalf("GetAllSatellites: %v", err)
	}
	if len(sats) != 2 {
		t.Fatalf("catalogue size = %d, want 2", len(sats))
	}

	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	res, err := rpc.GetKmlFiles(ctx, core.BuildTrajectoryRequest(start, start.Add(time.Hour),
		model.SatelliteSpec{ID: "iss", ResolutionFactor: 1}))
	if err != nil {
		t.Fatalf("GetKmlFiles: %v", err)
	}
	if len(res.URLs) != 1 || !strings.HasPrefix(res.URLs[0], "http://"+httpLis.Addr().String()+"/kml/") {
		t.Fatalf("urls = %v", res.URLs)
	}

	resp, err := http.Get(res.URLs[0])
	if err != nil {
		t.Fatalf("fetch kml: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "<LineString>") {
		t.Fatalf("kml fetch status %d body %q", resp.StatusCode, body)
	}

	cfg := sschttp.DefaultConfig()
	cfg.BaseURL = "http://" + httpLis.Addr().String()
	data, err := sschttp.NewClient(cfg, nil, nil).GetData(ctx,
		core.ExampleDataRequest(start, start.Add(10*time.Minute), model.CoordinateSystemGM))
	if err != nil {
		t.Fatalf("GetData over HTTP: %v", err)
	}
	if len(data.Data) != 1 || len(data.Data[0].Time) != 6 {
		t.Fatalf("data = %+v", data)
	}

	stop()
	if err := <-errCh; err != nil {
		t.Fatalf("server returned error: %v", err)
	}
}
