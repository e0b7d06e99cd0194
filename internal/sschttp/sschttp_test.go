package sschttp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/signalsfoundry/sscweb/core"
	"github.com/signalsfoundry/sscweb/internal/logging"
	"github.com/signalsfoundry/sscweb/internal/observability"
	"github.com/signalsfoundry/sscweb/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	mu        sync.Mutex
	requestID string
	dataErr   error
	lastData  *model.DataRequest
}

func (f *fakeService) GetAllSatellites(ctx context.Context) ([]model.SatelliteDescription, error) {
	f.mu.Lock()
	f.requestID = logging.RequestIDFromContext(ctx)
	f.mu.Unlock()
	return []model.SatelliteDescription{{ID: "iss", Name: "ISS", Resolution: 60}}, nil
}

func (f *fakeService) GetKmlFiles(_ context.Context, req *model.TrajectoryRequest) (*model.FileResult, error) {
	if len(req.Satellites) == 0 {
		return &model.FileResult{Result: model.Result{
			StatusCode:    model.StatusError,
			StatusSubCode: model.SubCodeMissingSatellites,
			StatusText:    []string{"No satellites were specified."},
		}}, nil
	}
	return &model.FileResult{
		Result: model.Result{StatusCode: model.StatusSuccess, StatusSubCode: model.SubCodeSuccess},
		URLs:   []string{"http://example.test/kml/iss.kml"},
	}, nil
}

func (f *fakeService) GetData(_ context.Context, req *model.DataRequest) (*model.DataResult, error) {
	f.mu.Lock()
	f.lastData = req
	f.mu.Unlock()
	if f.dataErr != nil {
		return nil, f.dataErr
	}
	return &model.DataResult{
		Result: model.Result{StatusCode: model.StatusSuccess, StatusSubCode: model.SubCodeSuccess},
		Data: []model.SatelliteData{{
			ID:   "fast",
			Time: []time.Time{req.TimeRange.Start},
			Coordinates: []model.CoordinateData{{
				CoordinateSystem: model.CoordinateSystemGEO,
				X:                []float64{100},
				Latitude:         []float64{45},
			}},
		}},
	}, nil
}

var _ core.Service = (*Client)(nil)

func newTestClient(t *testing.T, svc core.Service, wrap func(http.Handler) http.Handler) (*Client, *observability.Collector) {
	t.Helper()
	h := Handler(svc, logging.Noop())
	if wrap != nil {
		h = wrap(h)
	}
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	collector, err := observability.NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.Timeout = 5 * time.Second
	cfg.RequestsPerSecond = 0
	return NewClient(cfg, logging.Noop(), collector), collector
}

func TestDefaultUserAgent(t *testing.T) {
	ua := DefaultUserAgent()
	assert.True(t, strings.HasPrefix(ua, "sscweb-go ("))
	assert.True(t, strings.HasSuffix(ua, ")"))
	assert.Equal(t, ua, DefaultConfig().UserAgent)
}

func TestClientGetAllSatellites(t *testing.T) {
	var gotUA string
	svc := &fakeService{}
	client, _ := newTestClient(t, svc, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			next.ServeHTTP(w, r)
		})
	})

	ctx := logging.ContextWithRequestID(context.Background(), "req-http")
	sats, err := client.GetAllSatellites(ctx)
	require.NoError(t, err)
	require.Len(t, sats, 1)
	assert.Equal(t, "iss", sats[0].ID)
	assert.Equal(t, 60, sats[0].Resolution)
	assert.Equal(t, DefaultUserAgent(), gotUA)
	assert.Equal(t, "req-http", svc.requestID)
}

func TestClientGetKmlFilesErrorResultIsNotAnError(t *testing.T) {
	client, collector := newTestClient(t, &fakeService{}, nil)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	res, err := client.GetKmlFiles(context.Background(), core.BuildTrajectoryRequest(start, start.Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, model.StatusError, res.StatusCode)
	assert.Equal(t, model.SubCodeMissingSatellites, res.StatusSubCode)
	assert.Equal(t, []string{"No satellites were specified."}, res.StatusText)

	res, err = client.GetKmlFiles(context.Background(), core.BuildTrajectoryRequest(start, start.Add(time.Hour),
		model.SatelliteSpec{ID: "iss", ResolutionFactor: 1}))
	require.NoError(t, err)
	assert.Equal(t, []string{"http://example.test/kml/iss.kml"}, res.URLs)

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.ClientCalls.WithLabelValues("GetKmlFiles", "ERROR")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.ClientCalls.WithLabelValues("GetKmlFiles", "SUCCESS")))
}

func TestClientGetDataRoundTrip(t *testing.T) {
	svc := &fakeService{}
	client, _ := newTestClient(t, svc, nil)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	req := core.ExampleDataRequest(start, start.Add(24*time.Hour), model.CoordinateSystemGEITOD)

	res, err := client.GetData(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, []float64{100}, res.Data[0].Coordinates[0].X)
	assert.True(t, res.Data[0].Time[0].Equal(start))

	require.NotNil(t, svc.lastData)
	assert.Len(t, svc.lastData.OutputOptions.CoordinateOptions, 5)
	assert.Len(t, svc.lastData.OutputOptions.BFieldTraceOptions, 4)
	assert.Equal(t, core.ExampleSatellite, svc.lastData.Satellites[0])
}

func TestClientServiceFailure(t *testing.T) {
	client, collector := newTestClient(t, &fakeService{dataErr: errors.New("propagation failed")}, nil)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := client.GetData(context.Background(), core.ExampleDataRequest(start, start, model.CoordinateSystemGEO))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "500")
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.ClientCalls.WithLabelValues("GetData", observability.StatusTransportError)))
}

func TestClientRateLimitHonoursContext(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "http://127.0.0.1:1"
	cfg.RequestsPerSecond = 0.001
	cfg.Burst = 1
	client := NewClient(cfg, nil, nil)

	// Drain the single token so the next call has to wait.
	require.True(t, client.limiter.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := client.GetAllSatellites(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}

func TestHandlerRejectsMalformedBody(t *testing.T) {
	h := Handler(&fakeService{}, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, PathLocations, strings.NewReader("{not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, PathLocations, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandlerMapsContextErrors(t *testing.T) {
	h := Handler(&fakeService{dataErr: context.DeadlineExceeded}, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, PathLocations, strings.NewReader(`{"satellites":[{"id":"fast","resolutionFactor":2}]}`)))
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}
