package ephemeris

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
	"github.com/signalsfoundry/sscweb/internal/logging"
	"github.com/signalsfoundry/sscweb/model"
	"github.com/signalsfoundry/sscweb/timectrl"
)

var (
	// ErrUnknownSatellite is returned for ids missing from the catalogue.
	ErrUnknownSatellite = errors.New("ephemeris: unknown satellite")
	// ErrInvalidTLE is returned by New for malformed element sets.
	ErrInvalidTLE = errors.New("ephemeris: invalid TLE")
)

type entry struct {
	CatalogEntry
	sat satellite.Satellite
}

// Service answers core.Service calls from its TLE catalogue.
type Service struct {
	cfg     Config
	log     logging.Logger
	order   []string
	entries map[string]*entry

	mu        sync.RWMutex
	artifacts map[string][]byte
	evictList []string
}

// New validates cfg and parses every catalogue TLE.
func New(cfg Config, log logging.Logger) (*Service, error) {
	if log == nil {
		log = logging.Noop()
	}
	if cfg.Step <= 0 {
		cfg.Step = time.Minute
	}
	s := &Service{
		cfg:       cfg,
		log:       log,
		entries:   make(map[string]*entry, len(cfg.Catalog)),
		artifacts: make(map[string][]byte),
	}
	for _, ce := range cfg.Catalog {
		if ce.ID == "" {
			return nil, fmt.Errorf("ephemeris: catalogue entry without id")
		}
		if _, dup := s.entries[ce.ID]; dup {
			return nil, fmt.Errorf("ephemeris: duplicate catalogue id %q", ce.ID)
		}
		if err := checkTLE(ce.TLE1, ce.TLE2); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTLE, ce.ID, err)
		}
		s.entries[ce.ID] = &entry{
			CatalogEntry: ce,
			sat:          satellite.TLEToSat(ce.TLE1, ce.TLE2, satellite.GravityWGS72),
		}
		s.order = append(s.order, ce.ID)
	}
	return s, nil
}

// checkTLE validates line shape and the modulo-10 checksums.
func checkTLE(line1, line2 string) error {
	for i, line := range []string{line1, line2} {
		if len(line) != 69 {
			return fmt.Errorf("line %d has %d characters, want 69", i+1, len(line))
		}
		if line[0] != byte('1'+i) || line[1] != ' ' {
			return fmt.Errorf("line %d has wrong line number", i+1)
		}
		sum := 0
		for _, c := range line[:68] {
			switch {
			case c >= '0' && c <= '9':
				sum += int(c - '0')
			case c == '-':
				sum++
			}
		}
		if want := int(line[68] - '0'); sum%10 != want {
			return fmt.Errorf("line %d checksum %d, want %d", i+1, sum%10, want)
		}
	}
	if line1[2:7] != line2[2:7] {
		return fmt.Errorf("catalogue numbers differ: %q vs %q", line1[2:7], line2[2:7])
	}
	return nil
}

func (s *Service) lookup(id string) (*entry, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSatellite, id)
	}
	return e, nil
}

// GetAllSatellites returns the catalogue in configuration order.
func (s *Service) GetAllSatellites(ctx context.Context) ([]model.SatelliteDescription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]model.SatelliteDescription, 0, len(s.order))
	for _, id := range s.order {
		e := s.entries[id]
		out = append(out, model.SatelliteDescription{
			ID:         e.ID,
			Name:       e.Name,
			Resolution: int(e.Resolution / time.Second),
			StartTime:  e.StartTime,
			EndTime:    e.EndTime,
		})
	}
	return out, nil
}

// GetData samples every requested satellite across the time range.
func (s *Service) GetData(ctx context.Context, req *model.DataRequest) (*model.DataResult, error) {
	if req == nil {
		return &model.DataResult{Result: errorResult(model.SubCodeMissingRequest, "No request was given.")}, nil
	}
	if r, ok := s.validate(req.TimeRange, req.Satellites); !ok {
		return &model.DataResult{Result: r}, nil
	}
	opts := req.OutputOptions
	if len(opts.CoordinateOptions) == 0 && len(opts.BFieldTraceOptions) == 0 {
		return &model.DataResult{Result: errorResult(model.SubCodeMissingOutput, "No output options were specified.")}, nil
	}
	for _, o := range opts.CoordinateOptions {
		if !o.CoordinateSystem.Valid() {
			return &model.DataResult{Result: errorResult(model.SubCodeInvalidCoordinateSystem,
				fmt.Sprintf("Invalid coordinate system %q.", o.CoordinateSystem))}, nil
		}
	}

	scale := 1.0
	if f := req.FormatOptions; f != nil && f.DistanceUnits == model.DistanceUnitsRE {
		scale = 1 / EarthRadiusKm
	}

	var st outcome
	res := &model.DataResult{}
	for _, spec := range req.Satellites {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e, err := s.lookup(spec.ID)
		if err != nil {
			return nil, err
		}
		samples, clipped := s.samples(e, req.TimeRange, spec.ResolutionFactor)
		if clipped {
			st.warn(model.SubCodeTooManyPoints, fmt.Sprintf("Output for %s was limited to %d points.", spec.ID, s.cfg.MaxPoints))
		}
		samples = filterSamples(samples, opts, scale)
		res.Data = append(res.Data, s.satelliteData(spec.ID, samples, opts, scale, &st))
	}
	res.Result = st.result()

	logging.LoggerFromContext(ctx, s.log).Debug(ctx, "data computed",
		logging.Int("satellites", len(res.Data)),
		logging.String("status", string(res.StatusCode)),
	)
	return res, nil
}

func (s *Service) validate(tr model.TimeRange, sats []model.SatelliteSpec) (model.Result, bool) {
	switch {
	case len(sats) == 0:
		return errorResult(model.SubCodeMissingSatellites, "No satellites were specified."), false
	case tr.Start.IsZero():
		return errorResult(model.SubCodeInvalidBeginTime, "The begin time is missing."), false
	case tr.End.IsZero():
		return errorResult(model.SubCodeInvalidEndTime, "The end time is missing."), false
	case tr.Start.After(tr.End):
		return errorResult(model.SubCodeInvalidTimeRange,
			fmt.Sprintf("The begin time %s is after the end time %s.", tr.Start.UTC().Format(time.RFC3339), tr.End.UTC().Format(time.RFC3339))), false
	}
	for _, spec := range sats {
		e, err := s.lookup(spec.ID)
		if err != nil {
			return errorResult(model.SubCodeInvalidSatellite, fmt.Sprintf("Unknown satellite %q.", spec.ID)), false
		}
		if _, ok := s.tick(e, spec.ResolutionFactor); !ok {
			return errorResult(model.SubCodeInvalidResolutionFactor,
				fmt.Sprintf("Resolution factor %d for %s is out of range.", spec.ResolutionFactor, spec.ID)), false
		}
	}
	return model.Result{}, true
}

// tick is the sampling interval for e scaled by factor. It reports false
// when factor is below 1 or the product does not fit in a time.Duration.
func (s *Service) tick(e *entry, factor int) (time.Duration, bool) {
	step := e.Resolution
	if step <= 0 {
		step = s.cfg.Step
	}
	if factor < 1 || step <= 0 || int64(factor) > math.MaxInt64/int64(step) {
		return 0, false
	}
	return step * time.Duration(factor), true
}

func (s *Service) samples(e *entry, tr model.TimeRange, factor int) ([]sample, bool) {
	tick, ok := s.tick(e, factor)
	if !ok {
		return nil, false
	}
	times, clipped := timectrl.Steps(tr.Start, tr.End, tick, s.cfg.MaxPoints)
	out := make([]sample, len(times))
	for i, t := range times {
		out[i] = propagate(e.sat, t)
	}
	return out, clipped
}

// filterSamples applies the location filters of opts. With
// AllLocationFilters a sample must pass every filter, otherwise any one.
func filterSamples(samples []sample, opts model.OutputOptions, scale float64) []sample {
	var filtered []model.FilteredCoordinateOption
	for _, o := range opts.CoordinateOptions {
		if o.Filter != nil && (o.Filter.Minimum != nil || o.Filter.Maximum != nil) {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return samples
	}

	out := samples[:0:0]
	for _, smp := range samples {
		passed := 0
		for _, o := range filtered {
			v, ok := smp.component(o.CoordinateSystem, o.Component, scale)
			if ok && inRange(v, o.Filter) {
				passed++
			}
		}
		if (opts.AllLocationFilters && passed == len(filtered)) || (!opts.AllLocationFilters && passed > 0) {
			out = append(out, smp)
		}
	}
	return out
}

func inRange(v float64, f *model.LocationFilter) bool {
	if f.Minimum != nil && v < *f.Minimum {
		return false
	}
	if f.Maximum != nil && v > *f.Maximum {
		return false
	}
	return true
}

func (s *Service) satelliteData(id string, samples []sample, opts model.OutputOptions, scale float64, st *outcome) model.SatelliteData {
	sd := model.SatelliteData{ID: id, Time: make([]time.Time, len(samples))}
	for i, smp := range samples {
		sd.Time[i] = smp.at
	}

	// One CoordinateData per frame, in first-requested order.
	index := map[model.CoordinateSystem]int{}
	for _, o := range opts.CoordinateOptions {
		i, seen := index[o.CoordinateSystem]
		if !seen {
			i = len(sd.Coordinates)
			index[o.CoordinateSystem] = i
			sd.Coordinates = append(sd.Coordinates, model.CoordinateData{CoordinateSystem: o.CoordinateSystem})
			if _, ok := (sample{}).position(o.CoordinateSystem); !ok {
				st.warn(model.SubCodeUnsupportedCoordinateSystem,
					fmt.Sprintf("Coordinate system %s is not available; its values are empty.", o.CoordinateSystem))
			}
		}
		fillComponent(&sd.Coordinates[i], o.Component, samples, scale)
	}

	for _, t := range opts.BFieldTraceOptions {
		sd.BTraceData = append(sd.BTraceData, model.BTraceData{
			CoordinateSystem: t.CoordinateSystem,
			Hemisphere:       t.Hemisphere,
		})
	}
	if len(opts.BFieldTraceOptions) > 0 {
		st.warn(model.SubCodeUnsupportedBFieldTrace, "Magnetic field-line tracing is not available; trace values are empty.")
	}
	return sd
}

func fillComponent(cd *model.CoordinateData, c model.CoordinateComponent, samples []sample, scale float64) {
	var vals []float64
	for _, smp := range samples {
		v, ok := smp.component(cd.CoordinateSystem, c, scale)
		if !ok {
			return
		}
		vals = append(vals, v)
	}
	switch c {
	case model.ComponentX:
		cd.X = vals
	case model.ComponentY:
		cd.Y = vals
	case model.ComponentZ:
		cd.Z = vals
	case model.ComponentLat:
		cd.Latitude = vals
	case model.ComponentLon:
		cd.Longitude = vals
	case model.ComponentLocalTime:
		cd.LocalTime = vals
	}
}

// outcome accumulates partial-success conditions. The first condition
// decides the sub code; every condition contributes a text.
type outcome struct {
	sub   model.ResultStatusSubCode
	texts []string
	seen  map[string]bool
}

func (o *outcome) warn(sub model.ResultStatusSubCode, text string) {
	if o.seen == nil {
		o.seen = map[string]bool{}
	}
	if o.seen[text] {
		return
	}
	o.seen[text] = true
	if o.sub == "" {
		o.sub = sub
	}
	o.texts = append(o.texts, text)
}

func (o *outcome) result() model.Result {
	if o.sub == "" {
		return model.Result{StatusCode: model.StatusSuccess, StatusSubCode: model.SubCodeSuccess}
	}
	return model.Result{
		StatusCode:    model.StatusConditionallySuccessful,
		StatusSubCode: o.sub,
		StatusText:    o.texts,
	}
}

func errorResult(sub model.ResultStatusSubCode, text string) model.Result {
	return model.Result{StatusCode: model.StatusError, StatusSubCode: sub, StatusText: []string{text}}
}

func artifactURL(base, name string) string {
	return strings.TrimRight(base, "/") + "/kml/" + name
}
