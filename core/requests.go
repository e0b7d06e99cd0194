package core

import (
	"time"

	"github.com/signalsfoundry/sscweb/model"
	"github.com/signalsfoundry/sscweb/timectrl"
)

// ExampleSatellite is the satellite used by ExampleDataRequest.
var ExampleSatellite = model.SatelliteSpec{ID: "fast", ResolutionFactor: 2}

// BuildTrajectoryRequest assembles a KML request covering [start, end] with
// the trajectory and both field-line footpoints switched on. sats may be
// empty; the service answers such a request with an ERROR status.
func BuildTrajectoryRequest(start, end time.Time, sats ...model.SatelliteSpec) *model.TrajectoryRequest {
	return &model.TrajectoryRequest{
		TimeRange:                 normalizedRange(start, end),
		Satellites:                copySatellites(sats),
		NorthBFieldTraceFootpoint: true,
		SouthBFieldTraceFootpoint: true,
		Trajectory:                true,
	}
}

// BuildDataRequest assembles a tabular request for sats over [start, end]
// reporting every component of cs plus the default field-line traces.
// start <= end is not checked here.
func BuildDataRequest(start, end time.Time, cs model.CoordinateSystem, sats []model.SatelliteSpec) *model.DataRequest {
	return &model.DataRequest{
		TimeRange:     normalizedRange(start, end),
		Satellites:    copySatellites(sats),
		OutputOptions: BuildOutputOptions(cs),
	}
}

// ExampleDataRequest is BuildDataRequest for ExampleSatellite alone.
func ExampleDataRequest(start, end time.Time, cs model.CoordinateSystem) *model.DataRequest {
	return BuildDataRequest(start, end, cs, []model.SatelliteSpec{ExampleSatellite})
}

// BuildOutputOptions combines the expanded coordinate options for cs with
// DefaultTraceOptions and enables all location filters.
func BuildOutputOptions(cs model.CoordinateSystem) model.OutputOptions {
	return model.OutputOptions{
		AllLocationFilters: true,
		CoordinateOptions:  ExpandCoordinateOptions(cs),
		BFieldTraceOptions: DefaultTraceOptions(),
	}
}

// DefaultFormatOptions returns day-of-year dates, hour:minute times, Earth
// radii at 4 decimals and decimal degrees at 2 decimals.
func DefaultFormatOptions() model.FormatOptions {
	return model.FormatOptions{
		DateFormat:        model.DateFormatYYYYDDD,
		TimeFormat:        model.TimeFormatHHMM,
		DistanceUnits:     model.DistanceUnitsRE,
		DistancePrecision: 4,
		DegreeFormat:      model.DegreeFormatDecimal,
		DegreePrecision:   2,
		LatLonFormat:      model.LatLonFormat90And180,
	}
}

func normalizedRange(start, end time.Time) model.TimeRange {
	return model.TimeRange{Start: timectrl.UTC(start), End: timectrl.UTC(end)}
}

func copySatellites(sats []model.SatelliteSpec) []model.SatelliteSpec {
	if len(sats) == 0 {
		return nil
	}
	out := make([]model.SatelliteSpec, len(sats))
	copy(out, sats)
	return out
}
