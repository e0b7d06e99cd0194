package model

import "time"

// TimeRange is a closed query window. Constructors in core normalise both
// ends to UTC; Start <= End is the caller's responsibility.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SatelliteSpec names one satellite and its temporal down-sampling factor.
type SatelliteSpec struct {
	ID               string `json:"id"`
	ResolutionFactor int    `json:"resolutionFactor"`
}

// DataRequest drives a tabular location query.
type DataRequest struct {
	TimeRange     TimeRange       `json:"timeRange"`
	Satellites    []SatelliteSpec `json:"satellites"`
	OutputOptions OutputOptions   `json:"outputOptions"`
	FormatOptions *FormatOptions  `json:"formatOptions,omitempty"`
}

// WithFormatOptions returns a shallow copy of r carrying opts.
func (r *DataRequest) WithFormatOptions(opts FormatOptions) *DataRequest {
	if r == nil {
		return nil
	}
	out := *r
	out.FormatOptions = &opts
	return &out
}

// TrajectoryRequest drives a KML visualisation query.
type TrajectoryRequest struct {
	TimeRange                 TimeRange       `json:"timeRange"`
	Satellites                []SatelliteSpec `json:"satellites"`
	NorthBFieldTraceFootpoint bool            `json:"northBFieldTraceFootpoint"`
	SouthBFieldTraceFootpoint bool            `json:"southBFieldTraceFootpoint"`
	Trajectory                bool            `json:"trajectory"`
}

// DateFormat controls how the service renders dates in text output.
type DateFormat string

const (
	DateFormatYYYYDDD  DateFormat = "YYYY_DDD"
	DateFormatYYMMDD   DateFormat = "YY_MM_DD"
	DateFormatYYMMMDD  DateFormat = "YY_MMM_DD"
	DateFormatYYCMMMDD DateFormat = "YY_CMMM_DD"
)

// TimeFormat controls how the service renders times of day.
type TimeFormat string

const (
	TimeFormatHHHHHH TimeFormat = "HH_HHHH"
	TimeFormatHHMMSS TimeFormat = "HH_MM_SS"
	TimeFormatHHMM   TimeFormat = "HH_MM"
)

// DistanceUnits is either Earth radii or kilometres.
type DistanceUnits string

const (
	DistanceUnitsRE DistanceUnits = "RE"
	DistanceUnitsKM DistanceUnits = "KM"
)

// DegreeFormat controls angle rendering.
type DegreeFormat string

const (
	DegreeFormatDecimal        DegreeFormat = "DECIMAL"
	DegreeFormatMinutes        DegreeFormat = "MINUTES"
	DegreeFormatMinutesSeconds DegreeFormat = "MINUTES_SECONDS"
)

// LatLonFormat controls latitude/longitude ranges.
type LatLonFormat string

const (
	LatLonFormat90And360     LatLonFormat = "LAT_90_LON_360"
	LatLonFormat90And180     LatLonFormat = "LAT_90_LON_180"
	LatLonFormat90SNAnd180WE LatLonFormat = "LAT_90_SN_LON_180_WE"
)

// FormatOptions tunes server-side text formatting of a data request.
type FormatOptions struct {
	DateFormat        DateFormat    `json:"dateFormat"`
	TimeFormat        TimeFormat    `json:"timeFormat"`
	DistanceUnits     DistanceUnits `json:"distanceUnits"`
	DistancePrecision int           `json:"distancePrecision"`
	DegreeFormat      DegreeFormat  `json:"degreeFormat"`
	DegreePrecision   int           `json:"degreePrecision"`
	LatLonFormat      LatLonFormat  `json:"latLonFormat"`
}
