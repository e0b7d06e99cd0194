package model

import "time"

// ResultStatusCode is the coarse outcome reported by the service.
type ResultStatusCode string

const (
	StatusSuccess                 ResultStatusCode = "SUCCESS"
	StatusConditionallySuccessful ResultStatusCode = "CONDITIONALLY_SUCCESSFUL"
	StatusError                   ResultStatusCode = "ERROR"
)

// ResultStatusSubCode refines a ResultStatusCode.
type ResultStatusSubCode string

const (
	SubCodeSuccess                     ResultStatusSubCode = "SUCCESS"
	SubCodeMissingRequest              ResultStatusSubCode = "MISSING_REQUEST"
	SubCodeMissingSatellites           ResultStatusSubCode = "MISSING_SATELLITES"
	SubCodeInvalidBeginTime            ResultStatusSubCode = "INVALID_BEGIN_TIME"
	SubCodeInvalidEndTime              ResultStatusSubCode = "INVALID_END_TIME"
	SubCodeInvalidSatellite            ResultStatusSubCode = "INVALID_SATELLITE"
	SubCodeInvalidTimeRange            ResultStatusSubCode = "INVALID_TIME_RANGE"
	SubCodeInvalidResolutionFactor     ResultStatusSubCode = "INVALID_RESOLUTION_FACTOR"
	SubCodeMissingOutput               ResultStatusSubCode = "MISSING_OUTPUT"
	SubCodeInvalidCoordinateSystem     ResultStatusSubCode = "INVALID_COORDINATE_SYSTEM"
	SubCodeUnsupportedCoordinateSystem ResultStatusSubCode = "UNSUPPORTED_COORDINATE_SYSTEM"
	SubCodeUnsupportedBFieldTrace      ResultStatusSubCode = "UNSUPPORTED_B_FIELD_TRACE"
	SubCodeTooManyPoints               ResultStatusSubCode = "TOO_MANY_POINTS"
	SubCodeServerError                 ResultStatusSubCode = "SERVER_ERROR"
)

// Result is the status envelope shared by every service reply.
type Result struct {
	StatusCode    ResultStatusCode    `json:"statusCode"`
	StatusSubCode ResultStatusSubCode `json:"statusSubCode"`
	StatusText    []string            `json:"statusText,omitempty"`
}

// Failed reports whether the service rejected the request outright.
func (r Result) Failed() bool { return r.StatusCode == StatusError }

// FileResult is the reply to a trajectory request: downloadable artefacts.
type FileResult struct {
	Result
	URLs []string `json:"urls,omitempty"`
}

// DataResult is the reply to a data request.
type DataResult struct {
	Result
	Data []SatelliteData `json:"data,omitempty"`
}

// SatelliteData holds parallel sequences keyed by Time. Every non-nil
// sequence is index aligned with Time but may be shorter than it.
type SatelliteData struct {
	ID          string           `json:"id"`
	Time        []time.Time      `json:"time"`
	Coordinates []CoordinateData `json:"coordinates,omitempty"`
	BTraceData  []BTraceData     `json:"bTraceData,omitempty"`
}

// CoordinateData carries the components of one frame. A nil slice means the
// component was not returned.
type CoordinateData struct {
	CoordinateSystem CoordinateSystem `json:"coordinateSystem"`
	X                []float64        `json:"x,omitempty"` // km
	Y                []float64        `json:"y,omitempty"` // km
	Z                []float64        `json:"z,omitempty"` // km
	Latitude         []float64        `json:"latitude,omitempty"`
	Longitude        []float64        `json:"longitude,omitempty"`
	LocalTime        []float64        `json:"localTime,omitempty"` // hours
}

// BTraceData carries one field-line trace.
type BTraceData struct {
	CoordinateSystem CoordinateSystem `json:"coordinateSystem"`
	Hemisphere       Hemisphere       `json:"hemisphere"`
	ArcLength        []float64        `json:"arcLength,omitempty"`
	Latitude         []float64        `json:"latitude,omitempty"`
	Longitude        []float64        `json:"longitude,omitempty"`
}
