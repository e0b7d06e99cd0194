package render

import (
	"time"

	"github.com/signalsfoundry/sscweb/model"
)

// Value is one optionally-present sample.
type Value struct {
	V  float64
	OK bool
}

// at returns seq[i] when seq is present and long enough to hold index i.
func at(seq []float64, i int) Value {
	if seq == nil || i < 0 || i >= len(seq) {
		return Value{}
	}
	return Value{V: seq[i], OK: true}
}

// CoordinateRow is one frame's components at a single instant.
type CoordinateRow struct {
	CoordinateSystem model.CoordinateSystem
	X, Y, Z          Value
	Latitude         Value
	Longitude        Value
	LocalTime        Value
}

// Values lists the components in print order.
func (r CoordinateRow) Values() []Value {
	return []Value{r.X, r.Y, r.Z, r.Latitude, r.Longitude, r.LocalTime}
}

// TraceRow is one field-line trace at a single instant.
type TraceRow struct {
	CoordinateSystem model.CoordinateSystem
	Hemisphere       model.Hemisphere
	ArcLength        Value
	Latitude         Value
	Longitude        Value
}

// Label is the "SYSTEM/HEMISPHERE" tag printed ahead of the trace values.
func (r TraceRow) Label() string {
	return string(r.CoordinateSystem) + "/" + string(r.Hemisphere)
}

// Values lists the trace quantities in print order.
func (r TraceRow) Values() []Value {
	return []Value{r.ArcLength, r.Latitude, r.Longitude}
}

// Row is everything known about a satellite at one time index.
type Row struct {
	Time        time.Time
	Coordinates []CoordinateRow
	Traces      []TraceRow
}

// Rows turns the parallel sequences of sd into one record per entry of
// sd.Time. Sequences shorter than sd.Time leave the trailing rows without
// that field; sequences longer than it are truncated.
func Rows(sd model.SatelliteData) []Row {
	rows := make([]Row, len(sd.Time))
	for i, t := range sd.Time {
		row := Row{
			// Builders already normalise to UTC; this covers hand-built results.
			Time:        t.UTC(),
			Coordinates: make([]CoordinateRow, 0, len(sd.Coordinates)),
			Traces:      make([]TraceRow, 0, len(sd.BTraceData)),
		}
		for _, c := range sd.Coordinates {
			row.Coordinates = append(row.Coordinates, CoordinateRow{
				CoordinateSystem: c.CoordinateSystem,
				X:                at(c.X, i),
				Y:                at(c.Y, i),
				Z:                at(c.Z, i),
				Latitude:         at(c.Latitude, i),
				Longitude:        at(c.Longitude, i),
				LocalTime:        at(c.LocalTime, i),
			})
		}
		for _, b := range sd.BTraceData {
			row.Traces = append(row.Traces, TraceRow{
				CoordinateSystem: b.CoordinateSystem,
				Hemisphere:       b.Hemisphere,
				ArcLength:        at(b.ArcLength, i),
				Latitude:         at(b.Latitude, i),
				Longitude:        at(b.Longitude, i),
			})
		}
		rows[i] = row
	}
	return rows
}
