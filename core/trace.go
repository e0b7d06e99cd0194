package core

import "github.com/signalsfoundry/sscweb/model"

// DefaultTraceOptions returns the four field-line traces requested by the
// data builder: GM and GEO frames, each hemisphere, every derived quantity.
// The order (GM south, GM north, GEO south, GEO north) carries no meaning but
// is stable so rendered output can be compared against golden files.
func DefaultTraceOptions() []model.BFieldTraceOption {
	pairs := []struct {
		cs model.CoordinateSystem
		h  model.Hemisphere
	}{
		{model.CoordinateSystemGM, model.HemisphereSouth},
		{model.CoordinateSystemGM, model.HemisphereNorth},
		{model.CoordinateSystemGEO, model.HemisphereSouth},
		{model.CoordinateSystemGEO, model.HemisphereNorth},
	}

	out := make([]model.BFieldTraceOption, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, model.BFieldTraceOption{
			CoordinateSystem:   p.cs,
			Hemisphere:         p.h,
			FieldLineLength:    true,
			FootpointLatitude:  true,
			FootpointLongitude: true,
		})
	}
	return out
}
