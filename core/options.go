package core

import "github.com/signalsfoundry/sscweb/model"

// IsExcluded reports whether component must be left out of the coordinate
// options for cs. Inertial frames (GEI_J2000, GEI_TOD) have no meaningful
// local time, so LOCAL_TIME is the only excluded pair.
func IsExcluded(cs model.CoordinateSystem, component model.CoordinateComponent) bool {
	if component != model.ComponentLocalTime {
		return false
	}
	return cs == model.CoordinateSystemGEIJ2000 || cs == model.CoordinateSystemGEITOD
}

// ExpandCoordinateOptions produces one unfiltered option per coordinate
// component for cs, in canonical component order, skipping excluded pairs.
func ExpandCoordinateOptions(cs model.CoordinateSystem) []model.FilteredCoordinateOption {
	components := model.CoordinateComponents()
	out := make([]model.FilteredCoordinateOption, 0, len(components))
	for _, component := range components {
		if IsExcluded(cs, component) {
			continue
		}
		out = append(out, model.FilteredCoordinateOption{
			CoordinateSystem: cs,
			Component:        component,
		})
	}
	return out
}
