package model

// CoordinateSystem identifies a reference frame understood by the service.
type CoordinateSystem string

const (
	CoordinateSystemGEO      CoordinateSystem = "GEO"       // geographic
	CoordinateSystemGM       CoordinateSystem = "GM"        // geomagnetic
	CoordinateSystemGSE      CoordinateSystem = "GSE"       // geocentric solar ecliptic
	CoordinateSystemGSM      CoordinateSystem = "GSM"       // geocentric solar magnetospheric
	CoordinateSystemSM       CoordinateSystem = "SM"        // solar magnetic
	CoordinateSystemGEITOD   CoordinateSystem = "GEI_TOD"   // geocentric equatorial inertial, true of date
	CoordinateSystemGEIJ2000 CoordinateSystem = "GEI_J2000" // geocentric equatorial inertial, J2000
)

var coordinateSystems = []CoordinateSystem{
	CoordinateSystemGEO,
	CoordinateSystemGM,
	CoordinateSystemGSE,
	CoordinateSystemGSM,
	CoordinateSystemSM,
	CoordinateSystemGEITOD,
	CoordinateSystemGEIJ2000,
}

// CoordinateSystems returns every coordinate system in canonical order.
func CoordinateSystems() []CoordinateSystem {
	out := make([]CoordinateSystem, len(coordinateSystems))
	copy(out, coordinateSystems)
	return out
}

// Valid reports whether cs belongs to the coordinate system domain.
func (cs CoordinateSystem) Valid() bool {
	for _, known := range coordinateSystems {
		if cs == known {
			return true
		}
	}
	return false
}

// ParseCoordinateSystem maps a case-sensitive name onto a CoordinateSystem.
func ParseCoordinateSystem(name string) (CoordinateSystem, bool) {
	cs := CoordinateSystem(name)
	return cs, cs.Valid()
}

// CoordinateComponent is one value the service can report for a position.
type CoordinateComponent string

const (
	ComponentX         CoordinateComponent = "X"
	ComponentY         CoordinateComponent = "Y"
	ComponentZ         CoordinateComponent = "Z"
	ComponentLat       CoordinateComponent = "LAT"
	ComponentLon       CoordinateComponent = "LON"
	ComponentLocalTime CoordinateComponent = "LOCAL_TIME"
)

var coordinateComponents = []CoordinateComponent{
	ComponentX,
	ComponentY,
	ComponentZ,
	ComponentLat,
	ComponentLon,
	ComponentLocalTime,
}

// CoordinateComponents returns every component in canonical declared order.
// Callers receive a fresh slice.
func CoordinateComponents() []CoordinateComponent {
	out := make([]CoordinateComponent, len(coordinateComponents))
	copy(out, coordinateComponents)
	return out
}

// Hemisphere selects the end of a magnetic field line to trace.
type Hemisphere string

const (
	HemisphereSouth Hemisphere = "SOUTH"
	HemisphereNorth Hemisphere = "NORTH"
)

// LocationFilter restricts a coordinate component to a value range. The
// request builders in core never set one; it is an extension point for
// callers that assemble OutputOptions by hand.
type LocationFilter struct {
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`
}

// FilteredCoordinateOption is one (frame, component) pair requested in
// tabular output.
type FilteredCoordinateOption struct {
	CoordinateSystem CoordinateSystem    `json:"coordinateSystem"`
	Component        CoordinateComponent `json:"component"`
	Filter           *LocationFilter     `json:"filter,omitempty"`
}

// BFieldTraceOption describes one magnetic field-line trace computation.
type BFieldTraceOption struct {
	CoordinateSystem   CoordinateSystem `json:"coordinateSystem"`
	Hemisphere         Hemisphere       `json:"hemisphere"`
	FieldLineLength    bool             `json:"fieldLineLength"`
	FootpointLatitude  bool             `json:"footpointLatitude"`
	FootpointLongitude bool             `json:"footpointLongitude"`
}

// OutputOptions selects what the service reports for each satellite.
type OutputOptions struct {
	AllLocationFilters bool                       `json:"allLocationFilters"`
	CoordinateOptions  []FilteredCoordinateOption `json:"coordinateOptions"`
	BFieldTraceOptions []BFieldTraceOption        `json:"bFieldTraceOptions"`
}
