package ephemeris

import (
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
	"github.com/signalsfoundry/sscweb/model"
)

// EarthRadiusKm converts kilometres to Earth radii.
const EarthRadiusKm = 6371.2

// Centred-dipole north pole, geographic degrees (IGRF-13, 2020).
const (
	dipolePoleLatDeg = 80.65
	dipolePoleLonDeg = -72.68
)

type vec3 struct{ X, Y, Z float64 }

func (v vec3) dot(o vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v vec3) cross(o vec3) vec3 {
	return vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}

func (v vec3) norm() float64 { return math.Sqrt(v.dot(v)) }

func (v vec3) scale(k float64) vec3 { return vec3{v.X * k, v.Y * k, v.Z * k} }

// gmAxes are the GM basis vectors expressed in GEO.
var gmAxes = func() [3]vec3 {
	lat := dipolePoleLatDeg * math.Pi / 180
	lon := dipolePoleLonDeg * math.Pi / 180
	z := vec3{math.Cos(lat) * math.Cos(lon), math.Cos(lat) * math.Sin(lon), math.Sin(lat)}
	y := vec3{0, 0, 1}.cross(z)
	y = y.scale(1 / y.norm())
	x := y.cross(z)
	return [3]vec3{x, y, z}
}()

// sample is one propagated position in the frames the service computes.
type sample struct {
	at   time.Time
	teme vec3
	geo  vec3
}

// propagate evaluates sat at t. SGP4 takes whole seconds, so t is
// truncated first and the sample carries the instant actually evaluated.
func propagate(sat satellite.Satellite, t time.Time) sample {
	t = t.UTC().Truncate(time.Second)
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	pos, _ := satellite.Propagate(sat, year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(satellite.JDay(year, int(month), day, hour, min, sec))
	ecef := satellite.ECIToECEF(pos, gmst)

	return sample{
		at:   t,
		teme: vec3{pos.X, pos.Y, pos.Z},
		geo:  vec3{ecef.X, ecef.Y, ecef.Z},
	}
}

// position returns s in cs. The boolean is false for frames the service
// cannot compute.
func (s sample) position(cs model.CoordinateSystem) (vec3, bool) {
	switch cs {
	case model.CoordinateSystemGEO:
		return s.geo, true
	case model.CoordinateSystemGM:
		return vec3{s.geo.dot(gmAxes[0]), s.geo.dot(gmAxes[1]), s.geo.dot(gmAxes[2])}, true
	case model.CoordinateSystemGEITOD, model.CoordinateSystemGEIJ2000:
		// SGP4 output is TEME; the difference from either GEI frame is
		// below the precision of the TLE itself.
		return s.teme, true
	default:
		return vec3{}, false
	}
}

// latLonDeg returns the spherical latitude and longitude of v in degrees,
// longitude in (-180, 180].
func latLonDeg(v vec3) (float64, float64) {
	lat := math.Atan2(v.Z, math.Hypot(v.X, v.Y)) * 180 / math.Pi
	lon := math.Atan2(v.Y, v.X) * 180 / math.Pi
	return lat, lon
}

// localTimeHours is the apparent solar local time at geographic longitude
// lon, ignoring the equation of time.
func localTimeHours(t time.Time, lon float64) float64 {
	t = t.UTC()
	ut := float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
	lt := math.Mod(ut+lon/15, 24)
	if lt < 0 {
		lt += 24
	}
	return lt
}

// altitudeKm is the height of v above the mean Earth sphere.
func altitudeKm(v vec3) float64 { return v.norm() - EarthRadiusKm }

// component extracts one coordinate component for cs at s.
func (s sample) component(cs model.CoordinateSystem, c model.CoordinateComponent, distanceScale float64) (float64, bool) {
	v, ok := s.position(cs)
	if !ok {
		return 0, false
	}
	switch c {
	case model.ComponentX:
		return v.X * distanceScale, true
	case model.ComponentY:
		return v.Y * distanceScale, true
	case model.ComponentZ:
		return v.Z * distanceScale, true
	case model.ComponentLat:
		lat, _ := latLonDeg(v)
		return lat, true
	case model.ComponentLon:
		_, lon := latLonDeg(v)
		return lon, true
	case model.ComponentLocalTime:
		_, lon := latLonDeg(s.geo)
		return localTimeHours(s.at, lon), true
	default:
		return 0, false
	}
}
