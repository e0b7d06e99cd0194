package core

import (
	"testing"

	"github.com/signalsfoundry/sscweb/model"
)

func TestIsExcluded(t *testing.T) {
	for _, cs := range model.CoordinateSystems() {
		for _, comp := range model.CoordinateComponents() {
			inertial := cs == model.CoordinateSystemGEIJ2000 || cs == model.CoordinateSystemGEITOD
			want := inertial && comp == model.ComponentLocalTime
			if got := IsExcluded(cs, comp); got != want {
				t.Fatalf("IsExcluded(%s, %s) = %v, want %v", cs, comp, got, want)
			}
		}
	}
}

func TestExpandCoordinateOptionsNonInertialFrames(t *testing.T) {
	components := model.CoordinateComponents()
	for _, cs := range []model.CoordinateSystem{
		model.CoordinateSystemGEO,
		model.CoordinateSystemGM,
		model.CoordinateSystemGSE,
		model.CoordinateSystemGSM,
		model.CoordinateSystemSM,
	} {
		t.Run(string(cs), func(t *testing.T) {
			got := ExpandCoordinateOptions(cs)
			if len(got) != len(components) {
				t.Fatalf("len = %d, want %d", len(got), len(components))
			}
			for i, opt := range got {
				if opt.CoordinateSystem != cs {
					t.Fatalf("option[%d].CoordinateSystem = %s, want %s", i, opt.CoordinateSystem, cs)
				}
				if opt.Component != components[i] {
					t.Fatalf("option[%d].Component = %s, want %s", i, opt.Component, components[i])
				}
				if opt.Filter != nil {
					t.Fatalf("option[%d].Filter = %+v, want nil", i, opt.Filter)
				}
			}
		})
	}
}

func TestExpandCoordinateOptionsInertialFramesDropLocalTime(t *testing.T) {
	want := []model.CoordinateComponent{
		model.ComponentX,
		model.ComponentY,
		model.ComponentZ,
		model.ComponentLat,
		model.ComponentLon,
	}
	for _, cs := range []model.CoordinateSystem{model.CoordinateSystemGEIJ2000, model.CoordinateSystemGEITOD} {
		t.Run(string(cs), func(t *testing.T) {
			got := ExpandCoordinateOptions(cs)
			if len(got) != len(model.CoordinateComponents())-1 {
				t.Fatalf("len = %d, want %d", len(got), len(model.CoordinateComponents())-1)
			}
			for i, opt := range got {
				if opt.Component != want[i] {
					t.Fatalf("option[%d].Component = %s, want %s", i, opt.Component, want[i])
				}
				if opt.Component == model.ComponentLocalTime {
					t.Fatalf("LOCAL_TIME must be omitted for %s", cs)
				}
			}
		})
	}
}

func TestDefaultTraceOptions(t *testing.T) {
	want := []struct {
		cs model.CoordinateSystem
		h  model.Hemisphere
	}{
		{model.CoordinateSystemGM, model.HemisphereSouth},
		{model.CoordinateSystemGM, model.HemisphereNorth},
		{model.CoordinateSystemGEO, model.HemisphereSouth},
		{model.CoordinateSystemGEO, model.HemisphereNorth},
	}

	got := DefaultTraceOptions()
	if len(got) != len(want) {
		t.Fatalf("len(DefaultTraceOptions()) = %d, want %d", len(got), len(want))
	}
	for i, opt := range got {
		if opt.CoordinateSystem != want[i].cs || opt.Hemisphere != want[i].h {
			t.Fatalf("trace[%d] = %s/%s, want %s/%s", i, opt.CoordinateSystem, opt.Hemisphere, want[i].cs, want[i].h)
		}
		if !opt.FieldLineLength || !opt.FootpointLatitude || !opt.FootpointLongitude {
			t.Fatalf("trace[%d] flags not all set: %+v", i, opt)
		}
	}

	// Each call allocates a fresh catalogue.
	got[0].Hemisphere = model.HemisphereNorth
	if DefaultTraceOptions()[0].Hemisphere != model.HemisphereSouth {
		t.Fatalf("DefaultTraceOptions shares state between calls")
	}
}
