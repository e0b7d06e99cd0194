package model

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"
)

func TestCoordinateComponentsCanonicalOrder(t *testing.T) {
	want := []CoordinateComponent{ComponentX, ComponentY, ComponentZ, ComponentLat, ComponentLon, ComponentLocalTime}
	got := CoordinateComponents()
	if len(got) != len(want) {
		t.Fatalf("len(CoordinateComponents()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("component[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	// Mutating the returned slice must not leak into the next call.
	got[0] = ComponentLocalTime
	if CoordinateComponents()[0] != ComponentX {
		t.Fatalf("CoordinateComponents returned shared backing array")
	}
}

func TestParseCoordinateSystem(t *testing.T) {
	for _, cs := range CoordinateSystems() {
		parsed, ok := ParseCoordinateSystem(string(cs))
		if !ok || parsed != cs {
			t.Fatalf("ParseCoordinateSystem(%q) = %q, %v", cs, parsed, ok)
		}
	}
	if _, ok := ParseCoordinateSystem("geo"); ok {
		t.Fatalf("expected lower-case name to be rejected")
	}
	if _, ok := ParseCoordinateSystem("ECEF"); ok {
		t.Fatalf("expected unknown frame to be rejected")
	}
}

func TestSatelliteDescriptionXMLRoundTrip(t *testing.T) {
	desc := SatelliteDescription{
		ID:         "iss",
		Name:       "ISS",
		Resolution: 60,
		StartTime:  time.Date(1998, 11, 20, 0, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	out, err := MarshalSatelliteDescriptionXML(desc)
	if err != nil {
		t.Fatalf("MarshalSatelliteDescriptionXML: %v", err)
	}
	doc := string(out)
	if !strings.HasPrefix(doc, "<SatelliteDescription>") {
		t.Fatalf("unexpected root element: %s", doc)
	}
	if !strings.Contains(doc, "<Id>iss</Id>") {
		t.Fatalf("missing Id element: %s", doc)
	}
	if strings.Contains(doc, "<Geometry>") {
		t.Fatalf("empty geometry URL should be omitted: %s", doc)
	}

	var back SatelliteDescription
	if err := xml.Unmarshal(out, &back); err != nil {
		t.Fatalf("xml.Unmarshal: %v", err)
	}
	if back.ID != desc.ID || !back.EndTime.Equal(desc.EndTime) {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestSatelliteDescriptionActiveAt(t *testing.T) {
	end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	desc := SatelliteDescription{ID: "fast", EndTime: end}
	if !desc.ActiveAt(end.Add(-time.Second)) {
		t.Fatalf("expected satellite active before end time")
	}
	if desc.ActiveAt(end) {
		t.Fatalf("expected satellite inactive at end time")
	}
}

func TestDataRequestWithFormatOptionsCopies(t *testing.T) {
	req := &DataRequest{Satellites: []SatelliteSpec{{ID: "iss", ResolutionFactor: 1}}}
	withOpts := req.WithFormatOptions(FormatOptions{DistanceUnits: DistanceUnitsKM})
	if req.FormatOptions != nil {
		t.Fatalf("original request was mutated")
	}
	if withOpts.FormatOptions == nil || withOpts.FormatOptions.DistanceUnits != DistanceUnitsKM {
		t.Fatalf("format options not applied: %+v", withOpts.FormatOptions)
	}
}
