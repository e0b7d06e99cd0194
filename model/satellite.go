package model

import (
	"encoding/xml"
	"fmt"
	"time"
)

// SatelliteDescription is one entry of the service's satellite catalogue.
type SatelliteDescription struct {
	XMLName               xml.Name  `xml:"SatelliteDescription" json:"-"`
	ID                    string    `xml:"Id" json:"id"`
	Name                  string    `xml:"Name" json:"name"`
	Resolution            int       `xml:"Resolution" json:"resolution"` // seconds
	StartTime             time.Time `xml:"StartTime" json:"startTime"`
	EndTime               time.Time `xml:"EndTime" json:"endTime"`
	GeometryURL           string    `xml:"Geometry,omitempty" json:"geometry,omitempty"`
	TrajectoryGeometryURL string    `xml:"TrajectoryGeometry,omitempty" json:"trajectoryGeometry,omitempty"`
}

// ActiveAt reports whether the satellite's data coverage extends past now.
func (d SatelliteDescription) ActiveAt(now time.Time) bool {
	return now.Before(d.EndTime)
}

// MarshalSatelliteDescriptionXML renders d as an indented XML document
// fragment.
func MarshalSatelliteDescriptionXML(d SatelliteDescription) ([]byte, error) {
	out, err := xml.MarshalIndent(d, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshal satellite description %q: %w", d.ID, err)
	}
	return out, nil
}
