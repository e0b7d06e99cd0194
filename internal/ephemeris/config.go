// Package ephemeris is an SGP4-backed core.Service. It answers catalogue,
// trajectory (KML) and location queries from two-line element sets, which
// makes it usable as a local stand-in for the remote service.
package ephemeris

import (
	"time"
)

// CatalogEntry describes one satellite known to the service.
type CatalogEntry struct {
	ID         string
	Name       string
	Resolution time.Duration
	StartTime  time.Time
	EndTime    time.Time
	TLE1       string
	TLE2       string
}

// Config configures a Service.
type Config struct {
	// Step is the sampling interval used for entries without a resolution.
	Step time.Duration
	// MaxPoints caps samples per satellite; requests beyond it are clipped.
	MaxPoints int
	// MaxArtifacts bounds the in-memory KML store; the oldest are evicted.
	MaxArtifacts int
	// ArtifactBaseURL prefixes returned KML URLs.
	ArtifactBaseURL string
	Catalog         []CatalogEntry
}

// DefaultConfig returns a Config carrying the built-in catalogue.
func DefaultConfig() Config {
	return Config{
		Step:            time.Minute,
		MaxPoints:       10000,
		MaxArtifacts:    256,
		ArtifactBaseURL: "http://127.0.0.1:8080",
		Catalog:         DefaultCatalog(),
	}
}

// DefaultCatalog returns the built-in satellites.
func DefaultCatalog() []CatalogEntry {
	return []CatalogEntry{
		{
			ID:         "iss",
			Name:       "ISS",
			Resolution: 60 * time.Second,
			StartTime:  time.Date(1998, 11, 20, 0, 0, 0, 0, time.UTC),
			EndTime:    time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC),
			TLE1:       "1 25544U 98067A   25001.50000000  .00016717  00000-0  30164-3 0  9992",
			TLE2:       "2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.50377579487658",
		},
		{
			ID:         "fast",
			Name:       "FAST",
			Resolution: 60 * time.Second,
			StartTime:  time.Date(1996, 8, 21, 0, 0, 0, 0, time.UTC),
			EndTime:    time.Date(2009, 5, 1, 0, 0, 0, 0, time.UTC),
			TLE1:       "1 24285U 96049A   25001.50000000  .00000210  00000-0  32100-4 0  9995",
			TLE2:       "2 24285  82.9712 123.4560 2213000 200.1234 150.4321 10.81234567912345",
		},
	}
}
