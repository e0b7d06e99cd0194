// Package sschttp carries core.Service over HTTP with JSON bodies.
package sschttp

import (
	"fmt"
	"runtime"
	"time"
)

// Paths served by Handler and called by Client.
const (
	PathObservatories = "/observatories"
	PathKml           = "/kml"
	PathLocations     = "/locations"
)

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// RequestsPerSecond caps the client call rate; zero disables limiting.
	RequestsPerSecond float64
	Burst             int

	UserAgent string
}

// DefaultConfig returns a Config for a server on the local host.
func DefaultConfig() Config {
	return Config{
		BaseURL:           "http://127.0.0.1:8080",
		Timeout:           30 * time.Second,
		RequestsPerSecond: 5,
		Burst:             5,
		UserAgent:         DefaultUserAgent(),
	}
}

// DefaultUserAgent identifies the client and the host platform.
func DefaultUserAgent() string {
	return fmt.Sprintf("sscweb-go (%s %s)", runtime.GOOS, runtime.GOARCH)
}
