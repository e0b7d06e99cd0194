package core

import (
	"context"
	"time"

	"github.com/signalsfoundry/sscweb/model"
)

// Service is the remote satellite situation service. Implementations own the
// wire protocol; a reply carrying an ERROR status is a successful round trip
// and comes back with a nil error.
type Service interface {
	GetAllSatellites(ctx context.Context) ([]model.SatelliteDescription, error)
	GetKmlFiles(ctx context.Context, req *model.TrajectoryRequest) (*model.FileResult, error)
	GetData(ctx context.Context, req *model.DataRequest) (*model.DataResult, error)
}

// PartitionSatellites splits descs into satellites whose coverage ends after
// now and those whose coverage has already ended. Input order is preserved.
func PartitionSatellites(descs []model.SatelliteDescription, now time.Time) (active, inactive []model.SatelliteDescription) {
	for _, d := range descs {
		if d.ActiveAt(now) {
			active = append(active, d)
		} else {
			inactive = append(inactive, d)
		}
	}
	return active, inactive
}
