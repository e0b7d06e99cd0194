package sscrpc

import (
	"context"
	"errors"

	"github.com/signalsfoundry/sscweb/internal/wire"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrBadRequest marks requests the server could not decode.
var ErrBadRequest = errors.New("malformed request")

// ToStatusError maps service and decoding errors onto gRPC status codes.
// Rejections the service expresses as an ERROR result never reach here;
// they travel as ordinary replies.
func ToStatusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, wire.ErrNilMessage):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
