// Package wire converts model values to and from protobuf Struct messages so
// they can travel over gRPC without generated message types. Field names
// follow the JSON tags on the model types.
package wire

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/signalsfoundry/sscweb/model"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ErrNilMessage is returned when decoding a nil message.
var ErrNilMessage = errors.New("wire: nil message")

// SatelliteList wraps the catalogue, since a Struct must be a JSON object.
type SatelliteList struct {
	Satellites []model.SatelliteDescription `json:"satellites"`
}

// Encode converts v, which must marshal to a JSON object, into a Struct.
func Encode(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("wire: marshal %T: %w", v, err)
	}
	st := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, st); err != nil {
		return nil, fmt.Errorf("wire: encode %T: %w", v, err)
	}
	return st, nil
}

// Decode converts st into a freshly allocated T.
func Decode[T any](st *structpb.Struct) (*T, error) {
	if st == nil {
		return nil, ErrNilMessage
	}
	raw, err := protojson.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("wire: marshal struct: %w", err)
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("wire: decode %T: %w", out, err)
	}
	return out, nil
}
