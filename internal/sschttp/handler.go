package sschttp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/signalsfoundry/sscweb/core"
	"github.com/signalsfoundry/sscweb/internal/logging"
	"github.com/signalsfoundry/sscweb/internal/wire"
	"github.com/signalsfoundry/sscweb/model"
)

// RequestIDHeader carries the caller's request_id.
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

// Handler exposes svc as HTTP/JSON endpoints:
//
//	GET  /observatories  -> {"satellites": [...]}
//	POST /kml            TrajectoryRequest -> FileResult
//	POST /locations      DataRequest -> DataResult
//
// A result with an ERROR status is still a 200 reply.
func Handler(svc core.Service, log logging.Logger) http.Handler {
	if log == nil {
		log = logging.Noop()
	}
	h := &handler{svc: svc, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+PathObservatories, h.observatories)
	mux.HandleFunc("POST "+PathKml, h.kml)
	mux.HandleFunc("POST "+PathLocations, h.locations)
	return mux
}

type handler struct {
	svc core.Service
	log logging.Logger
}

func (h *handler) observatories(w http.ResponseWriter, r *http.Request) {
	ctx, log := h.requestContext(r)
	sats, err := h.svc.GetAllSatellites(ctx)
	if err != nil {
		h.fail(ctx, w, log, http.StatusInternalServerError, err)
		return
	}
	h.reply(ctx, w, log, wire.SatelliteList{Satellites: sats})
}

func (h *handler) kml(w http.ResponseWriter, r *http.Request) {
	ctx, log := h.requestContext(r)
	var req model.TrajectoryRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.fail(ctx, w, log, http.StatusBadRequest, err)
		return
	}
	res, err := h.svc.GetKmlFiles(ctx, &req)
	if err != nil {
		h.fail(ctx, w, log, statusFor(err), err)
		return
	}
	h.reply(ctx, w, log, res)
}

func (h *handler) locations(w http.ResponseWriter, r *http.Request) {
	ctx, log := h.requestContext(r)
	var req model.DataRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.fail(ctx, w, log, http.StatusBadRequest, err)
		return
	}
	res, err := h.svc.GetData(ctx, &req)
	if err != nil {
		h.fail(ctx, w, log, statusFor(err), err)
		return
	}
	h.reply(ctx, w, log, res)
}

func (h *handler) requestContext(r *http.Request) (context.Context, logging.Logger) {
	ctx := r.Context()
	if id := r.Header.Get(RequestIDHeader); id != "" {
		ctx = logging.ContextWithRequestID(ctx, id)
	}
	ctx, log := logging.WithRequestLogger(ctx, h.log.With(
		logging.String("method", r.Method),
		logging.String("path", r.URL.Path),
	))
	return logging.ContextWithLogger(ctx, log), log
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) reply(ctx context.Context, w http.ResponseWriter, log logging.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(RequestIDHeader, logging.RequestIDFromContext(ctx))
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn(ctx, "write response failed", logging.Err(err))
	}
}

func (h *handler) fail(ctx context.Context, w http.ResponseWriter, log logging.Logger, code int, err error) {
	log.Warn(ctx, "ssc request failed", logging.Int("code", code), logging.Err(err))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(RequestIDHeader, logging.RequestIDFromContext(ctx))
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorBody{Error: err.Error()})
}
