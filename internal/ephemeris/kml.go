package ephemeris

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/signalsfoundry/sscweb/internal/logging"
	"github.com/signalsfoundry/sscweb/model"
)

// KMLContentType is the media type of served artifacts.
const KMLContentType = "application/vnd.google-earth.kml+xml"

type kmlDocument struct {
	XMLName  xml.Name `xml:"http://www.opengis.net/kml/2.2 kml"`
	Document kmlFolder
}

type kmlFolder struct {
	Name        string         `xml:"name"`
	Description string         `xml:"description,omitempty"`
	Placemarks  []kmlPlacemark `xml:"Placemark"`
}

type kmlPlacemark struct {
	Name       string         `xml:"name"`
	TimeSpan   *kmlTimeSpan   `xml:"TimeSpan,omitempty"`
	LineString *kmlLineString `xml:"LineString,omitempty"`
}

type kmlTimeSpan struct {
	Begin string `xml:"begin"`
	End   string `xml:"end"`
}

type kmlLineString struct {
	AltitudeMode string `xml:"altitudeMode"`
	Coordinates  string `xml:"coordinates"`
}

// GetKmlFiles renders one KML document per requested satellite and returns
// their URLs.
func (s *Service) GetKmlFiles(ctx context.Context, req *model.TrajectoryRequest) (*model.FileResult, error) {
	if req == nil {
		return &model.FileResult{Result: errorResult(model.SubCodeMissingRequest, "No request was given.")}, nil
	}
	if r, ok := s.validate(req.TimeRange, req.Satellites); !ok {
		return &model.FileResult{Result: r}, nil
	}
	if !req.Trajectory && !req.NorthBFieldTraceFootpoint && !req.SouthBFieldTraceFootpoint {
		return &model.FileResult{Result: errorResult(model.SubCodeMissingOutput, "No trajectory or footpoint output was requested.")}, nil
	}

	var st outcome
	if req.NorthBFieldTraceFootpoint || req.SouthBFieldTraceFootpoint {
		st.warn(model.SubCodeUnsupportedBFieldTrace, "Field-line footpoints are not available; only the trajectory is rendered.")
	}

	res := &model.FileResult{}
	for _, spec := range req.Satellites {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e, err := s.lookup(spec.ID)
		if err != nil {
			return nil, err
		}
		var samples []sample
		if req.Trajectory {
			var clipped bool
			samples, clipped = s.samples(e, req.TimeRange, spec.ResolutionFactor)
			if clipped {
				st.warn(model.SubCodeTooManyPoints, fmt.Sprintf("Trajectory for %s was limited to %d points.", spec.ID, s.cfg.MaxPoints))
			}
		}
		doc, err := renderKML(e, req.TimeRange, samples)
		if err != nil {
			return nil, err
		}
		name := fmt.Sprintf("%s_%s_%s.kml", e.ID, req.TimeRange.Start.UTC().Format("20060102150405"), uuid.NewString()[:8])
		s.storeArtifact(name, doc)
		res.URLs = append(res.URLs, artifactURL(s.cfg.ArtifactBaseURL, name))
	}
	res.Result = st.result()

	logging.LoggerFromContext(ctx, s.log).Debug(ctx, "kml rendered",
		logging.Int("files", len(res.URLs)),
		logging.String("status", string(res.StatusCode)),
	)
	return res, nil
}

func renderKML(e *entry, tr model.TimeRange, samples []sample) ([]byte, error) {
	doc := kmlDocument{Document: kmlFolder{
		Name:        e.Name,
		Description: fmt.Sprintf("%s trajectory in GEO", e.Name),
	}}
	if len(samples) > 0 {
		var coords strings.Builder
		for i, smp := range samples {
			if i > 0 {
				coords.WriteByte(' ')
			}
			lat, lon := latLonDeg(smp.geo)
			coords.WriteString(strconv.FormatFloat(lon, 'f', 4, 64))
			coords.WriteByte(',')
			coords.WriteString(strconv.FormatFloat(lat, 'f', 4, 64))
			coords.WriteByte(',')
			coords.WriteString(strconv.FormatFloat(altitudeKm(smp.geo)*1000, 'f', 0, 64))
		}
		doc.Document.Placemarks = append(doc.Document.Placemarks, kmlPlacemark{
			Name: e.ID,
			TimeSpan: &kmlTimeSpan{
				Begin: tr.Start.UTC().Format(time.RFC3339),
				End:   tr.End.UTC().Format(time.RFC3339),
			},
			LineString: &kmlLineString{AltitudeMode: "absolute", Coordinates: coords.String()},
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("ephemeris: encode kml for %s: %w", e.ID, err)
	}
	return buf.Bytes(), nil
}

func (s *Service) storeArtifact(name string, doc []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts[name] = doc
	s.evictList = append(s.evictList, name)
	for s.cfg.MaxArtifacts > 0 && len(s.evictList) > s.cfg.MaxArtifacts {
		delete(s.artifacts, s.evictList[0])
		s.evictList = s.evictList[1:]
	}
}

// KML returns a stored artifact by name.
func (s *Service) KML(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.artifacts[name]
	return doc, ok
}

// KMLHandler serves stored artifacts at /kml/{name}.
func (s *Service) KMLHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /kml/{name}", func(w http.ResponseWriter, r *http.Request) {
		doc, ok := s.KML(r.PathValue("name"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", KMLContentType)
		_, _ = w.Write(doc)
	})
	return mux
}
