package server

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/matzehuels/barchart/pkg/buildinfo"
	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/dataset"
	"github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/pipeline"
)

var chartFormats = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatHTML: "text/html; charset=utf-8",
}

// DatasetResponse describes a stored dataset.
type DatasetResponse struct {
	Name      string        `json:"name"`
	Time      bool          `json:"time,omitempty"`
	Points    []chart.Point `json:"points"`
	UpdatedAt time.Time     `json:"updated_at,omitempty"`
	Revision  string        `json:"revision,omitempty"`
}

// NearestResponse is the point under a pointer position.
type NearestResponse struct {
	X     float64     `json:"x"`
	Point chart.Point `json:"point"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	render.JSON(w, r, map[string]any{"datasets": names})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, DatasetResponse{Name: ds.Name, Time: ds.Time, Points: ds.Points, UpdatedAt: ds.UpdatedAt})
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := errors.ValidateDatasetName(name); err != nil {
		s.fail(w, r, err)
		return
	}
	format, err := bodyFormat(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		s.fail(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	ds, err := dataset.Read(bytes.NewReader(body), format, name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ds.Name = name
	ds.Sort()
	if err := chart.ValidatePoints(ds.Points); err != nil {
		s.fail(w, r, err)
		return
	}

	lc, err := s.replace(r.Context(), ds)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("dataset updated", "name", name, "points", len(ds.Points), "revision", lc.revision)
	render.JSON(w, r, DatasetResponse{Name: ds.Name, Time: ds.Time, Points: ds.Points, Revision: lc.revision})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.drop(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name, format := chi.URLParam(r, "name"), chi.URLParam(r, "format")
	contentType, ok := chartFormats[format]
	if !ok {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidFormat, "unsupported chart format %q (want svg, json or html)", format))
		return
	}
	body, etag, err := s.chartBody(r, name, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("ETag", etag)
	if body == nil {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(body)
}

// chartBody renders the live chart under the server lock so the body always
// matches the revision in the ETag. A nil body means the client's copy is
// current.
func (s *Server) chartBody(r *http.Request, name, format string) ([]byte, string, error) {
	ctx := r.Context()
	s.mu.Lock()
	defer s.mu.Unlock()

	lc, err := s.liveFor(ctx, name)
	if err != nil {
		return nil, "", err
	}
	etag := strconv.Quote(lc.revision + "." + format)
	if r.Header.Get("If-None-Match") == etag {
		return nil, etag, nil
	}

	key := s.keyer.ChartKey(name, lc.revision, format)
	body, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("chart cache read failed", "key", key, "err", err)
	}
	if hit {
		return body, etag, nil
	}
	body, err = pipeline.Artifact(ctx, lc.chart, format, pipeline.Options{
		Title:       name,
		Animate:     true,
		Interactive: true,
	})
	if err != nil {
		return nil, "", err
	}
	if err := s.cache.Set(ctx, key, body, cacheTTL); err != nil {
		s.logger.Warn("chart cache write failed", "key", key, "err", err)
	}
	return body, etag, nil
}

func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	x, err := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	if err != nil {
		s.fail(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "x must be a number"))
		return
	}

	s.mu.Lock()
	lc, err := s.liveFor(r.Context(), name)
	s.mu.Unlock()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	p, ok := lc.chart.MouseOver(x)
	if !ok {
		lc.chart.MouseOut()
		s.fail(w, r, errors.New(errors.ErrCodeNotFound, "no point before x=%g", x))
		return
	}
	render.JSON(w, r, NearestResponse{X: x, Point: p})
}

// bodyFormat picks the upload format from ?format= or the Content-Type.
func bodyFormat(r *http.Request) (dataset.Format, error) {
	if f := r.URL.Query().Get("format"); f != "" {
		return dataset.FormatFromPath("upload." + f)
	}
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "text/csv", "text/plain":
		return dataset.FormatCSV, nil
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return dataset.FormatXLSX, nil
	case "", "application/json":
		return dataset.FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported content type %q", mt)
}
