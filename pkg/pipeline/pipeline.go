// Package pipeline turns a data file into rendered chart artifacts.
//
// The pipeline has two stages:
//
//  1. Load: read a JSON, CSV or XLSX dataset (cached by content hash)
//  2. Render: build a chart, render the dataset, and emit each requested
//     format (cached per format, data hash and config hash)
//
// Both the CLI and the HTTP server run charts through a [Runner] so caching
// and defaults behave the same everywhere.
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "sales.csv",
//	    Formats: []string{"svg", "html"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/barchart/pkg/cache"
	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/dataset"
	"github.com/matzehuels/barchart/pkg/errors"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatHTML = "html"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatHTML: true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// Options configures a pipeline run. Exactly one of Dataset, Data or Source
// supplies the points.
type Options struct {
	// Source is a data file path.
	Source string `json:"source,omitempty"`
	// Data holds raw file content in Format.
	Data   []byte         `json:"-"`
	Format dataset.Format `json:"format,omitempty"`
	// Dataset is an already loaded series.
	Dataset *dataset.Dataset `json:"-"`
	// Name overrides the dataset name.
	Name string `json:"name,omitempty"`

	Config      chart.Config `json:"config"`
	Formats     []string     `json:"formats,omitempty"`
	Animate     bool         `json:"animate,omitempty"`
	Interactive bool         `json:"interactive,omitempty"`
	Title       string       `json:"title,omitempty"`
	Scale       float64      `json:"scale,omitempty"`

	// Refresh skips cache reads. Results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Dataset   *dataset.Dataset
	DataHash  string
	Chart     *chart.Chart
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Points     int
	LoadTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	LoadHit   bool
	RenderHit bool // all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: svg, json, html, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	sources := 0
	for _, set := range []bool{o.Dataset != nil, len(o.Data) > 0, o.Source != ""} {
		if set {
			sources++
		}
	}
	if sources == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "source, data or dataset is required")
	}
	if sources > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "only one of source, data or dataset may be set")
	}
	if len(o.Data) > 0 && o.Format == "" {
		return errors.New(errors.ErrCodeInvalidInput, "format is required with inline data")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ConfigHash identifies the render-relevant chart configuration.
func ConfigHash(cfg chart.Config) string {
	data, _ := json.Marshal(cfg.WithDefaults())
	return cache.Hash(data)
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string, cfg chart.Config) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:     format,
		ConfigHash: ConfigHash(cfg),
		Animate:    o.Animate && format == FormatSVG,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	if format == FormatSVG || format == FormatHTML {
		opts.ConfigHash = cache.Hash([]byte(opts.ConfigHash + "\x00" + o.Title + "\x00" + boolString(o.Interactive)))
	}
	return opts
}

func boolString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
