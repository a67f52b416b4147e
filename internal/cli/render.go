package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/pipeline"
	"github.com/matzehuels/barchart/pkg/render"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output      string
	formats     []string
	animate     bool
	interactive bool
	title       string
	scale       float64
	noCache     bool
	refresh     bool
	chart       chartFlags
}

func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render <data>",
		Short: "Render a data file (JSON, CSV or XLSX) to a bar chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			cfg, err := opts.chart.config(cmd)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], cfg, opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	fs.StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, html, png, pdf (comma-separated)")
	fs.BoolVar(&opts.animate, "animate", false, "animate bars entering in SVG output")
	fs.BoolVar(&opts.interactive, "interactive", false, "embed pointer tracking script in SVG output")
	fs.StringVar(&opts.title, "title", "", "chart title")
	fs.Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	fs.BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	fs.BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	opts.chart.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, cfg chart.Config, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	if needsConverter(opts.formats) && !render.Available() {
		return errors.New(errors.ErrCodeUnsupported, "png and pdf output need %s (brew install librsvg / apt install librsvg2-bin)", render.Tool)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	sp := startSpinner(ctx, os.Stderr, "Rendering "+input)
	result, err := runner.Execute(ctx, pipeline.Options{
		Source:      input,
		Config:      cfg,
		Formats:     opts.formats,
		Animate:     opts.animate,
		Interactive: opts.interactive,
		Title:       opts.title,
		Scale:       opts.scale,
		Refresh:     opts.refresh,
		Logger:      logger,
	})
	sp.Stop()
	if err != nil {
		return err
	}

	paths := outputPaths(opts.output, input, opts.formats)
	formats := make([]string, 0, len(paths))
	for f := range paths {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	printSuccess("Rendered %s", StyleHighlight.Render(result.Dataset.Name))
	printStats(result.Stats.Points, result.CacheInfo.RenderHit, result.Stats.LoadTime+result.Stats.RenderTime)
	for _, f := range formats {
		if err := os.WriteFile(paths[f], result.Artifacts[f], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", paths[f])
		}
		logger.Debug("wrote artifact", "format", f, "bytes", len(result.Artifacts[f]), "path", paths[f])
		printFile(paths[f])
	}
	printNextStep("Explore it in the terminal", fmt.Sprintf("%s explore %s", appName, input))
	return nil
}

func needsConverter(formats []string) bool {
	for _, f := range formats {
		if f == pipeline.FormatPNG || f == pipeline.FormatPDF {
			return true
		}
	}
	return false
}

// basePath derives the output base path. Without an explicit output it is
// the input path minus its extension; a known format extension on output
// is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to a file. A single format with an explicit
// output writes exactly there.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
