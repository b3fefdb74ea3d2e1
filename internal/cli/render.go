package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/highweigh/pkg/errors"
	"github.com/matzehuels/highweigh/pkg/pipeline"
	"github.com/matzehuels/highweigh/pkg/roadmap"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output     string   // output file (one format) or base path (several)
	formats    []string // svg, json, png, pdf
	today      string   // YYYY-M-D date of the today marker
	stylesheet string   // CSS file replacing the embedded stylesheet
	scale      float64  // PNG resolution multiplier
	noCache    bool
	refresh    bool
	spinner    bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file|url>",
		Short: "Render a roadmap to SVG, JSON, PNG or PDF",
		Long: `Render a roadmap document as a month-grid Gantt chart.

The document may be a local JSON, YAML or TOML file or an http(s) URL.
Documents fetched from a URL and rendered artifacts are cached; use
--refresh to re-render or --no-cache to bypass the cache entirely.`,
		Example: `  highweigh render roadmap.yaml
  highweigh render roadmap.yaml -f svg,png -o out/roadmap
  highweigh render https://example.com/roadmap.json --today 2024-3-1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr, c.Config.Render.Formats)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if !cmd.Flags().Changed("stylesheet") {
				opts.stylesheet = c.Config.Render.Stylesheet
			}
			if !cmd.Flags().Changed("scale") {
				opts.scale = c.Config.Render.Scale
			}
			opts.spinner = !c.verbose
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg, json, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.today, "today", "", "date of the today marker as YYYY-M-D (default: current date)")
	cmd.Flags().StringVar(&opts.stylesheet, "stylesheet", "", "CSS file replacing the embedded stylesheet")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results (results are still cached)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// runRender executes the pipeline for input and writes one file per format.
func (c *CLI) runRender(ctx context.Context, out, status io.Writer, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	popts := pipeline.Options{
		Ref:     input,
		Formats: opts.formats,
		Scale:   opts.scale,
		Refresh: opts.refresh,
		Logger:  logger,
	}
	if opts.today != "" {
		d, err := roadmap.ParseDate(opts.today)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDate, err, "--today")
		}
		popts.Today = &d
	}
	if opts.stylesheet != "" {
		css, err := os.ReadFile(opts.stylesheet)
		if err != nil {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "read stylesheet")
		}
		popts.Stylesheet = string(css)
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	var spin *Spinner
	if opts.spinner {
		spin = newSpinner(ctx, status, "Rendering "+input)
		spin.Start()
	}
	result, err := runner.Execute(ctx, popts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	written, err := writeArtifacts(result.Artifacts, outputPaths(opts.output, input, opts.formats))
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", input))

	title := result.Document.Title
	if title == "" {
		title = input
	}
	printSuccess(out, "Rendered %s", title)
	for _, p := range written {
		printFile(out, p)
	}
	printStats(out, result.Stats.Scene, result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes each artifact to its path and returns the paths
// written, in a stable order.
func writeArtifacts(artifacts map[string][]byte, paths map[string]string) ([]string, error) {
	formats := make([]string, 0, len(paths))
	for f := range paths {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	written := make([]string, 0, len(formats))
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			return written, errors.New(errors.ErrCodeInternal, "no %s output produced", f)
		}
		p := paths[f]
		if dir := filepath.Dir(p); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return written, fmt.Errorf("create output directory: %w", err)
			}
		}
		if err := os.WriteFile(p, data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", p, err)
		}
		written = append(written, p)
	}
	return written, nil
}
