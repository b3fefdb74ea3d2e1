package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/highweigh/pkg/core/render"
	"github.com/matzehuels/highweigh/pkg/core/scene"
	"github.com/matzehuels/highweigh/pkg/core/sink"
	"github.com/matzehuels/highweigh/pkg/roadmap"
)

// RenderScene lays out doc.
func RenderScene(doc *roadmap.Document, opts Options) (*scene.Scene, error) {
	sceneOpts := []scene.Option{scene.WithLogger(opts.Logger)}
	if opts.Today != nil {
		sceneOpts = append(sceneOpts, scene.WithToday(*opts.Today))
	}
	return scene.Render(doc, sceneOpts...)
}

// Serialize writes s in every requested format.
func Serialize(ctx context.Context, s *scene.Scene, opts Options) (map[string][]byte, error) {
	var svgOpts []sink.SVGOption
	if opts.Stylesheet != "" {
		svgOpts = append(svgOpts, sink.WithStylesheet(opts.Stylesheet))
	}
	svg := sink.RenderSVG(s, svgOpts...)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svg
		case FormatJSON:
			data, err = sink.RenderJSON(s)
		case FormatPNG:
			// rsvg-convert needs explicit dimensions to scale.
			data, err = render.ToPNG(ctx, sink.RenderSVG(s, append(svgOpts, sink.WithFixedSize())...), opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(ctx, sink.RenderSVG(s, append(svgOpts, sink.WithFixedSize())...))
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
