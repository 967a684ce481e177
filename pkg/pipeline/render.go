package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/clockblocks/pkg/errors"
	"github.com/matzehuels/clockblocks/pkg/observability"
	"github.com/matzehuels/clockblocks/pkg/render/sink"
	"github.com/matzehuels/clockblocks/pkg/session"
)

// Render generates output artifacts in the requested formats. Formats are
// rendered concurrently; the first failure cancels the rest.
func Render(ctx context.Context, f *session.Frame, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	start := time.Now()
	observability.Render().OnRenderStart(ctx, opts.Formats)

	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(opts.Formats))

	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		format := format
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := renderFormat(f, format, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	observability.Render().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

// renderFormat renders a single format.
func renderFormat(f *session.Frame, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(f, buildSVGOptions(opts)...)
	case FormatPNG:
		return sink.RenderPNG(f, sink.WithScale(opts.Scale), sink.WithPNGStrokeWidth(strokeWidth(opts)))
	case FormatJSON:
		return sink.RenderJSON(f, buildJSONOptions(opts)...)
	case FormatTerm:
		termOpts := []sink.TerminalOption{sink.WithGrid(opts.Cols, opts.Rows)}
		if opts.Legend {
			termOpts = append(termOpts, sink.WithLegend())
		}
		return sink.RenderTerminal(f, termOpts...)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithStrokeWidth(strokeWidth(opts))}
	if opts.Labels {
		svgOpts = append(svgOpts, sink.WithLabels())
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	return svgOpts
}

func buildJSONOptions(opts Options) []sink.JSONOption {
	var jsonOpts []sink.JSONOption
	if opts.Compact {
		jsonOpts = append(jsonOpts, sink.WithJSONCompact())
	}
	if opts.SessionID != "" {
		jsonOpts = append(jsonOpts, sink.WithJSONSession(opts.SessionID))
	}
	return jsonOpts
}

func strokeWidth(opts Options) float64 {
	if opts.NoStroke {
		return 0
	}
	return opts.Stroke
}
