package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/clockblocks/pkg/session"
	"github.com/matzehuels/clockblocks/pkg/theme"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels      bool
	strokeWidth float64
	background  string
}

// WithLabels draws each block's name and value when it fits.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithStrokeWidth sets the outline width. Zero disables outlines.
func WithStrokeWidth(w float64) SVGOption { return func(r *svgRenderer) { r.strokeWidth = w } }

// WithBackground fills the canvas before drawing blocks. The color is a
// style reference: hex or an ANSI index.
func WithBackground(ref string) SVGOption { return func(r *svgRenderer) { r.background = ref } }

// RenderSVG draws the frame as a standalone SVG document. Blocks are drawn
// in frame order; zero-area blocks are skipped.
//
// It fails with INVALID_THEME when a block's style is not a color.
func RenderSVG(f *session.Frame, opts ...SVGOption) ([]byte, error) {
	r := svgRenderer{strokeWidth: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if f == nil {
		return nil, errNoFrame()
	}

	w, h := f.Canvas.Width, f.Canvas.Height
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.Canvas.X, f.Canvas.Y, w, h, w, h)
	fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(f.Theme))
	if r.background != "" {
		bg, err := ParseColor(theme.StyleRef(r.background))
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		fmt.Fprintf(&buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			f.Canvas.X, f.Canvas.Y, w, h, hex(bg))
	}

	for i, b := range f.Blocks {
		if b.Size <= 0 {
			continue
		}
		p, err := newPaint(b.Style)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		r.renderBlock(&buf, i, b, p)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func (r *svgRenderer) renderBlock(buf *bytes.Buffer, i int, b session.StyledBlock, p paint) {
	fmt.Fprintf(buf, `  <rect id="block-%d" class="block block-%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"`,
		i, b.Role, b.Pos.X, b.Pos.Y, b.Width, b.Height, hex(p.fill))
	if r.strokeWidth > 0 {
		fmt.Fprintf(buf, ` stroke="%s" stroke-width="%.1f"`, hex(p.stroke), r.strokeWidth)
	}
	buf.WriteString("/>\n")

	if !r.labels {
		return
	}
	label := b.Name + " " + formatValue(b.Value)
	size := fontSizeFor(b.Width, b.Height, len(label))
	if size == 0 {
		return
	}
	fmt.Fprintf(buf, `  <text class="block-text" x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		b.CenterX(), b.CenterY(), size, hex(p.text), escapeXML(label))
}
