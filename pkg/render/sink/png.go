package sink

import (
	"bytes"
	"fmt"
	"math"

	"git.sr.ht/~sbinet/gg"

	"github.com/matzehuels/clockblocks/pkg/errors"
	"github.com/matzehuels/clockblocks/pkg/session"
)

// DefaultScale is the PNG pixel density used when none is given.
const DefaultScale = 2.0

// maxPNGPixels bounds the raster size so a huge canvas cannot exhaust memory.
const maxPNGPixels = 64 << 20

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale       float64
	strokeWidth float64
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGStrokeWidth sets the outline width in canvas units.
func WithPNGStrokeWidth(w float64) PNGOption {
	return func(r *pngRenderer) { r.strokeWidth = w }
}

// RenderPNG rasterizes the frame. The image is Canvas.Width*scale by
// Canvas.Height*scale pixels, rounded up and at least 1x1.
func RenderPNG(f *session.Frame, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultScale, strokeWidth: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if f == nil {
		return nil, errNoFrame()
	}
	if !(r.scale > 0) || math.IsInf(r.scale, 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", r.scale)
	}

	// Sized in float64 so a huge canvas is rejected before any int conversion.
	fw := max(1, math.Ceil(f.Canvas.Width*r.scale))
	fh := max(1, math.Ceil(f.Canvas.Height*r.scale))
	if fw*fh > maxPNGPixels {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png would be %.0fx%.0f pixels, limit is %d", fw, fh, maxPNGPixels)
	}
	pw, ph := int(fw), int(fh)

	dc := gg.NewContext(pw, ph)
	dc.Scale(r.scale, r.scale)
	dc.Translate(-f.Canvas.X, -f.Canvas.Y)

	for i, b := range f.Blocks {
		if b.Size <= 0 {
			continue
		}
		p, err := newPaint(b.Style)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		dc.DrawRectangle(b.Pos.X, b.Pos.Y, b.Width, b.Height)
		dc.SetColor(p.fill)
		if r.strokeWidth > 0 {
			dc.FillPreserve()
			dc.SetColor(p.stroke)
			dc.SetLineWidth(r.strokeWidth)
			dc.Stroke()
		} else {
			dc.Fill()
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
