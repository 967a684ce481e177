package layout

import (
	"math"
	"strings"

	"github.com/matzehuels/clockblocks/pkg/errors"
	"github.com/matzehuels/clockblocks/pkg/values"
)

// Axis selects the slicing direction.
type Axis int

const (
	// AxisHorizontal places blocks left to right across the full height.
	AxisHorizontal Axis = iota
	// AxisVertical stacks blocks top to bottom across the full width.
	AxisVertical
	// AxisAlternate slices and dices: even blocks take a strip from the left
	// of the remaining space, odd blocks a strip from its top.
	AxisAlternate
)

var axisNames = [...]string{"horizontal", "vertical", "alternate"}

// Axes returns every axis in declaration order.
func Axes() []Axis { return []Axis{AxisHorizontal, AxisVertical, AxisAlternate} }

// String returns the axis name, or "unknown" for an invalid axis.
func (a Axis) String() string {
	if !a.Valid() {
		return "unknown"
	}
	return axisNames[a]
}

// Valid reports whether a is one of the declared axes.
func (a Axis) Valid() bool { return a >= AxisHorizontal && a <= AxisAlternate }

// ParseAxis accepts an axis name or its first letter.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h", "":
		return AxisHorizontal, nil
	case "vertical", "v":
		return AxisVertical, nil
	case "alternate", "a":
		return AxisAlternate, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidAxis, "unknown axis %q (horizontal, vertical, alternate)", s)
}

// MarshalText encodes the axis by name.
func (a Axis) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidAxis, "invalid axis %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText accepts anything [ParseAxis] does.
func (a *Axis) UnmarshalText(text []byte) error {
	v, err := ParseAxis(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Option configures Pack.
type Option func(*packer)

type packer struct {
	axis Axis
}

// WithAxis sets the slicing direction. The default is AxisHorizontal.
func WithAxis(a Axis) Option { return func(p *packer) { p.axis = a } }

// Pack partitions frame into len(weights) blocks with areas proportional
// to weights. Blocks are returned in input order; a zero weight yields a
// zero-length block at the running offset.
//
// It fails with INVALID_INPUT when weights are empty, negative, non-finite
// or sum to zero, or when the frame has a negative or non-finite extent,
// and with INVALID_AXIS for an unknown axis.
func Pack(weights []float64, frame Rect, opts ...Option) (Blocks, error) {
	p := packer{axis: AxisHorizontal}
	for _, opt := range opts {
		opt(&p)
	}
	if !p.axis.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidAxis, "invalid axis %d", int(p.axis))
	}
	if err := validateFrame(frame); err != nil {
		return nil, err
	}
	if err := values.Validate(weights); err != nil {
		return nil, err
	}

	total := values.Total(weights)
	switch p.axis {
	case AxisVertical:
		return packVertical(weights, total, frame), nil
	case AxisAlternate:
		return packAlternate(weights, frame), nil
	default:
		return packHorizontal(weights, total, frame), nil
	}
}

func validateFrame(r Rect) error {
	if math.IsNaN(r.X) || math.IsInf(r.X, 0) || math.IsNaN(r.Y) || math.IsInf(r.Y, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "canvas origin is not finite")
	}
	if err := errors.ValidateExtent("width", r.Width); err != nil {
		return err
	}
	return errors.ValidateExtent("height", r.Height)
}

func packHorizontal(weights []float64, total float64, r Rect) Blocks {
	edges := cutEdges(weights, total, r.X, r.Width)
	blocks := make(Blocks, len(weights))
	for i, w := range weights {
		width := edges[i+1] - edges[i]
		blocks[i] = Block{
			Value:  w,
			Size:   width * r.Height,
			Pos:    Point{X: edges[i], Y: r.Y},
			Width:  width,
			Height: r.Height,
		}
	}
	return blocks
}

func packVertical(weights []float64, total float64, r Rect) Blocks {
	edges := cutEdges(weights, total, r.Y, r.Height)
	blocks := make(Blocks, len(weights))
	for i, w := range weights {
		height := edges[i+1] - edges[i]
		blocks[i] = Block{
			Value:  w,
			Size:   r.Width * height,
			Pos:    Point{X: r.X, Y: edges[i]},
			Width:  r.Width,
			Height: height,
		}
	}
	return blocks
}

// cutEdges returns n+1 monotone edges along one axis. Edge i is
// origin + length*(prefix_i/total); the last edge is pinned to the far side.
func cutEdges(weights []float64, total, origin, length float64) []float64 {
	far := origin + length
	edges := make([]float64, len(weights)+1)
	edges[0] = origin
	var prefix float64
	for i, w := range weights {
		prefix += w
		end := origin + length*(prefix/total)
		if i == len(weights)-1 {
			end = far
		}
		edges[i+1] = clamp(end, edges[i], far)
	}
	return edges
}

// packAlternate is slice-and-dice: block i takes w_i/suffix_i of what is
// left, cutting across the width on even i and the height on odd i.
func packAlternate(weights []float64, r Rect) Blocks {
	n := len(weights)
	suffix := make([]float64, n+1)
	for i := n - 1; i >= 0; i-- {
		suffix[i] = suffix[i+1] + weights[i]
	}

	blocks := make(Blocks, n)
	rest := r
	for i, w := range weights {
		cell := rest
		if i < n-1 {
			frac := 0.0
			if suffix[i] > 0 {
				frac = clamp(w/suffix[i], 0, 1)
			}
			if i%2 == 0 {
				far := rest.Right()
				cut := clamp(rest.X+rest.Width*frac, rest.X, far)
				cell.Width = cut - rest.X
				rest.X, rest.Width = cut, far-cut
			} else {
				far := rest.Bottom()
				cut := clamp(rest.Y+rest.Height*frac, rest.Y, far)
				cell.Height = cut - rest.Y
				rest.Y, rest.Height = cut, far-cut
			}
		}
		blocks[i] = Block{
			Value:  w,
			Size:   cell.Area(),
			Pos:    Point{X: cell.X, Y: cell.Y},
			Width:  cell.Width,
			Height: cell.Height,
		}
	}
	return blocks
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
