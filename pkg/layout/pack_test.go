package layout

import (
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/clockblocks/pkg/errors"
)

const tol = 1e-9

func near(a, b, scale float64) bool {
	return math.Abs(a-b) <= tol*math.Max(1, scale)
}

var weightSets = [][]float64{
	{1, 3},
	{7, 42},
	{0, 5, 0, 2},
	{5, 0},
	{1, 1, 1, 1, 1, 1, 1},
	{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9},
	{1e-6, 1e6},
	{23, 59, 59},
}

var frames = []Rect{
	Canvas(400, 100),
	Canvas(1, 1),
	{X: 10, Y: -5, Width: 333.3, Height: 77.7},
}

func forEachCase(t *testing.T, fn func(t *testing.T, axis Axis, weights []float64, frame Rect)) {
	for _, axis := range Axes() {
		for _, ws := range weightSets {
			for _, f := range frames {
				name := fmt.Sprintf("%s/%v/%gx%g", axis, ws, f.Width, f.Height)
				t.Run(name, func(t *testing.T) { fn(t, axis, ws, f) })
			}
		}
	}
}

func TestPackTiling(t *testing.T) {
	forEachCase(t, func(t *testing.T, axis Axis, weights []float64, frame Rect) {
		blocks, err := Pack(weights, frame, WithAxis(axis))
		if err != nil {
			t.Fatalf("Pack() error: %v", err)
		}
		if len(blocks) != len(weights) {
			t.Fatalf("len = %d, want %d", len(blocks), len(weights))
		}
		if got := blocks.TotalSize(); !near(got, frame.Area(), frame.Area()) {
			t.Errorf("TotalSize() = %v, want %v", got, frame.Area())
		}
		for i, b := range blocks {
			if b.Width < 0 || b.Height < 0 {
				t.Errorf("block %d has negative extent: %+v", i, b)
			}
			if b.Left() < frame.X-tol || b.Top() < frame.Y-tol ||
				b.Right() > frame.Right()+tol*frame.Right() || b.Bottom() > frame.Bottom()+tol*frame.Bottom() {
				t.Errorf("block %d %+v escapes frame %+v", i, b, frame)
			}
		}

		var lengths float64
		switch axis {
		case AxisHorizontal:
			for _, b := range blocks {
				lengths += b.Width
			}
			if !near(lengths, frame.Width, frame.Width) {
				t.Errorf("sum of widths = %v, want %v", lengths, frame.Width)
			}
		case AxisVertical:
			for _, b := range blocks {
				lengths += b.Height
			}
			if !near(lengths, frame.Height, frame.Height) {
				t.Errorf("sum of heights = %v, want %v", lengths, frame.Height)
			}
		}
	})
}

func TestPackNoOverlap(t *testing.T) {
	forEachCase(t, func(t *testing.T, axis Axis, weights []float64, frame Rect) {
		blocks, err := Pack(weights, frame, WithAxis(axis))
		if err != nil {
			t.Fatalf("Pack() error: %v", err)
		}
		for i := range blocks {
			for j := i + 1; j < len(blocks); j++ {
				if a := blocks[i].Intersection(blocks[j]); a > tol*math.Max(1, frame.Area()) {
					t.Errorf("blocks %d and %d overlap by %v", i, j, a)
				}
			}
		}
	})
}

func TestPackProportional(t *testing.T) {
	forEachCase(t, func(t *testing.T, axis Axis, weights []float64, frame Rect) {
		blocks, err := Pack(weights, frame, WithAxis(axis))
		if err != nil {
			t.Fatalf("Pack() error: %v", err)
		}
		var total float64
		for _, w := range weights {
			total += w
		}
		for i, b := range blocks {
			if got, want := b.Size/frame.Area(), weights[i]/total; !near(got, want, 1) {
				t.Errorf("block %d share = %v, want %v", i, got, want)
			}
			if b.Value != weights[i] {
				t.Errorf("block %d Value = %v, want %v", i, b.Value, weights[i])
			}
		}
	})
}

func TestPackDeterministic(t *testing.T) {
	forEachCase(t, func(t *testing.T, axis Axis, weights []float64, frame Rect) {
		a, err := Pack(weights, frame, WithAxis(axis))
		if err != nil {
			t.Fatalf("Pack() error: %v", err)
		}
		b, _ := Pack(weights, frame, WithAxis(axis))
		for i := range a {
			for _, pair := range [][2]float64{
				{a[i].Size, b[i].Size},
				{a[i].Pos.X, b[i].Pos.X},
				{a[i].Pos.Y, b[i].Pos.Y},
				{a[i].Width, b[i].Width},
				{a[i].Height, b[i].Height},
			} {
				if math.Float64bits(pair[0]) != math.Float64bits(pair[1]) {
					t.Fatalf("block %d differs between runs: %+v vs %+v", i, a[i], b[i])
				}
			}
		}
	})
}

func TestPackHourMinute(t *testing.T) {
	blocks, err := Pack([]float64{1, 3}, Canvas(400, 100))
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	want := Blocks{
		{Value: 1, Size: 10000, Pos: Point{X: 0, Y: 0}, Width: 100, Height: 100},
		{Value: 3, Size: 30000, Pos: Point{X: 100, Y: 0}, Width: 300, Height: 100},
	}
	for i := range want {
		if blocks[i] != want[i] {
			t.Errorf("block %d = %+v, want %+v", i, blocks[i], want[i])
		}
	}
}

func TestPackVertical(t *testing.T) {
	blocks, err := Pack([]float64{1, 3}, Canvas(100, 400), WithAxis(AxisVertical))
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	if blocks[1].Pos != (Point{X: 0, Y: 100}) || blocks[1].Height != 300 || blocks[1].Width != 100 {
		t.Errorf("second block = %+v, want pos (0,100) 100x300", blocks[1])
	}
}

func TestPackZeroWeight(t *testing.T) {
	blocks, err := Pack([]float64{2, 0, 2}, Rect{X: 10, Y: 20, Width: 400, Height: 100})
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	mid := blocks[1]
	if mid.Width != 0 || mid.Size != 0 {
		t.Errorf("zero weight block = %+v, want zero width and size", mid)
	}
	if mid.Pos != (Point{X: 210, Y: 20}) {
		t.Errorf("zero weight block pos = %+v, want (210,20)", mid.Pos)
	}
	if blocks[2].Pos.X != 210 {
		t.Errorf("block after zero weight starts at %v, want 210", blocks[2].Pos.X)
	}
}

func TestPackLastEdgePinned(t *testing.T) {
	weights := make([]float64, 10)
	for i := range weights {
		weights[i] = 0.1
	}
	for _, axis := range []Axis{AxisHorizontal, AxisVertical} {
		blocks, err := Pack(weights, Canvas(1, 1), WithAxis(axis))
		if err != nil {
			t.Fatalf("Pack() error: %v", err)
		}
		last := blocks[len(blocks)-1]
		if math.Abs(last.Right()-1) > 1e-15 || math.Abs(last.Bottom()-1) > 1e-15 {
			t.Errorf("%s: last block ends at (%v,%v), want (1,1)", axis, last.Right(), last.Bottom())
		}
		for i := 1; i < len(blocks); i++ {
			prev, cur := blocks[i-1], blocks[i]
			gap := cur.Left() - prev.Right()
			if axis == AxisVertical {
				gap = cur.Top() - prev.Bottom()
			}
			if math.Abs(gap) > 1e-15 {
				t.Errorf("%s: gap of %v before block %d", axis, gap, i)
			}
		}
	}
}

func TestPackAlternate(t *testing.T) {
	blocks, err := Pack([]float64{1, 1, 1, 1}, Canvas(400, 400), WithAxis(AxisAlternate))
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	want := []Rect{
		{X: 0, Y: 0, Width: 100, Height: 400},
		{X: 100, Y: 0, Width: 300, Height: 400.0 / 3},
		{X: 100, Y: 400.0 / 3, Width: 150, Height: 800.0 / 3},
		{X: 250, Y: 400.0 / 3, Width: 150, Height: 800.0 / 3},
	}
	for i, w := range want {
		got := blocks[i].Rect()
		if !near(got.X, w.X, 400) || !near(got.Y, w.Y, 400) ||
			!near(got.Width, w.Width, 400) || !near(got.Height, w.Height, 400) {
			t.Errorf("block %d = %+v, want %+v", i, got, w)
		}
		if !near(blocks[i].Size, 40000, 40000) {
			t.Errorf("block %d size = %v, want 40000", i, blocks[i].Size)
		}
	}
}

func TestPackZeroCanvas(t *testing.T) {
	blocks, err := Pack([]float64{1, 2}, Canvas(0, 0))
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	for i, b := range blocks {
		if b.Size != 0 {
			t.Errorf("block %d size = %v, want 0", i, b.Size)
		}
	}
}

func TestPackErrors(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		frame   Rect
		opts    []Option
		code    errors.Code
	}{
		{"no weights", nil, Canvas(400, 100), nil, errors.ErrCodeInvalidInput},
		{"zero total", []float64{0, 0}, Canvas(400, 100), nil, errors.ErrCodeInvalidInput},
		{"negative weight", []float64{1, -2}, Canvas(400, 100), nil, errors.ErrCodeInvalidInput},
		{"nan weight", []float64{math.NaN()}, Canvas(400, 100), nil, errors.ErrCodeInvalidInput},
		{"negative width", []float64{1}, Canvas(-1, 100), nil, errors.ErrCodeInvalidInput},
		{"infinite height", []float64{1}, Canvas(10, math.Inf(1)), nil, errors.ErrCodeInvalidInput},
		{"nan origin", []float64{1}, Rect{X: math.NaN(), Width: 1, Height: 1}, nil, errors.ErrCodeInvalidInput},
		{"bad axis", []float64{1}, Canvas(1, 1), []Option{WithAxis(Axis(9))}, errors.ErrCodeInvalidAxis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks, err := Pack(tt.weights, tt.frame, tt.opts...)
			if err == nil {
				t.Fatalf("Pack() = %v, want error", blocks)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Pack() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestParseAxis(t *testing.T) {
	tests := []struct {
		in      string
		want    Axis
		wantErr bool
	}{
		{"horizontal", AxisHorizontal, false},
		{"", AxisHorizontal, false},
		{"V", AxisVertical, false},
		{" alternate ", AxisAlternate, false},
		{"diagonal", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseAxis(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAxis(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidAxis) {
			t.Errorf("ParseAxis(%q) code = %v, want INVALID_AXIS", tt.in, errors.GetCode(err))
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseAxis(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAxisText(t *testing.T) {
	for _, a := range Axes() {
		text, err := a.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error: %v", a, err)
		}
		var back Axis
		if err := back.UnmarshalText(text); err != nil || back != a {
			t.Errorf("UnmarshalText(%q) = %v, %v; want %v", text, back, err, a)
		}
	}
	if _, err := Axis(5).MarshalText(); err == nil {
		t.Error("MarshalText should reject an invalid axis")
	}
}
