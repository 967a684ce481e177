package sink

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/clockblocks/pkg/errors"
	"github.com/matzehuels/clockblocks/pkg/layout"
	"github.com/matzehuels/clockblocks/pkg/session"
	"github.com/matzehuels/clockblocks/pkg/theme"
	"github.com/matzehuels/clockblocks/pkg/values"
)

func testFrame(t *testing.T, themeName string, vals ...values.Value) *session.Frame {
	t.Helper()
	if len(vals) == 0 {
		vals = []values.Value{values.New("hour", 1), values.New("minute", 3)}
	}
	f, err := session.Compute(session.Input{Values: vals, Width: 400, Height: 100, Theme: themeName}, theme.Builtin(), layout.AxisHorizontal)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	return f
}

type svgDoc struct {
	XMLName xml.Name  `xml:"svg"`
	ViewBox string    `xml:"viewBox,attr"`
	Rects   []svgRect `xml:"rect"`
	Texts   []string  `xml:"text"`
}

type svgRect struct {
	ID    string `xml:"id,attr"`
	Fill  string `xml:"fill,attr"`
	Width string `xml:"width,attr"`
}

func TestRenderSVG(t *testing.T) {
	f := testFrame(t, theme.DefaultName)
	data, err := RenderSVG(f, WithLabels())
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}

	var doc svgDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not well-formed XML: %v\n%s", err, data)
	}
	if doc.ViewBox != "0.0 0.0 400.0 100.0" {
		t.Errorf("viewBox = %q", doc.ViewBox)
	}
	if len(doc.Rects) != 2 {
		t.Fatalf("rects = %d, want 2", len(doc.Rects))
	}
	if doc.Rects[0].Fill != "#3b6ea5" || doc.Rects[1].Fill != "#8fb8de" {
		t.Errorf("fills = %q, %q", doc.Rects[0].Fill, doc.Rects[1].Fill)
	}
	if doc.Rects[1].Width != "300.00" {
		t.Errorf("minute width = %q, want 300.00", doc.Rects[1].Width)
	}
	if len(doc.Texts) != 2 || doc.Texts[0] != "hour 1" {
		t.Errorf("labels = %q", doc.Texts)
	}
}

func TestRenderSVGSkipsEmptyBlocks(t *testing.T) {
	f := testFrame(t, theme.DefaultName, values.New("hour", 2), values.New("minute", 0), values.New("both", 2))
	data, err := RenderSVG(f, WithStrokeWidth(0), WithBackground("#ffffff"))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	var doc svgDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("xml: %v", err)
	}
	// background + two non-empty blocks
	if len(doc.Rects) != 3 {
		t.Errorf("rects = %d, want 3", len(doc.Rects))
	}
	if bytes.Contains(data, []byte("stroke=")) {
		t.Error("stroke width 0 should omit outlines")
	}
}

func TestRenderSVGANSIStyles(t *testing.T) {
	data, err := RenderSVG(testFrame(t, "terminal"))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !bytes.Contains(data, []byte(`fill="#5555ff"`)) {
		t.Errorf("ANSI 12 should render as #5555ff:\n%s", data)
	}
}

func TestRenderSVGBackground(t *testing.T) {
	data, err := RenderSVG(testFrame(t, theme.DefaultName), WithBackground("15"))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !bytes.Contains(data, []byte(`fill="#ffffff"/>`)) {
		t.Errorf("ANSI 15 background should render as #ffffff:\n%s", data)
	}

	if _, err := RenderSVG(testFrame(t, theme.DefaultName), WithBackground("paper")); !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Errorf("RenderSVG(bad background) error = %v, want INVALID_THEME", err)
	}
}

func TestRenderBadStyle(t *testing.T) {
	f := testFrame(t, theme.DefaultName)
	f.Blocks[0].Style = "not-a-color"

	if _, err := RenderSVG(f); !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Errorf("RenderSVG() error = %v, want INVALID_THEME", err)
	}
	if _, err := RenderPNG(f); !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Errorf("RenderPNG() error = %v, want INVALID_THEME", err)
	}
	// JSON passes styles through untouched.
	if _, err := RenderJSON(f); err != nil {
		t.Errorf("RenderJSON() error: %v", err)
	}
}

func TestRenderNilFrame(t *testing.T) {
	if _, err := RenderSVG(nil); !errors.IsInvalidInput(err) {
		t.Errorf("RenderSVG(nil) error = %v", err)
	}
	if _, err := RenderPNG(nil); !errors.IsInvalidInput(err) {
		t.Errorf("RenderPNG(nil) error = %v", err)
	}
	if _, err := RenderJSON(nil); !errors.IsInvalidInput(err) {
		t.Errorf("RenderJSON(nil) error = %v", err)
	}
	if _, err := RenderTerminal(nil); !errors.IsInvalidInput(err) {
		t.Errorf("RenderTerminal(nil) error = %v", err)
	}
}

func TestRenderPNG(t *testing.T) {
	f := testFrame(t, "mono")
	data, err := RenderPNG(f, WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 100 {
		t.Fatalf("size = %dx%d, want 400x100", b.Dx(), b.Dy())
	}

	tests := []struct {
		x, y int
		want uint8
	}{
		{50, 50, 0x22},  // hour block, mono #222222
		{250, 50, 0x77}, // minute block, mono #777777
	}
	for _, tt := range tests {
		r, g, b, _ := img.At(tt.x, tt.y).RGBA()
		for _, c := range []uint32{r, g, b} {
			if got := uint8(c >> 8); got < tt.want-2 || got > tt.want+2 {
				t.Errorf("pixel (%d,%d) = %02x%02x%02x, want %02x", tt.x, tt.y, r>>8, g>>8, b>>8, tt.want)
				break
			}
		}
	}
}

func TestRenderPNGScale(t *testing.T) {
	data, err := RenderPNG(testFrame(t, theme.DefaultName), WithScale(0.5), WithPNGStrokeWidth(0))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 50 {
		t.Errorf("size = %dx%d, want 200x50", b.Dx(), b.Dy())
	}

	if _, err := RenderPNG(testFrame(t, theme.DefaultName), WithScale(0)); !errors.IsInvalidInput(err) {
		t.Errorf("WithScale(0) error = %v, want INVALID_INPUT", err)
	}
}

func TestRenderPNGRejectsHugeCanvas(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
	}{
		{"pixel count overflows int", 1518500250, 1518500250},
		{"width beyond int range", 1e300, 1},
		{"width beyond int range, zero height", 1e300, 0},
		{"just over the limit", 8193, 8192},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals := []values.Value{values.New("hour", 1), values.New("minute", 3)}
			f, err := session.Compute(session.Input{Values: vals, Width: tt.width, Height: tt.height, Theme: theme.DefaultName}, theme.Builtin(), layout.AxisHorizontal)
			if err != nil {
				t.Fatalf("Compute() error: %v", err)
			}
			if _, err := RenderPNG(f, WithScale(1)); !errors.IsInvalidInput(err) {
				t.Errorf("RenderPNG(%gx%g) error = %v, want INVALID_INPUT", tt.width, tt.height, err)
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	f := testFrame(t, "ocean")
	data, err := RenderJSON(f, WithJSONSession("abc"))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Session != "abc" || out.Theme != "ocean" || out.Axis != "horizontal" {
		t.Errorf("header = %+v", out)
	}
	if len(out.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(out.Blocks))
	}
	minute := out.Blocks[1]
	if minute.Name != "minute" || minute.Role != "minute" || minute.X != 100 || minute.Size != 30000 || minute.Style != "#3d7ea6" {
		t.Errorf("minute block = %+v", minute)
	}

	compact, _ := RenderJSON(f, WithJSONCompact())
	if bytes.Contains(compact, []byte("\n")) {
		t.Error("compact output should be a single line")
	}
}

func TestRenderTerminal(t *testing.T) {
	f := testFrame(t, "terminal")
	data, err := RenderTerminal(f, WithGrid(40, 4), WithLegend())
	if err != nil {
		t.Fatalf("RenderTerminal() error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 4+2 {
		t.Fatalf("lines = %d, want 6:\n%s", len(lines), data)
	}
	for i, line := range lines[:4] {
		if n := strings.Count(line, cellFull); n != 40 {
			t.Errorf("row %d has %d filled cells, want 40", i, n)
		}
	}
	if !strings.Contains(lines[4], "hour") || !strings.Contains(lines[5], "minute") {
		t.Errorf("legend = %q", lines[4:])
	}

	if _, err := RenderTerminal(f, WithGrid(0, 4)); !errors.IsInvalidInput(err) {
		t.Errorf("WithGrid(0, 4) error = %v, want INVALID_INPUT", err)
	}
}

func TestBlockAt(t *testing.T) {
	f := testFrame(t, theme.DefaultName)
	tests := []struct {
		x, y float64
		want int
	}{
		{50, 50, 0},
		{100, 50, 1},
		{399, 99, 1},
		{400, 50, -1},
		{50, -1, -1},
	}
	for _, tt := range tests {
		if got := blockAt(f, tt.x, tt.y); got != tt.want {
			t.Errorf("blockAt(%v, %v) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		ref     theme.StyleRef
		want    string
		wantErr bool
	}{
		{"#3b6ea5", "#3b6ea5", false},
		{"#fff", "#ffffff", false},
		{" 9 ", "#ff5555", false},
		{"16", "#000000", false},
		{"21", "#0000ff", false},
		{"255", "#eeeeee", false},
		{"256", "", true},
		{"-1", "", true},
		{"blue", "", true},
		{"#zzzzzz", "", true},
	}
	for _, tt := range tests {
		c, err := ParseColor(tt.ref)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			continue
		}
		if err == nil && hex(c) != tt.want {
			t.Errorf("ParseColor(%q) = %s, want %s", tt.ref, hex(c), tt.want)
		}
	}
}

func TestFontSizeFor(t *testing.T) {
	if got := fontSizeFor(400, 100, 6); got != fontSizeMax {
		t.Errorf("roomy box = %v, want %v", got, fontSizeMax)
	}
	if got := fontSizeFor(5, 5, 6); got != 0 {
		t.Errorf("tiny box = %v, want 0", got)
	}
}
