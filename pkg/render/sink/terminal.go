package sink

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/clockblocks/pkg/errors"
	"github.com/matzehuels/clockblocks/pkg/session"
)

// Default terminal grid size in cells.
const (
	DefaultCols = 60
	DefaultRows = 12
)

const (
	cellFull  = "█"
	cellEmpty = "░"
)

// TerminalOption configures terminal rendering.
type TerminalOption func(*termRenderer)

type termRenderer struct {
	cols, rows int
	legend     bool
}

// WithGrid sets the drawing size in character cells.
func WithGrid(cols, rows int) TerminalOption {
	return func(r *termRenderer) { r.cols, r.rows = cols, rows }
}

// WithLegend appends one line per block with its name, value and style.
func WithLegend() TerminalOption { return func(r *termRenderer) { r.legend = true } }

// RenderTerminal draws the frame as rows of block characters. Each cell
// takes the style of the block covering its center; cells no block covers
// are drawn dim. Styles are passed to lipgloss as-is, so both hex colors and
// ANSI indices work.
func RenderTerminal(f *session.Frame, opts ...TerminalOption) ([]byte, error) {
	r := termRenderer{cols: DefaultCols, rows: DefaultRows}
	for _, opt := range opts {
		opt(&r)
	}
	if f == nil {
		return nil, errNoFrame()
	}
	if r.cols <= 0 || r.rows <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "terminal grid must be positive, got %dx%d", r.cols, r.rows)
	}

	styles := make([]lipgloss.Style, len(f.Blocks))
	for i, b := range f.Blocks {
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(string(b.Style)))
	}
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var out strings.Builder
	cw := f.Canvas.Width / float64(r.cols)
	ch := f.Canvas.Height / float64(r.rows)
	for row := 0; row < r.rows; row++ {
		y := f.Canvas.Y + (float64(row)+0.5)*ch
		// Runs of the same block are rendered with one style call.
		run, runLen := -2, 0
		flush := func() {
			if runLen == 0 {
				return
			}
			if run < 0 {
				out.WriteString(dim.Render(strings.Repeat(cellEmpty, runLen)))
			} else {
				out.WriteString(styles[run].Render(strings.Repeat(cellFull, runLen)))
			}
		}
		for col := 0; col < r.cols; col++ {
			x := f.Canvas.X + (float64(col)+0.5)*cw
			idx := blockAt(f, x, y)
			if idx != run {
				flush()
				run, runLen = idx, 0
			}
			runLen++
		}
		flush()
		out.WriteByte('\n')
	}

	if r.legend {
		for _, b := range f.Blocks {
			swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(string(b.Style))).Render(cellFull + cellFull)
			fmt.Fprintf(&out, "%s %-10s %8s  %s\n", swatch, b.Name, formatValue(b.Value), b.Style)
		}
	}
	return []byte(out.String()), nil
}

// blockAt returns the index of the block containing (x, y), or -1.
func blockAt(f *session.Frame, x, y float64) int {
	for i, b := range f.Blocks {
		if b.Size > 0 && x >= b.Left() && x < b.Right() && y >= b.Top() && y < b.Bottom() {
			return i
		}
	}
	return -1
}
