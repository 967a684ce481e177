package sink

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/clockblocks/pkg/errors"
	"github.com/matzehuels/clockblocks/pkg/theme"
)

// ansi16 holds the standard RGB values for the first 16 ANSI colors.
var ansi16 = [16]string{
	"#000000", "#aa0000", "#00aa00", "#aa5500",
	"#0000aa", "#aa00aa", "#00aaaa", "#aaaaaa",
	"#555555", "#ff5555", "#55ff55", "#ffff55",
	"#5555ff", "#ff55ff", "#55ffff", "#ffffff",
}

// ParseColor resolves a style reference to an RGB color.
func ParseColor(ref theme.StyleRef) (colorful.Color, error) {
	s := strings.TrimSpace(string(ref))
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "style %q is not a hex color", s)
		}
		return c, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return colorful.Color{}, errors.New(errors.ErrCodeInvalidTheme, "style %q is neither a hex color nor an ANSI index", s)
	}
	return ansiColor(n), nil
}

// ansiColor maps an xterm-256 palette index to RGB.
func ansiColor(n int) colorful.Color {
	switch {
	case n < 16:
		c, _ := colorful.Hex(ansi16[n])
		return c
	case n < 232:
		n -= 16
		level := func(v int) float64 {
			if v == 0 {
				return 0
			}
			return float64(55+40*v) / 255
		}
		return colorful.Color{R: level(n / 36), G: level(n / 6 % 6), B: level(n % 6)}
	default:
		g := float64(8+10*(n-232)) / 255
		return colorful.Color{R: g, G: g, B: g}
	}
}

// paint is the resolved coloring for one block.
type paint struct {
	fill, stroke, text colorful.Color
}

func newPaint(ref theme.StyleRef) (paint, error) {
	fill, err := ParseColor(ref)
	if err != nil {
		return paint{}, err
	}
	black := colorful.Color{}
	white := colorful.Color{R: 1, G: 1, B: 1}
	text := white
	if l, _, _ := fill.Lab(); l > 0.6 {
		text = colorful.Color{R: 0.13, G: 0.13, B: 0.13}
	}
	return paint{
		fill:   fill,
		stroke: fill.BlendLab(black, 0.3).Clamped(),
		text:   text,
	}, nil
}

func hex(c colorful.Color) string { return c.Clamped().Hex() }

