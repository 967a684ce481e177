// Package sink turns a computed [session.Frame] into output bytes.
//
// # Formats
//
//   - [RenderSVG]: a standalone SVG document, one <rect> per block.
//   - [RenderPNG]: a raster image drawn with gg.
//   - [RenderJSON]: the frame as pretty-printed JSON for external tools.
//   - [RenderTerminal]: a block-character drawing styled with lipgloss.
//
// Every sink is a pure function of the frame and its options; none of them
// modify the frame, so they are safe to run concurrently on the same one.
//
// # Colors
//
// A block's style is a [theme.StyleRef]. Vector and raster sinks accept
// "#rgb" or "#rrggbb" hex values and ANSI palette indices ("0".."255"); the
// terminal sink hands the reference to lipgloss unchanged. Outline and label
// colors are derived from the fill with go-colorful.
//
// Basic usage:
//
//	svg, err := sink.RenderSVG(frame, sink.WithLabels())
//	png, err := sink.RenderPNG(frame, sink.WithScale(2))
//
// [session.Frame]: github.com/matzehuels/clockblocks/pkg/session.Frame
// [theme.StyleRef]: github.com/matzehuels/clockblocks/pkg/theme.StyleRef
package sink
