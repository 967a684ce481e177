package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clockblocks/pkg/errors"
	"github.com/matzehuels/clockblocks/pkg/pipeline"
	"github.com/matzehuels/clockblocks/pkg/theme"
	"github.com/matzehuels/clockblocks/pkg/values"
)

// renderFlags holds the flags shared by render and watch.
type renderFlags struct {
	values      string
	preset      string
	at          string
	width       float64
	height      float64
	axis        string
	theme       string
	themes      string
	formats     string
	output      string
	scale       float64
	labels      bool
	legend      bool
	placeholder bool
	cols        int
	rows        int
	stroke      float64
	noStroke    bool
	background  string
	compact     bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.values, "values", "", "explicit readings, e.g. hour=7,minute=42 or elapsed@minute=12")
	fl.StringVar(&f.preset, "preset", "", "clock preset: clock (default), hour, day")
	fl.StringVar(&f.at, "at", "", "evaluate the preset at HH:MM[:SS] instead of now")
	fl.Float64Var(&f.width, "width", pipeline.DefaultWidth, "canvas width (0 means the default)")
	fl.Float64Var(&f.height, "height", pipeline.DefaultHeight, "canvas height (0 means the default)")
	fl.StringVar(&f.axis, "axis", pipeline.DefaultAxis, "packing axis: horizontal, vertical, alternate")
	fl.StringVar(&f.theme, "theme", pipeline.DefaultTheme, "color theme name")
	fl.StringVar(&f.themes, "themes", "", "themes file (TOML, YAML or JSON) merged over the built-ins")
	fl.StringVarP(&f.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames, ", ")+" (comma-separated, default svg)")
	fl.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	fl.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	fl.BoolVar(&f.labels, "labels", false, "draw value labels inside blocks")
	fl.BoolVar(&f.legend, "legend", false, "print a legend under terminal output")
	fl.BoolVar(&f.placeholder, "placeholder", false, "draw a single placeholder block when all values are zero")
	fl.IntVar(&f.cols, "cols", 0, "terminal grid columns")
	fl.IntVar(&f.rows, "rows", 0, "terminal grid rows")
	fl.Float64Var(&f.stroke, "stroke", pipeline.DefaultStroke, "block outline width for svg and png")
	fl.BoolVar(&f.noStroke, "no-stroke", false, "draw blocks without outlines")
	fl.StringVar(&f.background, "background", "", "svg background color, hex or ANSI index")
	fl.BoolVar(&f.compact, "compact", false, "write json without indentation")
	cmd.MarkFlagsMutuallyExclusive("stroke", "no-stroke")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(pipeline.FormatNames, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("theme", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		ts, err := theme.LoadWithBuiltin(resolveThemesPath(f.themes))
		if err != nil {
			return theme.Builtin().Names(), cobra.ShellCompDirectiveNoFileComp
		}
		return ts.Names(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("preset", cobra.FixedCompletions(values.Presets(), cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("axis", cobra.FixedCompletions([]string{"horizontal", "vertical", "alternate"}, cobra.ShellCompDirectiveNoFileComp))
}

// options converts the flags into validated pipeline options.
func (f *renderFlags) options() (pipeline.Options, error) {
	opts := pipeline.Options{
		Values:      f.values,
		Preset:      f.preset,
		At:          f.at,
		Width:       f.width,
		Height:      f.height,
		Axis:        f.axis,
		Theme:       f.theme,
		ThemesFile:  resolveThemesPath(f.themes),
		Placeholder: f.placeholder,
		Formats:     parseFormats(f.formats),
		Scale:       f.scale,
		Labels:      f.labels,
		Legend:      f.legend,
		Cols:        f.cols,
		Rows:        f.rows,
		Stroke:      f.stroke,
		NoStroke:    f.noStroke,
		Background:  f.background,
		Compact:     f.compact,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// renderCommand creates the render command for a one-shot layout.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Lay out readings once and write the result",
		Long: `Lay out readings once and write the result.

Readings come from --values or a clock preset (default: the current hour
and minute). Each reading becomes one block whose area is proportional to
its value. File formats are written to disk, the term format is printed.`,
		Example: `  clockblocks render
  clockblocks render --values hour=7,minute=42 --theme ocean -o now.svg
  clockblocks render --preset hour --axis alternate -f svg,png,json
  clockblocks render --preset day -f term --legend`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, flags.output)
		},
	}

	flags.register(cmd)
	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, _, err := c.newRunner(opts.ThemesFile)
	if err != nil {
		return err
	}
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, output, appName)
	if err != nil {
		return err
	}
	prog.done(result)

	printSuccess("Laid out %s with theme %s", StyleValue.Render(describeValues(result)), result.Frame.Theme)
	for _, p := range paths {
		printFile(p)
	}
	printDetail("%d blocks · %s axis · compute %s · render %s",
		result.Stats.BlockCount, result.Frame.Axis,
		result.Stats.ComputeTime.Round(time.Microsecond), result.Stats.RenderTime.Round(time.Microsecond))
	if len(paths) > 0 && opts.Values == "" {
		printNextStep("Keep it current", appName+" watch --preset "+presetOrClock(opts))
	}
	return nil
}

// writeArtifacts writes file formats to disk and prints the term format to
// stdout. It returns the written paths in sorted order.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, fallbackBase string) ([]string, error) {
	paths := outputPaths(output, fallbackBase, formats)
	written := make([]string, 0, len(paths))
	for format, path := range paths {
		data, ok := artifacts[format]
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal, "no %s output produced", format)
		}
		if err := writeFile(path, data); err != nil {
			return nil, err
		}
		written = append(written, path)
	}
	sort.Strings(written)

	if term, ok := artifacts[pipeline.FormatTerm]; ok {
		fmt.Print(string(term))
	}
	return written, nil
}

// writeFile writes data via a temp file and rename so watchers never see a
// partially written file.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

func describeValues(r *pipeline.Result) string {
	parts := make([]string, len(r.Values))
	for i, v := range r.Values {
		parts[i] = fmt.Sprintf("%s=%g", v.Name, v.Weight)
	}
	return strings.Join(parts, " ")
}

func presetOrClock(opts pipeline.Options) string {
	if opts.Preset != "" {
		return opts.Preset
	}
	return pipeline.DefaultPreset
}
