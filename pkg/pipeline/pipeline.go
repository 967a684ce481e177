// Package pipeline provides the values → layout → render pipeline for clockblocks.
//
// This package implements the complete flow that the CLI's render and watch
// commands share. By centralizing it, both entry points apply the same
// defaults and validation.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Input: Resolve readings from an explicit list or a clock preset
//  2. Layout: Recompute a styled frame in a [session.Session]
//  3. Render: Generate output in the requested formats (SVG, PNG, JSON, terminal)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(store, logger)
//	opts := pipeline.Options{
//	    Preset:  "hour",
//	    Theme:   "ocean",
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/clockblocks/pkg/errors"
	"github.com/matzehuels/clockblocks/pkg/layout"
	"github.com/matzehuels/clockblocks/pkg/render/sink"
	"github.com/matzehuels/clockblocks/pkg/session"
	"github.com/matzehuels/clockblocks/pkg/theme"
	"github.com/matzehuels/clockblocks/pkg/values"
)

// =============================================================================
// Default Values - Single Source of Truth for render and watch
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 400.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 100.0

	// DefaultPreset is used when neither values nor a preset are given.
	DefaultPreset = values.PresetClock

	// DefaultScale is the default PNG pixel density.
	DefaultScale = sink.DefaultScale

	// DefaultStroke is the default block outline width.
	DefaultStroke = 1.0
)

const (
	// DefaultAxis is the default packing axis.
	DefaultAxis = "horizontal"

	// DefaultTheme is the default theme name.
	DefaultTheme = theme.DefaultName
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatTerm = "term"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatTerm: true,
}

// FormatNames lists the output formats in help-text order.
var FormatNames = []string{FormatSVG, FormatPNG, FormatJSON, FormatTerm}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization so a run can be recorded.
type Options struct {
	// Input options
	Values string `json:"values,omitempty"` // explicit list, e.g. "hour=7,minute=42"
	Preset string `json:"preset,omitempty"` // clock, hour or day
	At     string `json:"at,omitempty"`     // HH:MM[:SS] for presets; empty means now

	// Layout options. A zero Width or Height means the default extent.
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	Axis        string  `json:"axis,omitempty"`
	Theme       string  `json:"theme,omitempty"`
	ThemesFile  string  `json:"themes_file,omitempty"`
	Placeholder bool    `json:"placeholder,omitempty"` // draw one block instead of failing on all-zero input

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Labels  bool     `json:"labels,omitempty"`
	Legend  bool     `json:"legend,omitempty"`
	Cols    int      `json:"cols,omitempty"`
	Rows    int      `json:"rows,omitempty"`

	Stroke     float64 `json:"stroke,omitempty"`     // outline width for svg and png; 0 means the default
	NoStroke   bool    `json:"no_stroke,omitempty"`  // draw blocks without outlines
	Background string  `json:"background,omitempty"` // svg canvas fill, hex or ANSI index
	Compact    bool    `json:"compact,omitempty"`    // unindented json

	// Runtime options (not serialized)
	Logger    *log.Logger      `json:"-"`
	Now       func() time.Time `json:"-"`
	SessionID string           `json:"-"` // recorded in json output; set by Runner.Execute

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Values are the readings the frame was computed from.
	Values []values.Value

	// Frame is the styled layout.
	Frame *session.Frame

	// SessionID identifies the layout session that produced Frame.
	SessionID string

	// Changed lists block indices that differ from the session's previous frame.
	Changed []int

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BlockCount  int
	ComputeTime time.Duration
	RenderTime  time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(FormatNames, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAxis checks that an axis name is valid.
func ValidateAxis(axis string) error {
	_, err := layout.ParseAxis(axis)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForInput(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForInput checks the input source and applies its defaults.
func (o *Options) ValidateForInput() error {
	if o.Values != "" && o.Preset != "" {
		return errors.New(errors.ErrCodeInvalidConfig, "values and preset are mutually exclusive")
	}
	if o.Values != "" && o.At != "" {
		return errors.New(errors.ErrCodeInvalidConfig, "at only applies to presets")
	}
	if o.Values == "" && o.Preset == "" {
		o.Preset = DefaultPreset
	}
	if o.At != "" {
		if _, err := values.ParseClock(o.At); err != nil {
			return err
		}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
// A zero Width or Height is treated as unset; callers that need a
// degenerate canvas build a [session.Input] directly.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Axis == "" {
		o.Axis = DefaultAxis
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateExtent("width", o.Width); err != nil {
		return err
	}
	if err := errors.ValidateExtent("height", o.Height); err != nil {
		return err
	}
	if o.ThemesFile != "" {
		if err := errors.ValidatePath(o.ThemesFile); err != nil {
			return err
		}
	}
	return ValidateAxis(o.Axis)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Cols == 0 {
		o.Cols = sink.DefaultCols
	}
	if o.Rows == 0 {
		o.Rows = sink.DefaultRows
	}
	if o.Stroke == 0 {
		o.Stroke = DefaultStroke
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be positive, got %g", o.Scale)
	}
	if o.Stroke < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "stroke must be positive, got %g", o.Stroke)
	}
	if o.Background != "" {
		if _, err := sink.ParseColor(theme.StyleRef(o.Background)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "background")
		}
	}
	return ValidateFormats(o.Formats)
}

// LayoutAxis returns the parsed axis, defaulting to horizontal.
func (o *Options) LayoutAxis() layout.Axis {
	a, err := layout.ParseAxis(o.Axis)
	if err != nil {
		return layout.AxisHorizontal
	}
	return a
}

// LoadThemes loads the themes file on top of the built-ins.
// With no file configured it returns the built-ins.
func (o *Options) LoadThemes() (*theme.Themes, error) {
	return theme.LoadWithBuiltin(o.ThemesFile)
}
