// Package cli implements the clockblocks command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/clockblocks/pkg/buildinfo"
	"github.com/matzehuels/clockblocks/pkg/pipeline"
	"github.com/matzehuels/clockblocks/pkg/theme"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "clockblocks"

	// themesFileName is the themes file looked up in the config directory.
	themesFileName = "themes.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var logFormat string
	root := &cobra.Command{
		Use:   appName,
		Short: "Clockblocks lays out time readings as proportional colored blocks",
		Long: `Clockblocks turns time readings such as the current hour and minute into
rectangular blocks whose areas are proportional to the readings, styles them
from a named color theme, and renders the result as SVG, PNG, JSON or
directly in the terminal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.SetLogFormat(logFormat); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log line encoding: text, json, logfmt")
	_ = root.RegisterFlagCompletionFunc("log-format", cobra.FixedCompletions(logFormatNames, cobra.ShellCompDirectiveNoFileComp))

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.themesCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner loads the themes file (built-ins when path is empty) and returns
// a pipeline runner reading from a store seeded with it.
func (c *CLI) newRunner(path string) (*pipeline.Runner, *theme.Store, error) {
	ts, err := theme.LoadWithBuiltin(path)
	if err != nil {
		return nil, nil, err
	}
	store := theme.NewStore(ts)
	return pipeline.NewRunner(store, c.Logger), store, nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/clockblocks/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// defaultThemesPath returns the per-user themes file location.
func defaultThemesPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, themesFileName), nil
}

// resolveThemesPath returns flag when set. Otherwise it returns the per-user
// themes file if one exists, or "" for built-ins only.
func resolveThemesPath(flag string) string {
	if flag != "" {
		return flag
	}
	path, err := defaultThemesPath()
	if err != nil {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	formats := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			formats = append(formats, p)
		}
	}
	return formats
}

// fileFormats returns the formats that are written to disk. The terminal
// format goes to stdout instead.
func fileFormats(formats []string) []string {
	var out []string
	for _, f := range formats {
		if f != pipeline.FormatTerm {
			out = append(out, f)
		}
	}
	return out
}

// outputPaths maps each file format to the path it is written to.
//
// With a single file format the output flag is used as given. With several,
// it is treated as a base path and each format gets its own extension.
func outputPaths(output, fallbackBase string, formats []string) map[string]string {
	files := fileFormats(formats)
	paths := make(map[string]string, len(files))
	if len(files) == 1 && output != "" {
		paths[files[0]] = output
		return paths
	}
	base := basePath(output, fallbackBase)
	for _, f := range files {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath strips a known format extension from output, or returns fallback
// when output is empty.
func basePath(output, fallback string) string {
	if output == "" {
		return fallback
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
