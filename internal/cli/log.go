// Package cli implements the clockblocks command-line interface.
//
// This package provides commands for laying out time readings as blocks,
// watching the clock and a themes file for changes, and inspecting the
// available color themes. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Lay out values once and write SVG, PNG, JSON or terminal output
//   - watch: Re-render on every tick, reloading the themes file on change
//   - themes: List, check and locate color themes
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging and
// --log-format for text, json or logfmt lines. Loggers are passed through
// context.Context so helpers share the command's logger. Lines about a
// computed frame carry its session id and sequence number.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/clockblocks/pkg/errors"
	"github.com/matzehuels/clockblocks/pkg/pipeline"
)

// newLogger creates a text logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logFormats maps --log-format values to formatters.
var logFormats = map[string]log.Formatter{
	"text":   log.TextFormatter,
	"json":   log.JSONFormatter,
	"logfmt": log.LogfmtFormatter,
}

var logFormatNames = []string{"text", "json", "logfmt"}

// SetLogFormat switches the logger's output encoding.
func (c *CLI) SetLogFormat(name string) error {
	f, ok := logFormats[name]
	if !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid log format %q (must be one of: %v)", name, logFormatNames)
	}
	c.Logger.SetFormatter(f)
	return nil
}

// frameLogger tags l with the session and sequence number of res.
func frameLogger(l *log.Logger, res *pipeline.Result) *log.Logger {
	if res == nil || res.Frame == nil {
		return l
	}
	return l.With("session", shortID(res.SessionID), "seq", res.Frame.Seq)
}

// shortID trims a session uuid to its first group.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// progress tracks the start of a pipeline run for the completion log line.
// It is safe for sequential use by a single goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs the block count of res with its frame tags, the number of
// changed blocks and the elapsed time rounded to the millisecond.
// Example output: "Rendered 2 blocks session=1b4e28ba seq=1 changed=2 elapsed=3ms"
func (p *progress) done(res *pipeline.Result) {
	frameLogger(p.logger, res).Info(fmt.Sprintf("Rendered %d blocks", res.Stats.BlockCount),
		"changed", len(res.Changed),
		"elapsed", time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() when
// none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
