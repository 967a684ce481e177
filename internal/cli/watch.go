package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/clockblocks/pkg/errors"
	"github.com/matzehuels/clockblocks/pkg/pipeline"
	"github.com/matzehuels/clockblocks/pkg/theme"
)

const defaultInterval = time.Second

// watchCommand creates the watch command, which re-renders on every tick.
func (c *CLI) watchCommand() *cobra.Command {
	var flags renderFlags
	var interval time.Duration
	var count int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render the layout on a timer",
		Long: `Re-render the layout on a timer.

Every tick recomputes the layout from the preset (or the fixed --values) and
rewrites the outputs when any block changed. When a themes file is in use it
is watched too: edits are picked up without restarting, and a broken file is
reported while the previous themes stay active.`,
		Example: `  clockblocks watch --preset hour -o hour.svg
  clockblocks watch --preset day -f term --interval 10s
  clockblocks watch --themes ./themes.toml --theme night -f png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return errors.New(errors.ErrCodeInvalidConfig, "interval must be positive, got %s", interval)
			}
			if flags.at != "" {
				return errors.New(errors.ErrCodeInvalidConfig, "--at pins the clock, use render instead")
			}
			opts, err := flags.options()
			if err != nil {
				return err
			}
			return c.runWatch(cmd.Context(), opts, flags.output, interval, count)
		},
	}

	flags.register(cmd)
	cmd.Flags().DurationVar(&interval, "interval", defaultInterval, "time between recomputes")
	cmd.Flags().IntVar(&count, "count", 0, "stop after this many ticks (0 runs until interrupted)")
	return cmd
}

func (c *CLI) runWatch(ctx context.Context, opts pipeline.Options, output string, interval time.Duration, count int) error {
	logger := loggerFromContext(ctx)

	runner, store, err := c.newRunner(opts.ThemesFile)
	if err != nil {
		return err
	}

	parent := ctx
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if opts.ThemesFile != "" {
		w := &theme.Watcher{Path: opts.ThemesFile, Store: store, Logger: logger}
		g.Go(func() error { return w.Run(ctx) })
		printInfo("Watching themes in %s", StyleValue.Render(opts.ThemesFile))
	}

	g.Go(func() error {
		defer cancel()
		t := &ticker{runner: runner, opts: opts, output: output, logger: logger}
		return t.loop(ctx, interval, count)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	// Interrupted rather than finished: let main report the cancellation.
	return parent.Err()
}

// ticker holds the per-run state of a watch loop.
type ticker struct {
	runner *pipeline.Runner
	opts   pipeline.Options
	output string
	logger *log.Logger
	ticks  int
}

// loop runs one tick immediately, then one per interval until ctx is done or
// count ticks have run.
func (t *ticker) loop(ctx context.Context, interval time.Duration, count int) error {
	tk := time.NewTicker(interval)
	defer tk.Stop()

	for {
		t.tick(ctx)
		if count > 0 && t.ticks >= count {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-tk.C:
		}
	}
}

// tick recomputes and rewrites outputs when anything changed. A failed
// recompute is reported and the previously written outputs are left alone.
func (t *ticker) tick(ctx context.Context) {
	t.ticks++
	first := t.ticks == 1

	result, err := t.runner.Execute(ctx, t.opts)
	if err != nil {
		printWarning("%s", errors.UserMessage(err))
		return
	}
	frameLogger(t.logger, result).Debug("tick", "changed", len(result.Changed))
	if !first && len(result.Changed) == 0 {
		return
	}

	paths, err := writeArtifacts(result.Artifacts, t.opts.Formats, t.output, appName)
	if err != nil {
		printError("%s", errors.UserMessage(err))
		return
	}
	if first {
		for _, p := range paths {
			printFile(p)
		}
	}
	printInfo("%s %s", time.Now().Format("15:04:05"), StyleValue.Render(describeValues(result)))
	fmt.Println(statsLine(result.Stats.BlockCount, len(result.Changed), first))
}
