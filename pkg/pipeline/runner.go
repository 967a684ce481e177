package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/clockblocks/pkg/layout"
	"github.com/matzehuels/clockblocks/pkg/session"
	"github.com/matzehuels/clockblocks/pkg/theme"
	"github.com/matzehuels/clockblocks/pkg/values"
)

// Runner encapsulates pipeline execution against one theme store.
// The CLI's render command uses it once; watch uses it on every tick.
//
// The Runner keeps a single layout session so consecutive runs with the
// same axis can be diffed. Multiple goroutines can safely use the same
// Runner.
type Runner struct {
	Store  *theme.Store
	Logger *log.Logger

	mu   sync.Mutex
	sess *session.Session
	key  sessionKey
}

type sessionKey struct {
	axis        layout.Axis
	placeholder bool
}

// NewRunner creates a runner reading themes from store.
// If store is nil, the built-in themes are used.
func NewRunner(store *theme.Store, logger *log.Logger) *Runner {
	if store == nil {
		store = theme.NewStore(nil)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Store: store, Logger: logger}
}

// Execute runs the complete values → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Input
	vals, err := ResolveValues(opts)
	if err != nil {
		return nil, fmt.Errorf("values: %w", err)
	}
	result.Values = vals
	r.Logger.Debug("resolved values", "values", values.Format(vals))

	// Stage 2: Layout
	computeStart := time.Now()
	sess := r.Session(opts)
	prev := sess.Last()
	frame, err := sess.Recompute(ctx, BuildInput(vals, opts))
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Frame = frame
	result.SessionID = sess.ID()
	result.Changed = session.Diff(prev, frame)
	result.Stats.ComputeTime = time.Since(computeStart)
	result.Stats.BlockCount = frame.Len()

	r.Logger.Info("computed layout",
		"blocks", frame.Len(),
		"changed", len(result.Changed),
		"theme", frame.Theme,
		"duration", result.Stats.ComputeTime)

	// Stage 3: Render
	renderStart := time.Now()
	opts.SessionID = result.SessionID
	artifacts, err := Render(ctx, frame, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Session returns the runner's layout session for opts, replacing it when
// the axis or placeholder setting changed since the last call.
func (r *Runner) Session(opts Options) *session.Session {
	key := sessionKey{axis: opts.LayoutAxis(), placeholder: opts.Placeholder}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sess != nil && r.key == key {
		return r.sess
	}

	sessOpts := []session.Option{session.WithAxis(key.axis), session.WithLogger(r.Logger)}
	if key.placeholder {
		sessOpts = append(sessOpts, session.WithPlaceholder())
	}
	r.sess = session.New(r.Store, sessOpts...)
	r.key = key
	r.Logger.Debug("started layout session", "session", r.sess.ID(), "axis", key.axis)
	return r.sess
}
