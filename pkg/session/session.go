// Package session recomputes styled layouts and keeps the latest result.
//
// A [Session] ties the three layout stages together: it normalizes the
// current readings ([values]), packs them into the canvas ([layout]) and
// resolves a style for each block from the active themes ([theme]). The
// outcome is a [Frame] that a renderer can draw directly.
//
// # Consistency
//
// Each [Session.Recompute] takes one snapshot of the theme store, so a
// concurrent hot reload is seen either entirely or not at all. The last
// frame is replaced only when every stage succeeds; a failed recompute
// leaves [Session.Last] untouched.
//
// # Usage
//
//	store := theme.NewStore(nil)
//	sess := session.New(store, session.WithAxis(layout.AxisVertical))
//
//	frame, err := sess.Recompute(ctx, session.Input{
//	    Values: values.Clock(time.Now()),
//	    Width:  400, Height: 100,
//	    Theme:  "ocean",
//	})
//	if err != nil {
//	    return err
//	}
//	changed := session.Diff(prev, frame)
package session

import (
	"context"
	stderrors "errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/clockblocks/pkg/errors"
	"github.com/matzehuels/clockblocks/pkg/layout"
	"github.com/matzehuels/clockblocks/pkg/observability"
	"github.com/matzehuels/clockblocks/pkg/theme"
	"github.com/matzehuels/clockblocks/pkg/values"
)

// PlaceholderName names the single block produced in placeholder mode.
const PlaceholderName = "placeholder"

// Input is everything a recompute depends on besides the themes.
type Input struct {
	Values []values.Value `json:"values"`
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Theme  string         `json:"theme"`
}

// StyledBlock is a packed block with its resolved style.
type StyledBlock struct {
	layout.Block
	Name  string         `json:"name"`
	Role  theme.Role     `json:"role"`
	Style theme.StyleRef `json:"style"`
}

// Frame is one complete, styled layout. Frames are shared between readers
// and must not be modified.
type Frame struct {
	Seq    uint64        `json:"seq"`
	Theme  string        `json:"theme"`
	Axis   layout.Axis   `json:"axis"`
	Canvas layout.Rect   `json:"canvas"`
	Blocks []StyledBlock `json:"blocks"`
}

// Len returns the number of blocks; it is nil-safe.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Blocks)
}

// Compute runs normalize, pack and resolve against a fixed themes mapping.
// It has no side effects; the returned frame has Seq 0.
func Compute(in Input, themes *theme.Themes, axis layout.Axis) (*Frame, error) {
	weights, err := values.Normalize(in.Values)
	if err != nil {
		return nil, err
	}
	canvas := layout.Canvas(in.Width, in.Height)
	blocks, err := layout.Pack(weights, canvas, layout.WithAxis(axis))
	if err != nil {
		return nil, err
	}
	th, err := themes.Lookup(in.Theme)
	if err != nil {
		return nil, err
	}

	styled := make([]StyledBlock, len(blocks))
	for i, b := range blocks {
		v := in.Values[i]
		style, err := th.Style(v.Role)
		if err != nil {
			return nil, err
		}
		styled[i] = StyledBlock{Block: b, Name: v.Name, Role: v.Role, Style: style}
	}
	return &Frame{Theme: in.Theme, Axis: axis, Canvas: canvas, Blocks: styled}, nil
}

// Placeholder returns a frame with a single full-canvas block styled with
// the theme's "both" style. It is used when every reading is zero.
func Placeholder(in Input, themes *theme.Themes, axis layout.Axis) (*Frame, error) {
	canvas := layout.Canvas(in.Width, in.Height)
	if err := errors.ValidateExtent("width", in.Width); err != nil {
		return nil, err
	}
	if err := errors.ValidateExtent("height", in.Height); err != nil {
		return nil, err
	}
	style, err := theme.Resolve(themes, in.Theme, theme.RoleBoth)
	if err != nil {
		return nil, err
	}
	block := layout.Block{Size: canvas.Area(), Width: canvas.Width, Height: canvas.Height}
	return &Frame{
		Theme:  in.Theme,
		Axis:   axis,
		Canvas: canvas,
		Blocks: []StyledBlock{{Block: block, Name: PlaceholderName, Role: theme.RoleBoth, Style: style}},
	}, nil
}

// Option configures a Session.
type Option func(*Session)

// WithAxis sets the packing axis. The default is horizontal.
func WithAxis(a layout.Axis) Option { return func(s *Session) { s.axis = a } }

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPlaceholder makes an all-zero input produce a placeholder frame
// instead of an INVALID_INPUT error.
func WithPlaceholder() Option { return func(s *Session) { s.placeholder = true } }

// Session owns the latest frame. It is safe for concurrent use.
type Session struct {
	id          string
	themes      *theme.Store
	axis        layout.Axis
	placeholder bool
	logger      *log.Logger

	last     atomic.Pointer[Frame]
	inflight atomic.Int32
	seq      atomic.Uint64
}

// New creates a session reading themes from store. A nil store falls back
// to the built-in themes.
func New(store *theme.Store, opts ...Option) *Session {
	if store == nil {
		store = theme.NewStore(nil)
	}
	s := &Session{
		id:     uuid.NewString(),
		themes: store,
		axis:   layout.AxisHorizontal,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session's uuid, fixed at creation.
func (s *Session) ID() string { return s.id }

// Axis returns the packing axis every recompute uses.
func (s *Session) Axis() layout.Axis { return s.axis }

// Themes returns the store styles are resolved from.
func (s *Session) Themes() *theme.Store { return s.themes }

// Last returns the most recent successful frame, or nil before the first.
func (s *Session) Last() *Frame { return s.last.Load() }

// Recomputing reports whether a recompute is in progress.
func (s *Session) Recomputing() bool { return s.inflight.Load() > 0 }

// Recompute builds a new frame from in and publishes it as Last on success.
// ctx is only passed to observability hooks.
func (s *Session) Recompute(ctx context.Context, in Input) (*Frame, error) {
	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	start := time.Now()
	observability.Layout().OnRecomputeStart(ctx, s.id, len(in.Values))

	themes := s.themes.Load()
	frame, err := Compute(in, themes, s.axis)
	if err != nil && s.placeholder && stderrors.Is(err, values.ErrZeroTotal) {
		frame, err = Placeholder(in, themes, s.axis)
	}

	elapsed := time.Since(start)
	if err != nil {
		observability.Layout().OnRecomputeComplete(ctx, s.id, 0, elapsed, err)
		s.logger.Warn("recompute failed", "session", s.id, "code", errors.GetCode(err), "err", err)
		return nil, err
	}

	frame.Seq = s.seq.Add(1)
	s.publish(frame)
	observability.Layout().OnRecomputeComplete(ctx, s.id, frame.Len(), elapsed, nil)
	s.logger.Debug("recomputed layout",
		"session", s.id,
		"seq", frame.Seq,
		"blocks", frame.Len(),
		"theme", frame.Theme,
		"duration", elapsed)
	return frame, nil
}

// publish stores f unless a newer frame already landed.
func (s *Session) publish(f *Frame) {
	for {
		cur := s.last.Load()
		if cur != nil && cur.Seq >= f.Seq {
			return
		}
		if s.last.CompareAndSwap(cur, f) {
			return
		}
	}
}

// Diff returns the indices of next whose block or style differ from prev.
// Every index is returned when prev is nil or the block counts differ.
func Diff(prev, next *Frame) []int {
	if next == nil {
		return nil
	}
	if prev == nil || len(prev.Blocks) != len(next.Blocks) {
		all := make([]int, len(next.Blocks))
		for i := range all {
			all[i] = i
		}
		return all
	}
	var changed []int
	for i := range next.Blocks {
		if prev.Blocks[i] != next.Blocks[i] {
			changed = append(changed, i)
		}
	}
	return changed
}
