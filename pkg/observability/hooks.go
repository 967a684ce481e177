// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about layout recomputation, theme reloads, and rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetThemeHooks(&myThemeHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnRecomputeStart(ctx, sessionID, len(values))
//	// ... pack and resolve ...
//	observability.Layout().OnRecomputeComplete(ctx, sessionID, len(blocks), duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from layout sessions.
type LayoutHooks interface {
	// OnRecomputeStart records the start of a recompute for the given session.
	OnRecomputeStart(ctx context.Context, sessionID string, valueCount int)

	// OnRecomputeComplete records the outcome of a recompute.
	OnRecomputeComplete(ctx context.Context, sessionID string, blockCount int, duration time.Duration, err error)
}

// =============================================================================
// Theme Hooks
// =============================================================================

// ThemeHooks receives events from theme configuration reloads.
type ThemeHooks interface {
	// OnThemeReload records a reload attempt. err is non-nil when the
	// previous mapping was kept.
	OnThemeReload(ctx context.Context, path string, themeCount int, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from output sinks.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnRecomputeStart(context.Context, string, int) {}
func (NoopLayoutHooks) OnRecomputeComplete(context.Context, string, int, time.Duration, error) {
}

// NoopThemeHooks is a no-op implementation of ThemeHooks.
type NoopThemeHooks struct{}

func (NoopThemeHooks) OnThemeReload(context.Context, string, int, error) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopRenderHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	themeHooks  ThemeHooks  = NoopThemeHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any recompute.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetThemeHooks registers custom theme hooks.
func SetThemeHooks(h ThemeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		themeHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Theme returns the registered theme hooks.
func Theme() ThemeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return themeHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	themeHooks = NoopThemeHooks{}
	renderHooks = NoopRenderHooks{}
}
