// Package pkg provides the libraries behind clockblocks.
//
// # Overview
//
// Clockblocks turns time readings into rectangular blocks whose areas are
// proportional to the readings, styles each block from a named color theme
// and renders the result. The pkg directory is organized by stage:
//
//  1. [values] - Parse and validate readings, clock presets
//  2. [layout] - Pack weights into non-overlapping rectangles
//  3. [theme] - Named themes, theme files and hot reloading
//  4. [session] - Recompute styled frames, publish the latest one
//  5. [render/sink] - SVG, PNG, JSON and terminal output
//  6. [pipeline] - Orchestration (values → layout → render)
//
// # Architecture
//
// The typical data flow:
//
//	readings ("hour=7,minute=42" or a preset)
//	         ↓
//	    [values] package (validated weights, in input order)
//	         ↓
//	    [layout] package (one block per weight, tiling the canvas)
//	         ↓
//	    [session] package (theme styles per block role)
//	         ↓
//	    SVG/PNG/JSON/terminal output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/clockblocks/pkg/render/sink"
//	    "github.com/matzehuels/clockblocks/pkg/session"
//	    "github.com/matzehuels/clockblocks/pkg/theme"
//	    "github.com/matzehuels/clockblocks/pkg/values"
//	)
//
//	vals, _ := values.Parse("hour=7,minute=42")
//	s := session.New(theme.NewStore(nil))
//	frame, _ := s.Recompute(ctx, session.Input{
//	    Values: vals, Width: 400, Height: 100, Theme: "ocean",
//	})
//	svg, _ := sink.RenderSVG(frame)
//
// # Support Packages
//
//   - [errors]: Coded errors shared by all stages
//   - [observability]: Hooks for recompute, theme reload and render events
//   - [buildinfo]: Version information set at build time
package pkg
