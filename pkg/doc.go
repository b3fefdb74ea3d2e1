// Package pkg provides the libraries behind Highweigh, a renderer for project
// roadmaps as month-grid Gantt charts.
//
// # Overview
//
// A roadmap lists projects, each with optional epics, bars (date-bounded
// spans) and milestones (point events), over a window of whole months. The
// pkg directory is organized into four areas:
//
//  1. [roadmap] - The document model and its JSON, YAML and TOML decoding
//  2. [core] - Layout and rendering (calendar, layout, grid, scene, sink)
//  3. [source] and [cache] - Getting documents in and keeping results around
//  4. [pipeline] - Orchestration (load → render → serialize)
//
// # Architecture
//
// The data flow of one render:
//
//	File / URL / Store
//	         ↓
//	    [source] package (fetch raw bytes)
//	         ↓
//	    [roadmap] package (decode + validate)
//	         ↓
//	    [core/scene] package (one top-to-bottom layout pass)
//	         ↓
//	    [core/sink] + [core/render] (SVG, JSON, PNG, PDF)
//
// # Quick Start
//
// Decode a roadmap and render it to SVG:
//
//	import (
//	    "github.com/matzehuels/highweigh/pkg/core/scene"
//	    "github.com/matzehuels/highweigh/pkg/core/sink"
//	    "github.com/matzehuels/highweigh/pkg/roadmap"
//	)
//
//	// 1. Decode
//	doc, _ := roadmap.ReadFile("roadmap.yaml")
//
//	// 2. Lay out
//	s, _ := scene.Render(doc)
//
//	// 3. Serialize
//	svg := sink.RenderSVG(s)
//
// # Main Packages
//
// ## Core
//
// [core/calendar] - Maps a calendar date to a horizontal offset inside the
// chart window, or reports it out of range. February is always 28 days wide.
//
// [core/layout] - The vertical cursor and the row-height policy, plus
// [layout.Plan] for computing a document's height up front.
//
// [core/grid] - Month labels and the major and minor gridline paths.
//
// [core/scene] - The renderer. Walks the document once and emits a tree of
// primitives through a Surface.
//
// [core/sink] - SVG serialization with an embedded stylesheet, and the JSON
// scene export.
//
// [core/render] - SVG to PNG and PDF through rsvg-convert.
//
// ## Infrastructure
//
// [source] - Local files, HTTP(S) URLs with retry, and the directory and
// MongoDB stores the HTTP service serves from.
//
// [cache] - File, Redis and null backends behind one interface, with the
// keyer that names documents and artifacts.
//
// [pipeline] - The load → render → serialize pipeline used by both the CLI
// and the HTTP service.
//
// [observability] - Hooks for load, render, cache and HTTP events.
//
// [errors] - Coded errors shared by every layer.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/core/...               # Layout and rendering only
//	go test -run Example                 # Examples only
//
// Redis and MongoDB tests run only when HIGHWEIGH_TEST_REDIS or
// HIGHWEIGH_TEST_MONGO point at a server.
//
// [roadmap]: https://pkg.go.dev/github.com/matzehuels/highweigh/pkg/roadmap
// [core]: https://pkg.go.dev/github.com/matzehuels/highweigh/pkg/core
// [core/calendar]: https://pkg.go.dev/github.com/matzehuels/highweigh/pkg/core/calendar
// [core/layout]: https://pkg.go.dev/github.com/matzehuels/highweigh/pkg/core/layout
// [layout.Plan]: https://pkg.go.dev/github.com/matzehuels/highweigh/pkg/core/layout#Plan
// [core/grid]: https://pkg.go.dev/github.com/matzehuels/highweigh/pkg/core/grid
// [core/scene]: https://pkg.go.dev/github.com/matzehuels/highweigh/pkg/core/scene
// [core/sink]: https://pkg.go.dev/github.com/matzehuels/highweigh/pkg/core/sink
// [core/render]: https://pkg.go.dev/github.com/matzehuels/highweigh/pkg/core/render
// [source]: https://pkg.go.dev/github.com/matzehuels/highweigh/pkg/source
// [cache]: https://pkg.go.dev/github.com/matzehuels/highweigh/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/highweigh/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/highweigh/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/highweigh/pkg/errors
package pkg
