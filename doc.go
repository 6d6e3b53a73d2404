// Package surfacegrid turns a regular 3D surface grid into colored line
// segments split across a movable horizontal cutoff plane.
//
// # Overview
//
// Every time the cutoff or the gradients change, a Pipeline rebuilds a flat
// structure-of-arrays SegmentBuffer: source positions, target positions,
// RGBA colors and row/column labels. The lanes are reused across fills, so
// the steady state does not allocate, and they are laid out to be bound
// directly as instanced GPU vertex buffers (see package gpulayout).
//
// # Quick Start
//
//	import "github.com/gogpu/surfacegrid"
//
//	grid := surfacegrid.NewGrid(64, 64, func(j, i int) surfacegrid.Vec3 {
//		x, y := float64(i), float64(j)
//		return surfacegrid.Vec3{X: x, Y: y, Z: math.Sin(x / 8)}
//	})
//	zMin, zMax := grid.ZRange()
//	gs := surfacegrid.DefaultGradients()
//
//	p := surfacegrid.NewPipeline()
//	h, err := p.FillSegments(grid, 0, zMin, zMax, &gs)
//
// # Edges and Colors
//
// Row edges join (j, i) and (j, i+1) and are shaded with the X gradients.
// Column edges join (j, i) and (j+1, i) and are shaded with the Y gradients.
// An edge whose endpoints lie on opposite sides of the cutoff is split at the
// exact crossing point and each half uses the gradient of its own side. A
// point is above the plane only if its Z is strictly greater than the cutoff.
// Each piece is subdivided into uniform sub-segments colored by the gradient
// evaluated at the sub-segment's mid Z.
//
// # Highlighting
//
// A Selection holds row and column labels. ExtractSubset copies the matching
// segments into an independently owned HighlightSubset.
//
// # Concurrency
//
// A Pipeline and its Allocator belong to one goroutine. Scheduler serializes
// requests from several goroutines and skips requests that were superseded
// before they could run.
//
// # Persistence
//
// Gradients persist as JSON (MarshalGradients, LoadGradients) and the cutoff
// as a percentage of the Z range (CutoffFromPercent, LoadCutoffPercent).
// Package snapshot dumps a filled buffer in a compact binary form.
package surfacegrid

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
