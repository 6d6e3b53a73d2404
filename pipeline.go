package surfacegrid

import (
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DirtyReason tells a renderer why a new handle must be re-uploaded even
// though the lane slices it references may be the same as last time.
type DirtyReason uint8

const (
	// DirtyCutoff is set when the cutoff value changed.
	DirtyCutoff DirtyReason = 1 << iota
	// DirtyGradients is set when any gradient changed.
	DirtyGradients
	// DirtyGrid is set when a different grid, or a grid of a different
	// shape or Z range, was filled.
	DirtyGrid
	// DirtyRealloc is set when the lanes were reallocated; GPU bindings made
	// from the previous slices must be recreated, not just refreshed.
	DirtyRealloc
)

// Has reports whether all bits of r are set.
func (d DirtyReason) Has(r DirtyReason) bool {
	return d&r == r
}

// String returns the set reasons joined by "|", or "clean".
func (d DirtyReason) String() string {
	if d == 0 {
		return "clean"
	}
	var parts []string
	for _, r := range []struct {
		bit  DirtyReason
		name string
	}{
		{DirtyCutoff, "cutoff"},
		{DirtyGradients, "gradients"},
		{DirtyGrid, "grid"},
		{DirtyRealloc, "realloc"},
	} {
		if d&r.bit != 0 {
			parts = append(parts, r.name)
		}
	}
	return strings.Join(parts, "|")
}

// SegmentBufferHandle is the result of one fill.
//
// A new handle is returned by every call so identity-based change detection
// sees a change; Buffer itself points at the same pooled lanes each time.
type SegmentBufferHandle struct {
	Buffer *SegmentBuffer
	Count  int

	// Generation increases by one with every fill of the same pipeline.
	Generation uint64

	// Dirty lists what differs from the previous fill.
	Dirty DirtyReason
}

// fillKey records the inputs of the last fill for dirty tracking.
type fillKey struct {
	valid      bool
	grid       *Grid
	rows, cols int
	zMin, zMax float64
	cutoff     float64
	gradients  Gradients
}

// Pipeline turns a grid, a cutoff and gradients into a SegmentBuffer.
//
// A Pipeline owns its allocator and is not safe for concurrent use; use a
// Scheduler to serialize requests coming from several goroutines.
type Pipeline struct {
	alloc        *Allocator
	labels       labelCache
	subdivisions int
	generation   uint64
	last         fillKey
	statsLog     rate.Sometimes
}

// NewPipeline creates a pipeline.
func NewPipeline(opts ...PipelineOption) *Pipeline {
	o := defaultPipelineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	alloc := o.allocator
	if alloc == nil {
		alloc = NewAllocator(o.initialCapacity)
	}
	return &Pipeline{
		alloc:        alloc,
		subdivisions: o.subdivisions,
		statsLog:     rate.Sometimes{First: 1, Interval: time.Second},
	}
}

// Subdivisions returns the configured subdivision count.
func (p *Pipeline) Subdivisions() int {
	return p.subdivisions
}

// Allocator returns the allocator the pipeline writes into.
func (p *Pipeline) Allocator() *Allocator {
	return p.alloc
}

// FillSegments rebuilds the segment buffer for grid.
//
// Every row edge (row j, columns i and i+1) and every column edge (column i,
// rows j and j+1) is visited once. Row edges use the X gradients and are
// labeled "row-j"; column edges use the Y gradients and are labeled "col-i".
// Edges that cross the cutoff are split at the exact crossing point and each
// half is shaded with the gradient of its own side.
//
// zMin and zMax define the normalization range of the gradients; callers
// usually pass grid.ZRange(). The only error is ErrGridShape.
func (p *Pipeline) FillSegments(grid *Grid, cutoff, zMin, zMax float64, gradients *Gradients) (*SegmentBufferHandle, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	rows, cols := grid.Rows(), grid.Cols()
	n := p.subdivisions
	worst := WorstCaseCapacity(rows, cols, n)

	grows := p.alloc.Grows()
	buf := p.alloc.Acquire(worst)
	p.labels.reserve(rows, cols)
	cur := NewCursor(buf, worst, zMin, zMax)

	var split int
	for j := 0; j < rows; j++ {
		label := RowID(j)
		name := p.labels.name(label)
		xs, ys, zs := grid.X[j], grid.Y[j], grid.Z[j]
		for i := 0; i+1 < cols; i++ {
			src := Vec3{X: xs[i], Y: ys[i], Z: zs[i]}
			dst := Vec3{X: xs[i+1], Y: ys[i+1], Z: zs[i+1]}
			if p.edge(&cur, src, dst, cutoff, DirX, gradients, label, name) {
				split++
			}
		}
	}
	for i := 0; i < cols; i++ {
		label := ColID(i)
		name := p.labels.name(label)
		for j := 0; j+1 < rows; j++ {
			src := Vec3{X: grid.X[j][i], Y: grid.Y[j][i], Z: grid.Z[j][i]}
			dst := Vec3{X: grid.X[j+1][i], Y: grid.Y[j+1][i], Z: grid.Z[j+1][i]}
			if p.edge(&cur, src, dst, cutoff, DirY, gradients, label, name) {
				split++
			}
		}
	}
	buf.Count = cur.Len()

	dirty := p.diff(grid, rows, cols, zMin, zMax, cutoff, gradients)
	if p.alloc.Grows() != grows {
		dirty |= DirtyRealloc
	}
	p.generation++

	p.statsLog.Do(func() {
		Logger().Debug("surfacegrid: filled segments",
			slog.Int("rows", rows),
			slog.Int("cols", cols),
			slog.Int("segments", buf.Count),
			slog.Int("split_edges", split),
			slog.Int("capacity", buf.Cap()),
			slog.String("dirty", dirty.String()))
	})

	return &SegmentBufferHandle{
		Buffer:     buf,
		Count:      buf.Count,
		Generation: p.generation,
		Dirty:      dirty,
	}, nil
}

// edge classifies one edge and subdivides its pieces. It reports whether the
// edge was split.
func (p *Pipeline) edge(c *Cursor, src, dst Vec3, cutoff float64, dir Direction, gs *Gradients, label LabelID, name string) bool {
	ec := ClassifyAndSplit(src, dst, cutoff)
	if !ec.Split {
		Subdivide(c, src, dst, gs.For(dir, ec.Side), p.subdivisions, label, name)
		return false
	}
	Subdivide(c, src, ec.Mid, gs.For(dir, ec.First), p.subdivisions, label, name)
	Subdivide(c, ec.Mid, dst, gs.For(dir, ec.Second), p.subdivisions, label, name)
	return true
}

// diff compares the inputs with the previous fill and records them.
func (p *Pipeline) diff(grid *Grid, rows, cols int, zMin, zMax, cutoff float64, gs *Gradients) DirtyReason {
	prev := p.last
	p.last = fillKey{
		valid:     true,
		grid:      grid,
		rows:      rows,
		cols:      cols,
		zMin:      zMin,
		zMax:      zMax,
		cutoff:    cutoff,
		gradients: *gs,
	}
	if !prev.valid {
		return DirtyCutoff | DirtyGradients | DirtyGrid
	}
	var d DirtyReason
	if prev.cutoff != cutoff {
		d |= DirtyCutoff
	}
	if prev.gradients != *gs {
		d |= DirtyGradients
	}
	if prev.grid != grid || prev.rows != rows || prev.cols != cols || prev.zMin != zMin || prev.zMax != zMax {
		d |= DirtyGrid
	}
	return d
}
