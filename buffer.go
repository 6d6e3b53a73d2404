package surfacegrid

import "log/slog"

// Lane strides, in elements per segment.
const (
	PositionStride = 3
	ColorStride    = 4
)

// SegmentBuffer is a structure-of-arrays description of colored line
// segments. Slot k occupies SourcePositions[3k:3k+3],
// TargetPositions[3k:3k+3], Colors[4k:4k+4], Labels[k] and LabelIDs[k].
//
// Only the first Count slots are meaningful. The lanes belong to the
// Allocator that produced the buffer and are rewritten by its next fill, so
// consumers must copy whatever they need to keep.
type SegmentBuffer struct {
	SourcePositions []float32
	TargetPositions []float32
	Colors          []uint8
	Labels          []string
	LabelIDs        []LabelID

	// Count is the number of populated slots.
	Count int
}

// Cap returns the number of slots the lanes can hold.
func (b *SegmentBuffer) Cap() int {
	return len(b.LabelIDs)
}

// Write stores one segment at slot i. i must be below Cap.
func (b *SegmentBuffer) Write(i int, src, dst Vec3, c *RGBA8, label LabelID, name string) {
	p := i * PositionStride
	sp := b.SourcePositions[p : p+PositionStride : p+PositionStride]
	sp[0], sp[1], sp[2] = float32(src.X), float32(src.Y), float32(src.Z)
	tp := b.TargetPositions[p : p+PositionStride : p+PositionStride]
	tp[0], tp[1], tp[2] = float32(dst.X), float32(dst.Y), float32(dst.Z)
	c.PutTo(b.Colors[i*ColorStride:])
	b.Labels[i] = name
	b.LabelIDs[i] = label
}

// Source returns the source position of slot i.
func (b *SegmentBuffer) Source(i int) [3]float32 {
	p := i * PositionStride
	return [3]float32{b.SourcePositions[p], b.SourcePositions[p+1], b.SourcePositions[p+2]}
}

// Target returns the target position of slot i.
func (b *SegmentBuffer) Target(i int) [3]float32 {
	p := i * PositionStride
	return [3]float32{b.TargetPositions[p], b.TargetPositions[p+1], b.TargetPositions[p+2]}
}

// Color returns the color of slot i.
func (b *SegmentBuffer) Color(i int) RGBA8 {
	p := i * ColorStride
	return RGBA8{R: b.Colors[p], G: b.Colors[p+1], B: b.Colors[p+2], A: b.Colors[p+3]}
}

// WorstCaseCapacity returns the number of slots a fill of a rows x cols grid
// can write when every edge straddles the cutoff plane.
func WorstCaseCapacity(rows, cols, subdivisions int) int {
	if rows <= 0 || cols <= 0 {
		return 0
	}
	edges := rows*(cols-1) + (rows-1)*cols
	return edges * 2 * subdivisions
}

// Allocator owns one SegmentBuffer and reuses its lanes across fills.
// Capacity grows on demand and never shrinks.
//
// An Allocator is not safe for concurrent use.
type Allocator struct {
	buf   SegmentBuffer
	grows int
}

// NewAllocator creates an allocator with room for initial slots.
func NewAllocator(initial int) *Allocator {
	a := &Allocator{}
	if initial > 0 {
		a.resize(initial)
		a.grows = 0
	}
	return a
}

// Acquire returns the pooled buffer with at least required slots and
// Count reset to zero. Lanes are reallocated only when required exceeds the
// current capacity; the previous contents are then discarded.
func (a *Allocator) Acquire(required int) *SegmentBuffer {
	if required > a.buf.Cap() {
		grown := a.buf.Cap() + a.buf.Cap()/2
		if grown < required {
			grown = required
		}
		a.resize(grown)
	}
	a.buf.Count = 0
	return &a.buf
}

// Cap returns the current slot capacity.
func (a *Allocator) Cap() int {
	return a.buf.Cap()
}

// Grows returns how many times the lanes have been reallocated after
// construction.
func (a *Allocator) Grows() int {
	return a.grows
}

func (a *Allocator) resize(slots int) {
	Logger().Debug("surfacegrid: growing segment lanes",
		slog.Int("from", a.buf.Cap()), slog.Int("to", slots))
	a.buf = SegmentBuffer{
		SourcePositions: make([]float32, slots*PositionStride),
		TargetPositions: make([]float32, slots*PositionStride),
		Colors:          make([]uint8, slots*ColorStride),
		Labels:          make([]string, slots),
		LabelIDs:        make([]LabelID, slots),
	}
	a.grows++
}

// Cursor appends segments to a SegmentBuffer slot by slot and carries the
// Z range and scratch color used to shade them.
type Cursor struct {
	buf        *SegmentBuffer
	limit      int
	n          int
	zMin, zMax float64
	scratch    RGBA8
}

// NewCursor starts writing at slot 0 of buf. Writes are limited to the first
// limit slots; limit is clamped to the buffer capacity.
func NewCursor(buf *SegmentBuffer, limit int, zMin, zMax float64) Cursor {
	if limit > buf.Cap() {
		limit = buf.Cap()
	}
	return Cursor{buf: buf, limit: limit, zMin: zMin, zMax: zMax}
}

// Len returns the number of segments written so far.
func (c *Cursor) Len() int {
	return c.n
}

// push writes one segment colored from g at t, panicking with
// ErrCapacityExceeded when the reserved capacity is exhausted.
func (c *Cursor) push(src, dst Vec3, g *Gradient, t float64, label LabelID, name string) {
	if c.n >= c.limit {
		panic(ErrCapacityExceeded)
	}
	h := g.At(t)
	HSLToRGB(h.H, h.S, h.L, h.Alpha, &c.scratch)
	c.buf.Write(c.n, src, dst, &c.scratch, label, name)
	c.n++
}
