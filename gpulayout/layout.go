package gpulayout

import (
	"unsafe"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/surfacegrid"
)

// Shader locations of the segment attributes.
const (
	LocationSource uint32 = 0
	LocationTarget uint32 = 1
	LocationColor  uint32 = 2
)

// Byte strides of the three lanes.
const (
	PositionStrideBytes = surfacegrid.PositionStride * 4
	ColorStrideBytes    = surfacegrid.ColorStride
)

// VerticesPerSegment is the vertex count of one instance.
const VerticesPerSegment = 2

// SegmentTopology is the primitive topology segments are drawn with.
const SegmentTopology = gputypes.PrimitiveTopologyLineList

// LaneBufferUsage is the usage every lane buffer must be created with.
const LaneBufferUsage = gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst

// VertexBufferLayout describes a vertex buffer layout.
type VertexBufferLayout struct {
	// ArrayStride is the byte stride between consecutive elements.
	ArrayStride uint64

	// StepMode is the input rate (per vertex or per instance).
	StepMode gputypes.VertexStepMode

	// Attributes describes the vertex attributes in this buffer.
	Attributes []VertexAttribute
}

// VertexAttribute describes a vertex attribute.
type VertexAttribute struct {
	// ShaderLocation is the attribute location in the shader.
	ShaderLocation uint32

	// Format is the attribute data format.
	Format gputypes.VertexFormat

	// Offset is the byte offset from the start of the element.
	Offset uint64
}

// SegmentVertexLayouts returns the layouts of the source, target and color
// lanes, in that order.
func SegmentVertexLayouts() []VertexBufferLayout {
	return []VertexBufferLayout{
		{
			ArrayStride: PositionStrideBytes,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []VertexAttribute{
				{ShaderLocation: LocationSource, Format: gputypes.VertexFormatFloat32x3},
			},
		},
		{
			ArrayStride: PositionStrideBytes,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []VertexAttribute{
				{ShaderLocation: LocationTarget, Format: gputypes.VertexFormatFloat32x3},
			},
		},
		{
			ArrayStride: ColorStrideBytes,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []VertexAttribute{
				{ShaderLocation: LocationColor, Format: gputypes.VertexFormatUnorm8x4},
			},
		},
	}
}

// Lanes are byte views of the populated part of a segment buffer.
// They alias the buffer's memory and are only valid until its next fill.
type Lanes struct {
	Source []byte
	Target []byte
	Color  []byte

	// Instances is the instance count to draw.
	Instances uint32
}

// LaneBytes returns byte views over the first count slots of buf without
// copying.
func LaneBytes(buf *surfacegrid.SegmentBuffer, count int) Lanes {
	if count <= 0 {
		return Lanes{}
	}
	src := buf.SourcePositions[:count*surfacegrid.PositionStride]
	dst := buf.TargetPositions[:count*surfacegrid.PositionStride]
	return Lanes{
		Source:    float32Bytes(src),
		Target:    float32Bytes(dst),
		Color:     buf.Colors[:count*surfacegrid.ColorStride],
		Instances: uint32(count),
	}
}

// HandleLanes is LaneBytes for the populated part of a fill result.
func HandleLanes(h *surfacegrid.SegmentBufferHandle) Lanes {
	return LaneBytes(h.Buffer, h.Count)
}

// SubsetLanes returns byte views of a highlight subset. A nil subset yields
// empty lanes.
func SubsetLanes(s *surfacegrid.HighlightSubset) Lanes {
	if s == nil || s.Count == 0 {
		return Lanes{}
	}
	return Lanes{
		Source:    float32Bytes(s.SourcePositions),
		Target:    float32Bytes(s.TargetPositions),
		Color:     s.Colors,
		Instances: uint32(s.Count),
	}
}

// Sizes returns the byte size of each lane for count segments, for sizing
// GPU buffers up front.
func Sizes(count int) (source, target, color uint64) {
	n := uint64(count)
	return n * PositionStrideBytes, n * PositionStrideBytes, n * ColorStrideBytes
}

func float32Bytes(v []float32) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*4) //nolint:gosec // little-endian lane view
}
