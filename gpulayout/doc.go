// Package gpulayout describes how a surfacegrid segment buffer is bound as
// GPU vertex data.
//
// The lanes of a [surfacegrid.SegmentBuffer] are uploaded as three separate
// instance-rate vertex buffers without repacking:
//
//	location 0  source positions  Float32x3  12 bytes/segment
//	location 1  target positions  Float32x3  12 bytes/segment
//	location 2  colors            Unorm8x4    4 bytes/segment
//
// Each instance is drawn as a two-vertex line list by [SegmentShaderWGSL].
// The lane slices are reused between fills, so a renderer decides whether to
// re-upload or rebind from the handle's DirtyReason rather than from slice
// identity.
package gpulayout
