package gpulayout

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

// SegmentShaderWGSL draws instanced segments bound with SegmentVertexLayouts.
// It expects a mat4x4 view-projection uniform at group 0, binding 0.
//
//go:embed shaders/segment.wgsl
var SegmentShaderWGSL string

// Shader entry points.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// CompileSegmentShader compiles SegmentShaderWGSL to SPIR-V words.
func CompileSegmentShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(SegmentShaderWGSL)
	if err != nil {
		return nil, fmt.Errorf("gpulayout: compile segment shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}
