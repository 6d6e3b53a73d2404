// Package color provides the allocation-free color conversions used by the
// segment pipeline.
package color

// ColorU8 represents a color with uint8 components in [0,255].
// RGB components are sRGB encoded. Alpha is linear.
//
// The layout matches a Unorm8x4 vertex attribute, so a ColorU8 can be copied
// into a color lane with a single slice copy.
type ColorU8 struct {
	R, G, B, A uint8
}

// PutTo writes the four channels to dst[0:4].
// dst must have room for four values.
func (c *ColorU8) PutTo(dst []uint8) {
	_ = dst[3]
	dst[0] = c.R
	dst[1] = c.G
	dst[2] = c.B
	dst[3] = c.A
}
