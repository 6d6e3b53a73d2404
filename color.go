package surfacegrid

import "github.com/gogpu/surfacegrid/internal/color"

// RGBA8 is an 8-bit RGBA color as stored in the color lane.
type RGBA8 = color.ColorU8

// HSLToRGB converts h in [0, 360), s and l in [0, 1] and alpha in [0, 255]
// to 8-bit RGBA, writing into out and returning it.
//
// This is an unchecked fast path: hue outside [0, 360) is undefined.
// The result aliases out; callers reusing out must copy the value if they
// need to keep it.
func HSLToRGB(h, s, l, alpha float64, out *RGBA8) *RGBA8 {
	return color.HSLToRGB(h, s, l, alpha, out)
}
