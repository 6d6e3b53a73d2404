package surfacegrid

import "fmt"

// HSL is a color in hue, saturation, lightness form.
// H is in degrees [0, 360), S and L are in [0, 1], Alpha is in [0, 255].
type HSL struct {
	H, S, L, Alpha float64
}

// RGBA8 converts the color to 8-bit RGBA.
func (c HSL) RGBA8() RGBA8 {
	var out RGBA8
	HSLToRGB(c.H, c.S, c.L, c.Alpha, &out)
	return out
}

// Gradient is a linear color ramp between two HSL endpoints.
type Gradient struct {
	Low, High HSL
}

// At interpolates H, S and L at t. Alpha is taken from Low.
// t is not clamped.
func (g *Gradient) At(t float64) HSL {
	return HSL{
		H:     g.Low.H + (g.High.H-g.Low.H)*t,
		S:     g.Low.S + (g.High.S-g.Low.S)*t,
		L:     g.Low.L + (g.High.L-g.Low.L)*t,
		Alpha: g.Low.Alpha,
	}
}

// NormalizedT maps z into the [zMin, zMax] range.
// A degenerate range yields 0.5. Values outside the range are not clamped.
func NormalizedT(z, zMin, zMax float64) float64 {
	if zMax == zMin {
		return 0.5
	}
	return (z - zMin) / (zMax - zMin)
}

// Direction is the lattice direction of an edge.
type Direction uint8

const (
	// DirX marks row edges, which run along a row and vary the column index.
	DirX Direction = iota
	// DirY marks column edges, which run along a column and vary the row index.
	DirY
)

// GradientKey identifies one of the four gradients.
type GradientKey uint8

const (
	XBelow GradientKey = iota
	XAbove
	YBelow
	YAbove

	numGradients = 4
)

var gradientKeyNames = [numGradients]string{"xBelow", "xAbove", "yBelow", "yAbove"}

// String returns the persisted name of the key.
func (k GradientKey) String() string {
	if int(k) < len(gradientKeyNames) {
		return gradientKeyNames[k]
	}
	return fmt.Sprintf("GradientKey(%d)", k)
}

// KeyFor returns the gradient key for an edge direction and side.
func KeyFor(dir Direction, side Side) GradientKey {
	return GradientKey(uint8(dir)<<1 | uint8(side))
}

// Gradients holds the four gradients, indexed by GradientKey.
type Gradients [numGradients]Gradient

// For returns the gradient used by edges of the given direction on the given
// side of the cutoff plane.
func (gs *Gradients) For(dir Direction, side Side) *Gradient {
	return &gs[KeyFor(dir, side)]
}

// DefaultGradients returns the configuration used when no valid persisted
// gradients are available.
func DefaultGradients() Gradients {
	return Gradients{
		XBelow: {Low: HSL{220, 0.7, 0.25, 255}, High: HSL{220, 0.6, 0.55, 255}},
		XAbove: {Low: HSL{30, 0.85, 0.45, 255}, High: HSL{50, 0.95, 0.65, 255}},
		YBelow: {Low: HSL{190, 0.6, 0.3, 255}, High: HSL{180, 0.5, 0.6, 255}},
		YAbove: {Low: HSL{0, 0.75, 0.45, 255}, High: HSL{20, 0.9, 0.65, 255}},
	}
}
