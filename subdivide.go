package surfacegrid

// DefaultSubdivisions is the number of sub-segments each edge, or each half
// of a split edge, is divided into.
const DefaultSubdivisions = 8

// Subdivide writes n uniform sub-segments of src->dst to c.
//
// Sub-segment k spans the fractions k/n to (k+1)/n of the edge. Its color is
// g evaluated at the normalized height of its midpoint. Coordinates are
// interpolated per scalar so the loop builds no intermediate values on the
// heap.
func Subdivide(c *Cursor, src, dst Vec3, g *Gradient, n int, label LabelID, name string) {
	dx, dy, dz := dst.X-src.X, dst.Y-src.Y, dst.Z-src.Z
	a := src
	for k := 1; k <= n; k++ {
		var b Vec3
		if k == n {
			b = dst
		} else {
			f := float64(k) / float64(n)
			b = Vec3{X: src.X + dx*f, Y: src.Y + dy*f, Z: src.Z + dz*f}
		}
		t := NormalizedT((a.Z+b.Z)*0.5, c.zMin, c.zMax)
		c.push(a, b, g, t, label, name)
		a = b
	}
}
