package surfacegrid

// Vec3 is a position in grid space.
type Vec3 struct {
	X, Y, Z float64
}

// Side is the side of the cutoff plane a point lies on.
type Side uint8

const (
	// Below holds z <= cutoff. Points exactly on the plane are below.
	Below Side = iota
	// Above holds z > cutoff.
	Above
)

// String returns "below" or "above".
func (s Side) String() string {
	if s == Above {
		return "above"
	}
	return "below"
}

// SideOf classifies z against the cutoff.
func SideOf(z, cutoff float64) Side {
	if z > cutoff {
		return Above
	}
	return Below
}

// EdgeClassification describes how an edge relates to the cutoff plane.
//
// When Split is false the whole edge lies on Side. When Split is true the
// edge crosses the plane at Mid: the half from the source to Mid lies on
// First and the half from Mid to the target lies on Second.
type EdgeClassification struct {
	Split  bool
	Side   Side
	Mid    Vec3
	First  Side
	Second Side
}

// ClassifyAndSplit classifies the edge src->dst against cutoff and, when it
// straddles the plane, computes the crossing point.
//
// The crossing point's Z is set to cutoff rather than interpolated, so it lies
// exactly on the plane.
func ClassifyAndSplit(src, dst Vec3, cutoff float64) EdgeClassification {
	srcSide := SideOf(src.Z, cutoff)
	dstSide := SideOf(dst.Z, cutoff)
	if srcSide == dstSide {
		return EdgeClassification{Side: srcSide}
	}

	f := (cutoff - src.Z) / (dst.Z - src.Z)
	return EdgeClassification{
		Split: true,
		Mid: Vec3{
			X: src.X + (dst.X-src.X)*f,
			Y: src.Y + (dst.Y-src.Y)*f,
			Z: cutoff,
		},
		First:  srcSide,
		Second: dstSide,
	}
}
