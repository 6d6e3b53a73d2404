package surfacegrid

import (
	"fmt"
	"math"
)

// Grid is a regular surface sampled on a rows x cols lattice.
// (X[j][i], Y[j][i], Z[j][i]) is the position of the vertex in row j, column i.
type Grid struct {
	X, Y, Z [][]float64
}

// Rows returns the number of rows in the grid.
func (g *Grid) Rows() int {
	return len(g.Z)
}

// Cols returns the number of columns in the grid.
// An empty grid has zero columns.
func (g *Grid) Cols() int {
	if len(g.Z) == 0 {
		return 0
	}
	return len(g.Z[0])
}

// Vertex returns the position of the vertex at row j, column i.
func (g *Grid) Vertex(j, i int) Vec3 {
	return Vec3{X: g.X[j][i], Y: g.Y[j][i], Z: g.Z[j][i]}
}

// Validate reports whether X, Y and Z share the same shape.
// A grid with no rows, or with rows of zero length, is valid.
func (g *Grid) Validate() error {
	rows := len(g.Z)
	if len(g.X) != rows || len(g.Y) != rows {
		return fmt.Errorf("%w: row counts x=%d y=%d z=%d", ErrGridShape, len(g.X), len(g.Y), rows)
	}
	if rows == 0 {
		return nil
	}
	cols := len(g.Z[0])
	for j := 0; j < rows; j++ {
		if len(g.X[j]) != cols || len(g.Y[j]) != cols || len(g.Z[j]) != cols {
			return fmt.Errorf("%w: row %d has lengths x=%d y=%d z=%d, want %d",
				ErrGridShape, j, len(g.X[j]), len(g.Y[j]), len(g.Z[j]), cols)
		}
	}
	return nil
}

// ZRange returns the minimum and maximum Z over all vertices.
// An empty grid returns (0, 0).
func (g *Grid) ZRange() (zMin, zMax float64) {
	zMin, zMax = math.Inf(1), math.Inf(-1)
	for _, row := range g.Z {
		for _, z := range row {
			if z < zMin {
				zMin = z
			}
			if z > zMax {
				zMax = z
			}
		}
	}
	if zMin > zMax {
		return 0, 0
	}
	return zMin, zMax
}

// NewGrid builds a rows x cols grid by sampling fn at every lattice point.
// fn receives the row and column index and returns the vertex position.
func NewGrid(rows, cols int, fn func(j, i int) Vec3) *Grid {
	g := &Grid{
		X: make([][]float64, rows),
		Y: make([][]float64, rows),
		Z: make([][]float64, rows),
	}
	for j := 0; j < rows; j++ {
		g.X[j] = make([]float64, cols)
		g.Y[j] = make([]float64, cols)
		g.Z[j] = make([]float64, cols)
		for i := 0; i < cols; i++ {
			v := fn(j, i)
			g.X[j][i], g.Y[j][i], g.Z[j][i] = v.X, v.Y, v.Z
		}
	}
	return g
}
