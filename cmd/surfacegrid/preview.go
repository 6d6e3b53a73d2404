package main

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/gogpu/surfacegrid"
)

const (
	previewMargin   = 16
	segmentWidth    = 1.0
	highlightWidth  = 3.0
	backgroundShade = 0x14
)

// projection maps grid X/Y to pixel coordinates, dropping Z.
type projection struct {
	minX, minY float32
	scale      float32
	offX, offY float32
	height     float32
}

func newProjection(h *surfacegrid.SegmentBufferHandle, width, height int) projection {
	minX, minY := float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY := float32(math.Inf(-1)), float32(math.Inf(-1))
	for i := 0; i < h.Count; i++ {
		for _, p := range [2][3]float32{h.Buffer.Source(i), h.Buffer.Target(i)} {
			minX, maxX = min(minX, p[0]), max(maxX, p[0])
			minY, maxY = min(minY, p[1]), max(maxY, p[1])
		}
	}
	spanX, spanY := maxX-minX, maxY-minY
	availW := float32(width - 2*previewMargin)
	availH := float32(height - 2*previewMargin)
	scale := float32(1)
	if spanX > 0 || spanY > 0 {
		scale = min(availW/max(spanX, 1e-6), availH/max(spanY, 1e-6))
	}
	return projection{
		minX:   minX,
		minY:   minY,
		scale:  scale,
		offX:   previewMargin + (availW-spanX*scale)/2,
		offY:   previewMargin + (availH-spanY*scale)/2,
		height: float32(height),
	}
}

// point returns the pixel position of p. Y grows upwards on screen.
func (pr projection) point(p [3]float32) (x, y float32) {
	return pr.offX + (p[0]-pr.minX)*pr.scale, pr.height - (pr.offY + (p[1]-pr.minY)*pr.scale)
}

// writePreview rasterizes every segment as a thin quad and saves a PNG.
// Highlighted segments are drawn again on top, wider.
func writePreview(path string, width, height int, h *surfacegrid.SegmentBufferHandle, subset *surfacegrid.HighlightSubset) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Gray{Y: backgroundShade}), image.Point{}, draw.Src)

	if h.Count > 0 {
		pr := newProjection(h, width, height)
		var z vector.Rasterizer
		for i := 0; i < h.Count; i++ {
			drawSegment(img, &z, pr, h.Buffer.Source(i), h.Buffer.Target(i), h.Buffer.Color(i), segmentWidth)
		}
		if subset != nil {
			for i := 0; i < subset.Count; i++ {
				src := [3]float32(subset.SourcePositions[i*surfacegrid.PositionStride:])
				dst := [3]float32(subset.TargetPositions[i*surfacegrid.PositionStride:])
				c := subset.Colors[i*surfacegrid.ColorStride:]
				drawSegment(img, &z, pr, src, dst, surfacegrid.RGBA8{R: c[0], G: c[1], B: c[2], A: c[3]}, highlightWidth)
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// drawSegment fills the quad of the given width around src-dst. The
// rasterizer only covers the quad's bounding box.
func drawSegment(img *image.RGBA, z *vector.Rasterizer, pr projection, src, dst [3]float32, c surfacegrid.RGBA8, width float32) {
	x0, y0 := pr.point(src)
	x1, y1 := pr.point(dst)

	dx, dy := x1-x0, y1-y0
	length := float32(math.Hypot(float64(dx), float64(dy)))
	var nx, ny float32
	if length > 0 {
		nx, ny = -dy/length*width/2, dx/length*width/2
	} else {
		nx, ny = width/2, 0
		x0, x1 = x0-width/2, x1+width/2
	}

	pad := width
	bx0 := int(math.Floor(float64(min(x0, x1) - pad)))
	by0 := int(math.Floor(float64(min(y0, y1) - pad)))
	bx1 := int(math.Ceil(float64(max(x0, x1) + pad)))
	by1 := int(math.Ceil(float64(max(y0, y1) + pad)))
	r := image.Rect(bx0, by0, bx1, by1).Intersect(img.Bounds())
	if r.Empty() {
		return
	}

	ox, oy := float32(r.Min.X), float32(r.Min.Y)
	z.Reset(r.Dx(), r.Dy())
	z.DrawOp = draw.Over
	z.MoveTo(x0+nx-ox, y0+ny-oy)
	z.LineTo(x1+nx-ox, y1+ny-oy)
	z.LineTo(x1-nx-ox, y1-ny-oy)
	z.LineTo(x0-nx-ox, y0-ny-oy)
	z.ClosePath()
	z.Draw(img, r, image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}), image.Point{})
}
