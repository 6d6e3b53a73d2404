// Command surfacegrid fills the segment buffer for a sample surface and
// reports what it produced.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/surfacegrid"
	"github.com/gogpu/surfacegrid/gpulayout"
	"github.com/gogpu/surfacegrid/snapshot"
)

func main() {
	var (
		rows      = flag.Int("rows", 64, "grid rows")
		cols      = flag.Int("cols", 64, "grid columns")
		cutoff    = flag.String("cutoff", "50", "cutoff as a percentage of the Z range")
		gradients = flag.String("gradients", "", "JSON file with persisted gradients")
		subdiv    = flag.Int("subdiv", surfacegrid.DefaultSubdivisions, "pieces per edge")
		selection = flag.String("select", "", "comma separated labels to highlight, e.g. row-3,col-7")
		pngPath   = flag.String("png", "", "write a top-down preview to this file")
		width     = flag.Int("width", 800, "preview width")
		height    = flag.Int("height", 800, "preview height")
		snapPath  = flag.String("snapshot", "", "write a segment snapshot to this file")
		compress  = flag.String("compress", "zstd", "snapshot compression: none, lz4 or zstd")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if err := validateSize(*rows, *cols, *width, *height); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	if *verbose {
		surfacegrid.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	grid := sampleSurface(*rows, *cols)
	zMin, zMax := grid.ZRange()

	gs := surfacegrid.DefaultGradients()
	if *gradients != "" {
		data, err := os.ReadFile(*gradients)
		if err != nil {
			log.Fatalf("Failed to read gradients: %v", err)
		}
		gs = surfacegrid.LoadGradients(data)
	}
	pct := surfacegrid.LoadCutoffPercent(*cutoff)
	cut := surfacegrid.CutoffFromPercent(pct, zMin, zMax)

	sched := surfacegrid.NewScheduler(surfacegrid.NewPipeline(surfacegrid.WithSubdivisions(*subdiv)))
	h, err := sched.Submit(context.Background(), surfacegrid.Request{
		Grid:      grid,
		Cutoff:    cut,
		ZMin:      zMin,
		ZMax:      zMax,
		Gradients: gs,
	})
	if err != nil {
		log.Fatalf("Failed to fill segments: %v", err)
	}

	var subset *surfacegrid.HighlightSubset
	if *selection != "" {
		sel, err := surfacegrid.NewSelection(strings.Split(*selection, ",")...)
		if err != nil {
			log.Fatalf("Invalid selection: %v", err)
		}
		subset = surfacegrid.ExtractSubset(h.Buffer, sel)
	}

	printStats(grid, pct, cut, h, subset)

	if *pngPath != "" {
		if err := writePreview(*pngPath, *width, *height, h, subset); err != nil {
			log.Fatalf("Failed to save preview: %v", err)
		}
		log.Printf("Preview saved to %s (%dx%d)\n", *pngPath, *width, *height)
	}

	if *snapPath != "" {
		c, err := snapshot.ParseCompression(*compress)
		if err != nil {
			log.Fatalf("Invalid compression: %v", err)
		}
		if err := writeSnapshot(*snapPath, h, c); err != nil {
			log.Fatalf("Failed to save snapshot: %v", err)
		}
		log.Printf("Snapshot saved to %s (%s)\n", *snapPath, c)
	}
}

// validateSize rejects grid and preview dimensions that cannot be allocated.
// An empty grid is allowed; a preview needs at least one pixel.
func validateSize(rows, cols, width, height int) error {
	switch {
	case rows < 0 || cols < 0:
		return fmt.Errorf("grid size %dx%d must not be negative", rows, cols)
	case width <= 0 || height <= 0:
		return fmt.Errorf("preview size %dx%d must be positive", width, height)
	}
	return nil
}

// sampleSurface samples sin(x)cos(y) over [-pi, pi] on both axes.
func sampleSurface(rows, cols int) *surfacegrid.Grid {
	step := func(k, n int) float64 {
		if n < 2 {
			return 0
		}
		return -math.Pi + 2*math.Pi*float64(k)/float64(n-1)
	}
	return surfacegrid.NewGrid(rows, cols, func(j, i int) surfacegrid.Vec3 {
		x, y := step(i, cols), step(j, rows)
		return surfacegrid.Vec3{X: x, Y: y, Z: math.Sin(x) * math.Cos(y)}
	})
}

func printStats(g *surfacegrid.Grid, pct int, cutoff float64, h *surfacegrid.SegmentBufferHandle, subset *surfacegrid.HighlightSubset) {
	p := message.NewPrinter(language.English)
	p.Printf("grid:        %d x %d\n", g.Rows(), g.Cols())
	p.Printf("cutoff:      %d%% (z = %.4f)\n", pct, cutoff)
	p.Printf("segments:    %d of %d slots\n", h.Count, h.Buffer.Cap())
	p.Printf("generation:  %d (%s)\n", h.Generation, h.Dirty)

	src, dst, col := gpulayout.Sizes(h.Count)
	p.Printf("lane bytes:  %d + %d + %d\n", src, dst, col)
	if subset != nil {
		p.Printf("highlighted: %d segments\n", subset.Count)
	}
}

func writeSnapshot(path string, h *surfacegrid.SegmentBufferHandle, c snapshot.Compression) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := snapshot.Write(f, h, c); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
