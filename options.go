package surfacegrid

// PipelineOption configures a Pipeline during creation.
//
// Example:
//
//	// Default: 8 subdivisions, allocator sized on first fill
//	p := surfacegrid.NewPipeline()
//
//	// Shared allocator sized up front for a 200x200 grid
//	alloc := surfacegrid.NewAllocator(surfacegrid.WorstCaseCapacity(200, 200, 8))
//	p := surfacegrid.NewPipeline(surfacegrid.WithAllocator(alloc))
type PipelineOption func(*pipelineOptions)

// pipelineOptions holds optional configuration for Pipeline creation.
type pipelineOptions struct {
	subdivisions    int
	allocator       *Allocator
	initialCapacity int
}

// defaultPipelineOptions returns the default pipeline options.
func defaultPipelineOptions() pipelineOptions {
	return pipelineOptions{
		subdivisions: DefaultSubdivisions,
	}
}

// WithSubdivisions sets how many sub-segments each edge piece is divided into.
// Values below 1 are treated as 1.
func WithSubdivisions(n int) PipelineOption {
	return func(o *pipelineOptions) {
		if n < 1 {
			n = 1
		}
		o.subdivisions = n
	}
}

// WithAllocator injects the allocator whose lanes the pipeline fills.
// The allocator must not be shared with another pipeline.
func WithAllocator(a *Allocator) PipelineOption {
	return func(o *pipelineOptions) {
		o.allocator = a
	}
}

// WithInitialCapacity sizes a pipeline-created allocator up front.
// It is ignored when WithAllocator is given.
func WithInitialCapacity(slots int) PipelineOption {
	return func(o *pipelineOptions) {
		o.initialCapacity = slots
	}
}
