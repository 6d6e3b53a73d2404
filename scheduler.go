package surfacegrid

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Filler is the operation a Scheduler serializes. *Pipeline implements it.
type Filler interface {
	FillSegments(grid *Grid, cutoff, zMin, zMax float64, gradients *Gradients) (*SegmentBufferHandle, error)
}

// Request holds the inputs of one fill.
type Request struct {
	Grid       *Grid
	Cutoff     float64
	ZMin, ZMax float64
	Gradients  Gradients
}

// fillResult carries a handle together with the sequence number of the
// request it was built from.
type fillResult struct {
	handle *SegmentBufferHandle
	err    error
	seq    uint64
}

const fillKeyName = "fill"

// Scheduler serializes fills from concurrent callers onto one Filler.
//
// Only the newest pending request is kept. While a fill runs, newer
// submissions replace each other and the worker picks up the latest one when
// it finishes, so superseded requests never run. Every caller receives a
// handle built from a request at least as new as its own.
type Scheduler struct {
	filler Filler
	group  singleflight.Group

	mu         sync.Mutex
	pending    *Request
	pendingSeq uint64
	seq        uint64
	last       fillResult

	runs atomic.Uint64
}

// NewScheduler creates a scheduler that owns f. f must not be used directly
// while the scheduler is in use.
func NewScheduler(f Filler) *Scheduler {
	return &Scheduler{filler: f}
}

// Submit queues req and waits for a handle that reflects it or a newer
// request. Cancelling ctx stops the wait but never interrupts a running fill.
func (s *Scheduler) Submit(ctx context.Context, req Request) (*SegmentBufferHandle, error) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.pending = &req
	s.pendingSeq = seq
	s.mu.Unlock()

	for {
		ch := s.group.DoChan(fillKeyName, s.drain)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-ch:
			if res.Err != nil {
				return nil, res.Err
			}
			out := res.Val.(fillResult)
			if out.seq >= seq {
				return out.handle, out.err
			}
			// Joined a worker that finished before seeing req; go again.
		}
	}
}

// Runs returns how many fills have been executed.
func (s *Scheduler) Runs() uint64 {
	return s.runs.Load()
}

// drain runs fills until no request is pending and returns the newest
// result, which may come from an earlier drain.
func (s *Scheduler) drain() (any, error) {
	for {
		s.mu.Lock()
		req, seq := s.pending, s.pendingSeq
		if req == nil {
			out := s.last
			s.mu.Unlock()
			return out, nil
		}
		s.pending = nil
		s.mu.Unlock()

		h, err := s.filler.FillSegments(req.Grid, req.Cutoff, req.ZMin, req.ZMax, &req.Gradients)
		s.runs.Add(1)

		s.mu.Lock()
		s.last = fillResult{handle: h, err: err, seq: seq}
		s.mu.Unlock()
	}
}
