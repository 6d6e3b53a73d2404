package surfacegrid

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gateFiller blocks every fill until release is closed and records the
// cutoffs it was asked to fill.
type gateFiller struct {
	started chan struct{}
	release chan struct{}

	mu      sync.Mutex
	cutoffs []float64
}

func newGateFiller() *gateFiller {
	return &gateFiller{started: make(chan struct{}, 16), release: make(chan struct{})}
}

func (f *gateFiller) FillSegments(_ *Grid, cutoff, _, _ float64, _ *Gradients) (*SegmentBufferHandle, error) {
	f.started <- struct{}{}
	<-f.release
	f.mu.Lock()
	f.cutoffs = append(f.cutoffs, cutoff)
	f.mu.Unlock()
	return &SegmentBufferHandle{Count: int(cutoff)}, nil
}

func (f *gateFiller) seen() []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]float64(nil), f.cutoffs...)
}

func TestSchedulerSequential(t *testing.T) {
	g := randomGrid(rand.New(rand.NewSource(1)), 8, 8)
	zMin, zMax := g.ZRange()
	s := NewScheduler(NewPipeline())

	for i, cutoff := range []float64{-0.5, 0, 0.5} {
		h, err := s.Submit(context.Background(), Request{Grid: g, Cutoff: cutoff, ZMin: zMin, ZMax: zMax, Gradients: DefaultGradients()})
		require.NoError(t, err)
		require.NotNil(t, h)
		assert.Equal(t, uint64(i+1), h.Generation)
	}
	assert.Equal(t, uint64(3), s.Runs())
}

func TestSchedulerCoalescesToLatest(t *testing.T) {
	f := newGateFiller()
	s := NewScheduler(f)

	type result struct {
		h   *SegmentBufferHandle
		err error
	}
	first := make(chan result, 1)
	go func() {
		h, err := s.Submit(context.Background(), Request{Cutoff: 1})
		first <- result{h, err}
	}()
	<-f.started // fill for cutoff 1 is running

	var wg sync.WaitGroup
	results := make([]result, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h, err := s.Submit(context.Background(), Request{Cutoff: float64(10 + i)})
			results[i] = result{h, err}
		}(i)
	}
	// Wait until every submission is queued behind the running fill.
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.seq == 6
	}, time.Second, time.Millisecond)
	close(f.release)
	wg.Wait()

	seen := f.seen()
	require.Len(t, seen, 2, "superseded requests must not run")
	assert.Equal(t, 1.0, seen[0])
	last := seen[1]
	assert.GreaterOrEqual(t, last, 10.0)

	r := <-first
	require.NoError(t, r.err)
	assert.Equal(t, int(last), r.h.Count)
	for _, r := range results {
		require.NoError(t, r.err)
		assert.Equal(t, int(last), r.h.Count, "every waiter gets the newest fill")
	}
	assert.Equal(t, uint64(2), s.Runs())
}

func TestSchedulerContextCancel(t *testing.T) {
	f := newGateFiller()
	s := NewScheduler(f)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(ctx, Request{Cutoff: 3})
		done <- err
	}()
	<-f.started
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	// The running fill still completes.
	close(f.release)
	h, err := s.Submit(context.Background(), Request{Cutoff: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, h.Count)
	assert.Equal(t, []float64{3, 4}, f.seen())
}

func TestSchedulerPropagatesError(t *testing.T) {
	s := NewScheduler(NewPipeline())
	bad := &Grid{X: [][]float64{{0}}, Y: [][]float64{}, Z: [][]float64{{0}}}
	_, err := s.Submit(context.Background(), Request{Grid: bad})
	assert.ErrorIs(t, err, ErrGridShape)
}
