package compositor

import (
	"context"
	"errors"
	"math"

	"golang.org/x/sync/errgroup"
)

const defaultPlanChunk = 256

// MaxPlanFrames bounds a single plan: 24h at 60fps.
const MaxPlanFrames = 24 * 60 * 60 * 60

var (
	ErrEmptyRange    = errors.New("export range is empty")
	ErrTooManyFrames = errors.New("export range has too many frames")
)

// FrameCount is the number of frames sampled from from to to inclusive
// at fps. Counts past MaxPlanFrames saturate at MaxPlanFrames+1.
func FrameCount(from, to float64, fps int) int {
	if fps <= 0 || math.IsNaN(from) || math.IsNaN(to) || to < from {
		return 0
	}
	n := math.Floor((to-from)*float64(fps)+1e-9) + 1
	if n > MaxPlanFrames {
		return MaxPlanFrames + 1
	}
	return int(n)
}

// PlanFrames resolves every frame of [from, to] at fps. Chunks of frames
// resolve concurrently on up to workers goroutines; replay flags are
// then assigned in playback order.
func PlanFrames(ctx context.Context, scene Scene, from, to float64, fps, workers int) ([]Frame, error) {
	n := FrameCount(from, to, fps)
	if n == 0 {
		return nil, ErrEmptyRange
	}
	if n > MaxPlanFrames {
		return nil, ErrTooManyFrames
	}
	if workers < 1 {
		workers = 1
	}

	frames := make([]Frame, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for lo := 0; lo < n; lo += defaultPlanChunk {
		lo := lo
		hi := lo + defaultPlanChunk
		if hi > n {
			hi = n
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				frames[i] = Resolve(from+float64(i)/float64(fps), scene)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tracker := NewTracker()
	for i := range frames {
		tracker.Mark(&frames[i])
	}
	return frames, nil
}
