package segmentation

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"caption-studio-server/pkg/logger"
)

// RetryingRemover retries a Remover with exponential backoff and jitter,
// returning the last error once attempts run out.
type RetryingRemover struct {
	next      Remover
	attempts  int
	baseDelay time.Duration
	maxDelay  time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
}

func NewRetryingRemover(next Remover, attempts int, baseDelay, maxDelay time.Duration) *RetryingRemover {
	if attempts < 1 {
		attempts = 1
	}
	return &RetryingRemover{
		next:      next,
		attempts:  attempts,
		baseDelay: baseDelay,
		maxDelay:  maxDelay,
		sleep:     sleepContext,
	}
}

func (r *RetryingRemover) RemoveBackground(ctx context.Context, img Image) (Image, error) {
	var lastErr error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		out, err := r.next.RemoveBackground(ctx, img)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if errors.Is(err, ErrNotConfigured) || ctx.Err() != nil {
			break
		}
		if attempt == r.attempts {
			break
		}

		delay := r.delay(attempt)
		logger.Warnf("Background removal attempt %d/%d failed: %v (retrying in %s)", attempt, r.attempts, err, delay)
		if err := r.sleep(ctx, delay); err != nil {
			return Image{}, err
		}
	}
	return Image{}, lastErr
}

func (r *RetryingRemover) delay(attempt int) time.Duration {
	d := float64(r.baseDelay) * math.Pow(2, float64(attempt-1))
	if r.maxDelay > 0 && d > float64(r.maxDelay) {
		d = float64(r.maxDelay)
	}
	jitter := d * 0.2 * rand.Float64()
	return time.Duration(d + jitter)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
