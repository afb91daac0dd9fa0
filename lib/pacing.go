package lib

import (
	"context"
	"math/rand"
	"time"
)

const (
	DefaultMinWait = 500 * time.Millisecond
	DefaultMaxWait = 2 * time.Second
)

// RandomDuration draws a duration uniformly from [min, max). It returns min
// when max <= min.
func RandomDuration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}

// RandomWait sleeps for a random duration in [min, max) and returns it, so
// consecutive requests do not follow a fixed interval.
func RandomWait(min, max time.Duration) time.Duration {
	d := RandomDuration(min, max)
	time.Sleep(d)
	return d
}

// RandomWaitContext is RandomWait that gives up when ctx is done.
func RandomWaitContext(ctx context.Context, min, max time.Duration) (time.Duration, error) {
	d := RandomDuration(min, max)
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return d, ctx.Err()
	case <-t.C:
		return d, nil
	}
}
