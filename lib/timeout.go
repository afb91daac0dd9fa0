package lib

import (
	"errors"
	"time"
)

// TimeoutError is returned when the operation times out
var TimeoutError = errors.New("operation timed out")

// DoWorkWithTimeout runs fn and returns its result, or TimeoutError if it
// does not finish in time. fn keeps running in the background after a
// timeout; onLate, when non-nil, receives its result once it finishes so the
// caller can release whatever it produced.
func DoWorkWithTimeout[T any](fn func() (T, error), timeout time.Duration, onLate func(T, error)) (T, error) {
	type result struct {
		value T
		err   error
	}
	done := make(chan result)
	abandoned := make(chan struct{})

	go func() {
		v, err := fn()
		select {
		case done <- result{v, err}:
		case <-abandoned:
			if onLate != nil {
				onLate(v, err)
			}
		}
	}()

	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case res := <-done:
		return res.value, res.err
	case <-t.C:
		close(abandoned)
		// fn may have finished between the timer firing and the close
		select {
		case res := <-done:
			return res.value, res.err
		default:
		}
		var zero T
		return zero, TimeoutError
	}
}
