package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/utils"
)

const (
	DefaultWaitTimeout  = 10 * time.Second
	DefaultPollInterval = 500 * time.Millisecond
)

// ErrWaitTimeout is returned by Wait.Until when the condition did not hold in time.
var ErrWaitTimeout = errors.New("timed out waiting for condition")

// Condition is polled by a Wait until it returns true. An error counts as
// "not yet" and is reported if the wait times out.
type Condition func(page *rod.Page) (bool, error)

// Wait polls a condition against a driver's page for a bounded time.
type Wait struct {
	driver   *Driver
	timeout  time.Duration
	interval time.Duration
}

// CreateWait binds a wait to d. A timeout <= 0 selects DefaultWaitTimeout.
// No polling happens until Until is called.
func CreateWait(d *Driver, timeout time.Duration) *Wait {
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	return &Wait{driver: d, timeout: timeout, interval: DefaultPollInterval}
}

// WithInterval changes how often the condition is polled.
func (w *Wait) WithInterval(interval time.Duration) *Wait {
	if interval > 0 {
		w.interval = interval
	}
	return w
}

func (w *Wait) Timeout() time.Duration {
	return w.timeout
}

func (w *Wait) Interval() time.Duration {
	return w.interval
}

// Until blocks until cond holds, the timeout elapses or ctx is done.
func (w *Wait) Until(ctx context.Context, cond Condition) error {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	var page *rod.Page
	if w.driver != nil && w.driver.Page != nil {
		page = w.driver.Page.Context(ctx)
	}

	var lastErr error
	sleeper := utils.BackoffSleeper(w.interval, w.interval, func(d time.Duration) time.Duration { return d })
	err := utils.Retry(ctx, sleeper, func() (bool, error) {
		ok, err := cond(page)
		if err != nil {
			lastErr = err
			return false, nil
		}
		return ok, nil
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		if lastErr != nil {
			return fmt.Errorf("%w after %s: %v", ErrWaitTimeout, w.timeout, lastErr)
		}
		return fmt.Errorf("%w after %s", ErrWaitTimeout, w.timeout)
	}
	return err
}

// ElementPresent holds once an element matches selector.
func ElementPresent(selector string) Condition {
	return func(page *rod.Page) (bool, error) {
		if page == nil {
			return false, ErrNoPage
		}
		has, _, err := page.Has(selector)
		return has, err
	}
}

// ElementVisible holds once an element matching selector is visible.
func ElementVisible(selector string) Condition {
	return func(page *rod.Page) (bool, error) {
		if page == nil {
			return false, ErrNoPage
		}
		has, el, err := page.Has(selector)
		if err != nil || !has {
			return false, err
		}
		return el.Visible()
	}
}

// TitleContains holds once the document title contains s.
func TitleContains(s string) Condition {
	return func(page *rod.Page) (bool, error) {
		if page == nil {
			return false, ErrNoPage
		}
		info, err := page.Info()
		if err != nil {
			return false, err
		}
		return strings.Contains(info.Title, s), nil
	}
}

// URLContains holds once the page URL contains s.
func URLContains(s string) Condition {
	return func(page *rod.Page) (bool, error) {
		if page == nil {
			return false, ErrNoPage
		}
		info, err := page.Info()
		if err != nil {
			return false, err
		}
		return strings.Contains(info.URL, s), nil
	}
}
