package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog/log"
)

var (
	ErrNoBrowser = errors.New("driver has no browser")
	ErrNoPage    = errors.New("driver has no page")
)

// Driver is a live browser session. The caller owns it and must Close it.
// A Driver is not safe for concurrent use.
type Driver struct {
	Browser *rod.Browser
	Page    *rod.Page

	launcher        *launcher.Launcher
	strategy        PageLoadStrategy
	pageLoadTimeout time.Duration
	scriptTimeout   time.Duration
	report          Report
}

// Report describes how the driver was set up.
func (d *Driver) Report() Report {
	return d.report
}

// Strategy returns the page load strategy Navigate follows.
func (d *Driver) Strategy() PageLoadStrategy {
	return d.strategy
}

// SetTimeouts bounds Navigate and Eval respectively.
func (d *Driver) SetTimeouts(pageLoad, script time.Duration) error {
	if pageLoad <= 0 || script <= 0 {
		return fmt.Errorf("timeouts must be positive, got page load %s and script %s", pageLoad, script)
	}
	d.pageLoadTimeout = pageLoad
	d.scriptTimeout = script
	return nil
}

// Timeouts returns the page load and script timeouts. Zero means unbounded.
func (d *Driver) Timeouts() (pageLoad, script time.Duration) {
	return d.pageLoadTimeout, d.scriptTimeout
}

// page binds the driver's page to ctx, bounded by timeout when positive.
// The returned cancel must always be called.
func (d *Driver) page(ctx context.Context, timeout time.Duration) (*rod.Page, context.CancelFunc, error) {
	if d.Page == nil {
		return nil, func() {}, ErrNoPage
	}
	ctx, cancel := boundContext(ctx, timeout)
	return d.Page.Context(ctx), cancel, nil
}

func boundContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

// Navigate loads url and waits according to the page load strategy.
func (d *Driver) Navigate(ctx context.Context, url string) error {
	p, cancel, err := d.page(ctx, d.pageLoadTimeout)
	defer cancel()
	if err != nil {
		return err
	}

	switch d.strategy {
	case PageLoadNone:
		return p.Navigate(url)
	case PageLoadEager:
		wait := p.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
		if err := p.Navigate(url); err != nil {
			return err
		}
		wait()
		return p.GetContext().Err()
	default:
		if err := p.Navigate(url); err != nil {
			return err
		}
		return p.WaitLoad()
	}
}

// Eval runs js in the page and returns its result.
func (d *Driver) Eval(ctx context.Context, js string, args ...interface{}) (*proto.RuntimeRemoteObject, error) {
	p, cancel, err := d.page(ctx, d.scriptTimeout)
	defer cancel()
	if err != nil {
		return nil, err
	}
	return p.Eval(js, args...)
}

// Title returns the title of the current document.
func (d *Driver) Title(ctx context.Context) (string, error) {
	p, cancel, err := d.page(ctx, d.scriptTimeout)
	defer cancel()
	if err != nil {
		return "", err
	}
	info, err := p.Info()
	if err != nil {
		return "", err
	}
	return info.Title, nil
}

// Close shuts the browser down and removes its temporary profile.
func (d *Driver) Close() error {
	var err error
	if d.Browser != nil {
		err = d.Browser.Close()
		d.Browser = nil
		d.Page = nil
	}
	if d.launcher != nil {
		d.launcher.Kill()
		d.launcher.Cleanup()
		d.launcher = nil
	}
	if err != nil {
		log.Warn().Err(err).Msg("Browser did not close cleanly")
	}
	return err
}
