package browser

import (
	"time"

	"github.com/go-rod/rod/lib/proto"
)

// Tuner applies the post-launch adjustments. Each method is independent; a
// failure in one does not prevent the others.
type Tuner interface {
	SetWindowSize(d *Driver, width, height int) error
	SetTimeouts(d *Driver, pageLoad, script time.Duration) error
	AllowDownloads(d *Driver, dir string) error
}

// RodTuner talks to the browser over CDP.
type RodTuner struct{}

func (RodTuner) SetWindowSize(d *Driver, width, height int) error {
	if d.Page == nil {
		return ErrNoPage
	}
	if err := d.Page.SetWindow(&proto.BrowserBounds{
		Width:       &width,
		Height:      &height,
		WindowState: proto.BrowserWindowStateNormal,
	}); err != nil {
		return err
	}
	return d.Page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  width,
		Height: height,
	})
}

func (RodTuner) SetTimeouts(d *Driver, pageLoad, script time.Duration) error {
	return d.SetTimeouts(pageLoad, script)
}

func (RodTuner) AllowDownloads(d *Driver, dir string) error {
	if d.Browser == nil {
		return ErrNoBrowser
	}
	return proto.BrowserSetDownloadBehavior{
		Behavior:      proto.BrowserSetDownloadBehaviorBehaviorAllow,
		DownloadPath:  dir,
		EventsEnabled: true,
	}.Call(d.Browser)
}
