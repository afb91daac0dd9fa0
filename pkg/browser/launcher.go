package browser

import (
	"fmt"
	"strconv"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog/log"
)

// LaunchFunc starts the browser described by l and returns it connected,
// along with the page the driver will use.
type LaunchFunc func(l *launcher.Launcher) (*rod.Browser, *rod.Page, error)

// Launcher maps the options onto a rod launcher. Rod enables headless by
// default, that default is removed so only the assembled flags decide it.
func (o *LaunchOptions) Launcher() *launcher.Launcher {
	l := launcher.New().Delete(flags.Headless)

	for _, f := range o.Flags {
		if f.Value == "" {
			l = l.Set(flags.Flag(f.Name))
		} else {
			l = l.Set(flags.Flag(f.Name), f.Value)
		}
	}

	if len(o.Preferences) > 0 {
		l = l.Preferences(o.PreferencesJSON())
	}

	if o.Service.Bin != "" {
		l = l.Bin(o.Service.Bin)
	}
	if o.Service.Logging {
		l = l.Set("enable-logging", "stderr").
			Set("log-level", strconv.Itoa(o.Service.LogLevel)).
			Logger(log.With().Str("source", "chromium").Logger())
	}
	return l
}

// LaunchBrowser starts the process, connects to it over CDP and opens a
// blank page.
func LaunchBrowser(l *launcher.Launcher) (*rod.Browser, *rod.Page, error) {
	controlURL, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launch browser: %w", err)
	}
	log.Debug().Str("control_url", controlURL).Int("pid", l.PID()).Msg("Browser process started")

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, nil, fmt.Errorf("open page: %w", err)
	}
	return browser, page, nil
}
