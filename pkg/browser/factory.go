package browser

import (
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/panics"
)

// Factory builds configured drivers. The function fields are the factory's
// contact points with the outside world and can be replaced in tests.
type Factory struct {
	Settings Settings
	Detect   func() Environment
	Launch   LaunchFunc
	Tuner    Tuner
	ApplyEnv EnvApplier
}

// NewFactory returns a factory that detects the real environment, launches
// a real browser and applies runtime hints to the process environment.
func NewFactory(settings Settings) *Factory {
	return &Factory{
		Settings: settings,
		Detect:   DetectEnvironment,
		Launch:   LaunchBrowser,
		Tuner:    RodTuner{},
		ApplyEnv: ProcessEnv,
	}
}

// SetupChromeDriver launches a driver configured from viper settings. It
// never panics; nil means the launch failed and the reason has been logged.
func SetupChromeDriver(headless bool, downloadDir string) *Driver {
	settings, err := SettingsFromConfig()
	if err != nil {
		log.Error().Err(err).Msg("Chrome setup failed")
		return nil
	}
	d, err := NewFactory(settings).Setup(Request{Headless: headless, DownloadDir: downloadDir})
	if err != nil {
		return nil
	}
	return d
}

// Setup launches one driver. Any failure before the browser is running,
// including a panic, is fatal: it is logged and returned with a nil driver.
// Failures while tuning the running browser are recorded as advisories in
// the driver's report and do not fail the call.
func (f *Factory) Setup(req Request) (driver *Driver, err error) {
	log.Info().Msg("Setting up Chrome driver")

	var pc panics.Catcher
	pc.Try(func() {
		driver, err = f.setup(req)
	})
	if r := pc.Recovered(); r != nil {
		log.Error().Interface("panic", r.Value).Str("stack", string(r.Stack)).Msg("Chrome setup failed")
		return nil, fmt.Errorf("chrome setup: %w", r.AsError())
	}
	if err != nil {
		log.Error().Err(err).Str("stack", string(debug.Stack())).Msg("Chrome setup failed")
		return nil, err
	}
	log.Info().Bool("degraded", driver.report.Degraded()).Msg("Chrome driver initialized")
	return driver, nil
}

func (f *Factory) setup(req Request) (*Driver, error) {
	if err := f.Settings.Validate(); err != nil {
		return nil, err
	}

	env := f.Detect()
	log.Info().
		Bool("cloud", env.Cloud).
		Bool("container", env.Container).
		Bool("macos", env.MacOS).
		Msg("Environment detection")

	opts := BuildOptions(env, req, f.Settings)
	if opts.HeadlessForced {
		log.Warn().Msg("Container environment detected, forcing headless mode")
	}
	log.Info().Bool("headless", opts.Headless).Str("strategy", string(opts.Strategy)).Msgf("Using %s configuration", env.Kind())

	var advisories []Advisory
	if req.DownloadDir != "" {
		dir, adv, err := PrepareDownloadDir(req.DownloadDir, env)
		if err != nil {
			return nil, err
		}
		for _, a := range adv {
			log.Warn().Err(a.Err).Str("dir", dir).Msg("Could not set permissions on download directory")
		}
		advisories = append(advisories, adv...)
		opts.DownloadDir = dir
		opts.Preferences[PrefDownloadDir] = dir
	}

	log.Info().Msg("Chrome options:")
	for _, arg := range opts.Arguments() {
		log.Info().Msgf("  %s", arg)
	}

	if !opts.Hints.Empty() {
		log.Info().Strs("vars", opts.Hints.Keys()).Msg("Setting runtime environment variables")
		if err := opts.Hints.Apply(f.ApplyEnv); err != nil {
			return nil, fmt.Errorf("apply runtime hints: %w", err)
		}
	}

	if opts.Service.Bin != "" {
		log.Info().Str("bin", opts.Service.Bin).Int("log_level", opts.Service.LogLevel).Msg("Using fixed browser binary")
	}

	l := opts.Launcher()
	browser, page, err := f.Launch(l)
	if err != nil {
		return nil, err
	}

	d := &Driver{
		Browser:  browser,
		Page:     page,
		strategy: opts.Strategy,
	}
	// only a started process has anything to kill or clean up
	if l.PID() != 0 {
		d.launcher = l
	}

	advisories = f.tune(advisories, "window-size", func() error {
		return f.Tuner.SetWindowSize(d, f.Settings.WindowWidth, f.Settings.WindowHeight)
	})
	advisories = f.tune(advisories, "timeouts", func() error {
		return f.Tuner.SetTimeouts(d, f.Settings.PageLoadTimeout, f.Settings.ScriptTimeout)
	})
	if opts.Headless && opts.DownloadDir != "" {
		advisories = f.tune(advisories, "download-behavior", func() error {
			return f.Tuner.AllowDownloads(d, opts.DownloadDir)
		})
	}

	d.report = Report{
		Environment:    env,
		Strategy:       opts.Strategy,
		Headless:       opts.Headless,
		HeadlessForced: opts.HeadlessForced,
		DownloadDir:    opts.DownloadDir,
		Arguments:      opts.Arguments(),
		Hints:          opts.Hints,
		Advisories:     advisories,
	}
	return d, nil
}

// tune runs one post-launch step. Errors and panics become advisories.
func (f *Factory) tune(advisories []Advisory, step string, fn func() error) []Advisory {
	var err error
	var pc panics.Catcher
	pc.Try(func() {
		err = fn()
	})
	if r := pc.Recovered(); r != nil {
		err = r.AsError()
	}
	if err != nil {
		log.Warn().Err(err).Str("step", step).Msg("Post-launch adjustment failed, continuing")
		return append(advisories, Advisory{Step: step, Err: err})
	}
	return advisories
}
