package browser

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTuner struct {
	calls       []string
	windowErr   error
	timeoutsErr error
	downloadErr error
	panicOn     string
	downloadDir string
}

func (f *fakeTuner) record(step string) {
	f.calls = append(f.calls, step)
	if f.panicOn == step {
		panic("tuner exploded in " + step)
	}
}

func (f *fakeTuner) SetWindowSize(d *Driver, width, height int) error {
	f.record("window-size")
	return f.windowErr
}

func (f *fakeTuner) SetTimeouts(d *Driver, pageLoad, script time.Duration) error {
	f.record("timeouts")
	if f.timeoutsErr != nil {
		return f.timeoutsErr
	}
	return d.SetTimeouts(pageLoad, script)
}

func (f *fakeTuner) AllowDownloads(d *Driver, dir string) error {
	f.record("download-behavior")
	f.downloadDir = dir
	return f.downloadErr
}

type testFactory struct {
	*Factory
	tuner    *fakeTuner
	env      map[string]string
	launched *launcher.Launcher
}

func newTestFactory(env Environment) *testFactory {
	tf := &testFactory{tuner: &fakeTuner{}, env: map[string]string{}}
	tf.Factory = &Factory{
		Settings: DefaultSettings(),
		Detect:   func() Environment { return env },
		Launch: func(l *launcher.Launcher) (*rod.Browser, *rod.Page, error) {
			tf.launched = l
			return nil, nil, nil
		},
		Tuner: tf.tuner,
		ApplyEnv: func(key, value string) error {
			tf.env[key] = value
			return nil
		},
	}
	return tf
}

func TestSetupContainerForcesHeadless(t *testing.T) {
	tf := newTestFactory(containerEnv)

	d, err := tf.Setup(Request{Headless: false})
	require.NoError(t, err)
	require.NotNil(t, d)

	report := d.Report()
	assert.True(t, report.Headless)
	assert.True(t, report.HeadlessForced)
	assert.Contains(t, report.Arguments, "--headless=new")
	assert.Equal(t, "new", tf.launched.Get(flags.Headless))
	assert.Equal(t, DefaultContainerBin, tf.launched.Get(flags.Bin))
	assert.Empty(t, tf.env)
}

func TestSetupCloud(t *testing.T) {
	tf := newTestFactory(cloudEnv)

	d, err := tf.Setup(DefaultRequest())
	require.NoError(t, err)

	assert.Equal(t, PageLoadEager, d.Strategy())
	assert.Equal(t, PageLoadEager, d.Report().Strategy)
	assert.Equal(t, "1", tf.env["CHROME_HEADLESS"])
	assert.Equal(t, "/dev/null", tf.env["DBUS_SESSION_BUS_ADDRESS"])
	assert.Equal(t, tf.env, d.Report().Hints.Env)
}

func TestSetupDesktopKeepsHeadedRequest(t *testing.T) {
	tf := newTestFactory(desktopEnv)

	d, err := tf.Setup(Request{Headless: false})
	require.NoError(t, err)
	assert.False(t, d.Report().Headless)
	assert.False(t, d.Report().HeadlessForced)
	assert.False(t, tf.launched.Has(flags.Headless))
	assert.Equal(t, PageLoadNormal, d.Strategy())
}

func TestSetupCreatesDownloadDir(t *testing.T) {
	tf := newTestFactory(containerEnv)
	dir := filepath.Join(t.TempDir(), "downloads")

	d, err := tf.Setup(Request{Headless: true, DownloadDir: dir})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	if !d.Report().Degraded() {
		assert.Equal(t, os.FileMode(0o777), info.Mode().Perm())
	}
	assert.Equal(t, dir, d.Report().DownloadDir)
	assert.Equal(t, dir, tf.tuner.downloadDir)
	assert.Contains(t, tf.tuner.calls, "download-behavior")
}

func TestSetupSkipsDownloadBehaviorWithoutDir(t *testing.T) {
	tf := newTestFactory(containerEnv)

	_, err := tf.Setup(DefaultRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"window-size", "timeouts"}, tf.tuner.calls)
}

func TestSetupSkipsDownloadBehaviorWhenHeaded(t *testing.T) {
	tf := newTestFactory(desktopEnv)

	_, err := tf.Setup(Request{Headless: false, DownloadDir: t.TempDir()})
	require.NoError(t, err)
	assert.NotContains(t, tf.tuner.calls, "download-behavior")
}

func TestSetupLaunchFailureReturnsNil(t *testing.T) {
	tf := newTestFactory(containerEnv)
	errNoBinary := errors.New("fork/exec /usr/bin/chromium: no such file or directory")
	tf.Launch = func(l *launcher.Launcher) (*rod.Browser, *rod.Page, error) {
		return nil, nil, errNoBinary
	}

	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = previous }()

	d, err := tf.Setup(DefaultRequest())
	assert.Nil(t, d)
	assert.ErrorIs(t, err, errNoBinary)
	assert.Empty(t, tf.tuner.calls)

	out := buf.String()
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, `"message":"Chrome setup failed"`)
	assert.Contains(t, out, errNoBinary.Error())
	assert.Contains(t, out, `"stack":`)
}

func TestSetupLaunchPanicReturnsNil(t *testing.T) {
	tf := newTestFactory(desktopEnv)
	tf.Launch = func(l *launcher.Launcher) (*rod.Browser, *rod.Page, error) {
		panic("leakless binary missing")
	}

	var d *Driver
	var err error
	assert.NotPanics(t, func() {
		d, err = tf.Setup(DefaultRequest())
	})
	assert.Nil(t, d)
	assert.ErrorContains(t, err, "leakless binary missing")
}

func TestSetupInvalidSettingsIsFatal(t *testing.T) {
	tf := newTestFactory(desktopEnv)
	tf.Settings.WindowWidth = 0

	d, err := tf.Setup(DefaultRequest())
	assert.Nil(t, d)
	assert.Error(t, err)
	assert.Nil(t, tf.launched)
}

func TestSetupHintFailureIsFatal(t *testing.T) {
	tf := newTestFactory(cloudEnv)
	tf.ApplyEnv = func(key, value string) error { return errors.New("read-only environment") }

	d, err := tf.Setup(DefaultRequest())
	assert.Nil(t, d)
	assert.Error(t, err)
	assert.Nil(t, tf.launched)
}

func TestSetupTuningFailuresAreAdvisory(t *testing.T) {
	tf := newTestFactory(containerEnv)
	errTimeouts := errors.New("Target closed")
	tf.tuner.timeoutsErr = errTimeouts
	tf.tuner.windowErr = errors.New("Browser window not found")

	d, err := tf.Setup(Request{Headless: true, DownloadDir: t.TempDir()})
	require.NoError(t, err)
	require.NotNil(t, d)

	assert.Equal(t, []string{"window-size", "timeouts", "download-behavior"}, tf.tuner.calls)
	report := d.Report()
	assert.True(t, report.Degraded())
	steps := []string{}
	for _, a := range report.Advisories {
		steps = append(steps, a.Step)
	}
	assert.Contains(t, steps, "window-size")
	assert.Contains(t, steps, "timeouts")
	assert.NotContains(t, steps, "download-behavior")

	var adv Advisory
	for _, a := range report.Advisories {
		if a.Step == "timeouts" {
			adv = a
		}
	}
	assert.ErrorIs(t, adv, errTimeouts)

	pageLoad, script := d.Timeouts()
	assert.Zero(t, pageLoad)
	assert.Zero(t, script)
}

func TestSetupTuningPanicIsAdvisory(t *testing.T) {
	tf := newTestFactory(desktopEnv)
	tf.tuner.panicOn = "window-size"

	d, err := tf.Setup(DefaultRequest())
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, []string{"window-size", "timeouts"}, tf.tuner.calls)
	require.Len(t, d.Report().Advisories, 1)
	assert.Equal(t, "window-size", d.Report().Advisories[0].Step)

	pageLoad, script := d.Timeouts()
	assert.Equal(t, DefaultPageLoadTimeout, pageLoad)
	assert.Equal(t, DefaultScriptTimeout, script)
}

func TestSetupDriverCloseWithoutProcess(t *testing.T) {
	tf := newTestFactory(desktopEnv)
	d, err := tf.Setup(DefaultRequest())
	require.NoError(t, err)
	assert.NoError(t, d.Close())
}
