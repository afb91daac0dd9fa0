package browser

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DefaultUserAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36"
	DefaultWindowWidth      = 1920
	DefaultWindowHeight     = 1080
	DefaultPageLoadTimeout  = 120 * time.Second
	DefaultScriptTimeout    = 60 * time.Second
	DefaultDownloadDir      = "/tmp"
	DefaultConnectTimeoutMs = 30000
	DefaultCloudCacheSize   = 32 * 1024 * 1024
	DefaultContainerBin     = "/usr/bin/chromium"
	DefaultBrowserLogLevel  = 0
)

// Settings are the tunable constants of a launch. The zero value is not
// usable; start from DefaultSettings.
type Settings struct {
	UserAgent        string        `validate:"required"`
	WindowWidth      int           `validate:"gt=0"`
	WindowHeight     int           `validate:"gt=0"`
	PageLoadTimeout  time.Duration `validate:"gt=0"`
	ScriptTimeout    time.Duration `validate:"gt=0"`
	DownloadDir      string        `validate:"required"`
	ConnectTimeoutMs int           `validate:"gt=0"`
	CloudCacheSize   int           `validate:"gt=0"`
	ContainerBin     string        `validate:"required"`
	BrowserLogLevel  int           `validate:"gte=0,lte=3"`
}

// DefaultSettings returns the values the scraper has always launched with.
func DefaultSettings() Settings {
	return Settings{
		UserAgent:        DefaultUserAgent,
		WindowWidth:      DefaultWindowWidth,
		WindowHeight:     DefaultWindowHeight,
		PageLoadTimeout:  DefaultPageLoadTimeout,
		ScriptTimeout:    DefaultScriptTimeout,
		DownloadDir:      DefaultDownloadDir,
		ConnectTimeoutMs: DefaultConnectTimeoutMs,
		CloudCacheSize:   DefaultCloudCacheSize,
		ContainerBin:     DefaultContainerBin,
		BrowserLogLevel:  DefaultBrowserLogLevel,
	}
}

// Validate checks the settings against their struct tags.
func (s Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("invalid browser settings: %w", err)
	}
	return nil
}

// SettingsFromConfig overlays the browser.* viper keys on DefaultSettings.
func SettingsFromConfig() (Settings, error) {
	s := DefaultSettings()
	if v := viper.GetString("browser.user_agent"); v != "" {
		s.UserAgent = v
	}
	if v := viper.GetInt("browser.window.width"); v != 0 {
		s.WindowWidth = v
	}
	if v := viper.GetInt("browser.window.height"); v != 0 {
		s.WindowHeight = v
	}
	if v := viper.GetDuration("browser.timeouts.page_load"); v != 0 {
		s.PageLoadTimeout = v
	}
	if v := viper.GetDuration("browser.timeouts.script"); v != 0 {
		s.ScriptTimeout = v
	}
	if v := viper.GetString("browser.download_dir"); v != "" {
		s.DownloadDir = v
	}
	if v := viper.GetInt("browser.timeouts.tcp_connect_ms"); v != 0 {
		s.ConnectTimeoutMs = v
	}
	if v := viper.GetInt("browser.cloud.cache_size"); v != 0 {
		s.CloudCacheSize = v
	}
	if v := viper.GetString("browser.container.bin"); v != "" {
		s.ContainerBin = v
	}
	if viper.IsSet("browser.container.log_level") {
		s.BrowserLogLevel = viper.GetInt("browser.container.log_level")
	}
	return s, s.Validate()
}
