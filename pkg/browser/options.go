package browser

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ysmood/gson"
)

// PageLoadStrategy decides how long Navigate blocks.
type PageLoadStrategy string

const (
	// PageLoadNormal waits for the load event.
	PageLoadNormal PageLoadStrategy = "normal"
	// PageLoadEager waits for DOMContentLoaded only.
	PageLoadEager PageLoadStrategy = "eager"
	// PageLoadNone returns as soon as navigation is committed.
	PageLoadNone PageLoadStrategy = "none"
)

const (
	HeadlessFlag      = "headless"
	HeadlessFlagValue = "new"

	PrefDownloadDir = "download.default_directory"
)

// Flag is a single chromium command line switch. An empty Value renders as
// a bare switch.
type Flag struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

func (f Flag) String() string {
	if f.Value == "" {
		return "--" + f.Name
	}
	return "--" + f.Name + "=" + f.Value
}

func (f Flag) Pretty() string {
	return f.String()
}

func (f Flag) TableHeaders() []string {
	return []string{"Flag", "Value"}
}

func (f Flag) TableRow() []string {
	return []string{f.Name, f.Value}
}

// Request is what a caller asks the factory for.
type Request struct {
	Headless    bool
	DownloadDir string
}

// DefaultRequest asks for a headless browser without a download directory.
func DefaultRequest() Request {
	return Request{Headless: true}
}

// ServiceBinding selects the browser executable. An empty Bin leaves
// discovery to rod (system lookup, then download).
type ServiceBinding struct {
	Bin      string `json:"bin,omitempty" yaml:"bin,omitempty"`
	Logging  bool   `json:"logging" yaml:"logging"`
	LogLevel int    `json:"log_level" yaml:"log_level"`
}

// LaunchOptions is the assembled configuration bundle for one launch.
type LaunchOptions struct {
	Flags          []Flag
	Preferences    map[string]interface{}
	Strategy       PageLoadStrategy
	Headless       bool
	HeadlessForced bool
	DownloadDir    string
	Service        ServiceBinding
	Hints          RuntimeHints
}

// Set adds a flag, replacing the value of an existing flag with the same
// name in place.
func (o *LaunchOptions) Set(name string, value ...string) {
	v := strings.Join(value, ",")
	for i := range o.Flags {
		if o.Flags[i].Name == name {
			o.Flags[i].Value = v
			return
		}
	}
	o.Flags = append(o.Flags, Flag{Name: name, Value: v})
}

// Has reports whether the flag is present.
func (o *LaunchOptions) Has(name string) bool {
	_, ok := o.Get(name)
	return ok
}

// Get returns the value of a flag.
func (o *LaunchOptions) Get(name string) (string, bool) {
	for _, f := range o.Flags {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Arguments renders the flags as command line arguments.
func (o *LaunchOptions) Arguments() []string {
	args := make([]string, 0, len(o.Flags))
	for _, f := range o.Flags {
		args = append(args, f.String())
	}
	return args
}

// PreferenceKeys returns the preference keys in sorted order.
func (o *LaunchOptions) PreferenceKeys() []string {
	keys := make([]string, 0, len(o.Preferences))
	for k := range o.Preferences {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PreferencesJSON renders the preferences in the nested form chromium reads
// from a profile's Preferences file. Dotted keys become nested objects.
func (o *LaunchOptions) PreferencesJSON() string {
	root := map[string]interface{}{}
	for _, key := range o.PreferenceKeys() {
		parts := strings.Split(key, ".")
		node := root
		for _, p := range parts[:len(parts)-1] {
			child, ok := node[p].(map[string]interface{})
			if !ok {
				child = map[string]interface{}{}
				node[p] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = o.Preferences[key]
	}
	return gson.New(root).JSON("", "")
}

// BuildOptions assembles the flags, preferences and service binding for the
// given environment. It touches neither the filesystem nor the process
// environment.
func BuildOptions(env Environment, req Request, s Settings) *LaunchOptions {
	o := &LaunchOptions{
		Strategy: PageLoadNormal,
		Headless: req.Headless,
	}

	if env.Container && !req.Headless {
		o.Headless = true
		o.HeadlessForced = true
	}

	baseline := []string{
		"no-sandbox",
		"disable-dev-shm-usage",
		"disable-gpu",
		"disable-setuid-sandbox",
		"disable-extensions",
		"disable-background-networking",
		"disable-default-apps",
		"disable-sync",
		"disable-translate",
		"metrics-recording-only",
		"mute-audio",
		"no-first-run",
		"disable-background-timer-throttling",
		"disable-backgrounding-occluded-windows",
		"disable-client-side-phishing-detection",
		"disable-popup-blocking",
	}
	for _, name := range baseline {
		o.Set(name)
	}
	o.Set("user-agent", s.UserAgent)
	o.Set("window-size", strconv.Itoa(s.WindowWidth), strconv.Itoa(s.WindowHeight))

	o.DownloadDir = req.DownloadDir
	downloadDir := req.DownloadDir
	if downloadDir == "" {
		downloadDir = s.DownloadDir
	}
	o.Preferences = map[string]interface{}{
		PrefDownloadDir:                                       downloadDir,
		"download.prompt_for_download":                        false,
		"download.directory_upgrade":                          true,
		"safebrowsing.enabled":                                false,
		"plugins.always_open_pdf_externally":                  true,
		"profile.default_content_setting_values.images":       2,
		"profile.default_content_setting_values.cookies":      1,
		"profile.managed_default_content_settings.javascript": 1,
		"network.tcp.connect_timeout_ms":                      s.ConnectTimeoutMs,
	}

	switch {
	case env.Cloud:
		o.Strategy = PageLoadEager
		o.Set("disable-gpu-sandbox")
		o.Set("disable-web-security")
		o.Set("disable-hang-monitor")
		o.Set("disable-crash-reporter")
		o.Set("disable-features", "NetworkService", "NetworkServiceInProcess")
		o.Set("disk-cache-size", strconv.Itoa(s.CloudCacheSize))
		o.Set("media-cache-size", strconv.Itoa(s.CloudCacheSize))
		if o.Headless {
			o.Set(HeadlessFlag, HeadlessFlagValue)
		}
		o.Hints = cloudHints()
	case env.Container:
		if o.Headless {
			o.Set(HeadlessFlag, HeadlessFlagValue)
			// amd64 images under emulation on Apple silicon need a single process
			if env.MacOS {
				o.Set("single-process")
				o.Set("incognito")
			}
		}
	default:
		if o.Headless {
			o.Set(HeadlessFlag, HeadlessFlagValue)
		}
	}

	if env.Container {
		o.Service = ServiceBinding{
			Bin:      s.ContainerBin,
			Logging:  true,
			LogLevel: s.BrowserLogLevel,
		}
	}
	return o
}
