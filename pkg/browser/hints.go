package browser

import (
	"os"
	"sort"
)

// RuntimeHints are process environment variables a launch wants set. They
// outlive the launch: once applied they stay for the life of the process.
type RuntimeHints struct {
	Env map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
}

// Empty reports whether there is nothing to apply.
func (h RuntimeHints) Empty() bool {
	return len(h.Env) == 0
}

// Keys returns the variable names in sorted order.
func (h RuntimeHints) Keys() []string {
	keys := make([]string, 0, len(h.Env))
	for k := range h.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EnvApplier sets one environment variable.
type EnvApplier func(key, value string) error

// ProcessEnv applies hints to the real process environment.
var ProcessEnv EnvApplier = os.Setenv

// Apply sets every hint through apply, stopping at the first error.
func (h RuntimeHints) Apply(apply EnvApplier) error {
	for _, k := range h.Keys() {
		if err := apply(k, h.Env[k]); err != nil {
			return err
		}
	}
	return nil
}

// cloudHints are set on cloud hosts. The interpreter buffering and debug
// switches some runtimes read have no Go counterpart; CHROME_HEADLESS marks
// the run as non-interactive and DBUS_SESSION_BUS_ADDRESS keeps chromium
// from probing a session bus that does not exist on the host.
func cloudHints() RuntimeHints {
	return RuntimeHints{Env: map[string]string{
		"CHROME_HEADLESS":          "1",
		"DBUS_SESSION_BUS_ADDRESS": "/dev/null",
	}}
}
