package browser

import "fmt"

// Advisory is a non-fatal setup failure. The driver is still usable.
type Advisory struct {
	Step string
	Err  error
}

func (a Advisory) Error() string {
	return fmt.Sprintf("%s: %v", a.Step, a.Err)
}

func (a Advisory) Unwrap() error {
	return a.Err
}

// Report describes how a driver was set up.
type Report struct {
	Environment    Environment
	Strategy       PageLoadStrategy
	Headless       bool
	HeadlessForced bool
	DownloadDir    string
	Arguments      []string
	Hints          RuntimeHints
	Advisories     []Advisory
}

// Degraded reports whether any advisory step failed.
func (r Report) Degraded() bool {
	return len(r.Advisories) > 0
}
