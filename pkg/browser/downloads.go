package browser

import (
	"fmt"
	"os"
	"path/filepath"
)

const containerDownloadPerm os.FileMode = 0o777

// PrepareDownloadDir resolves dir to an absolute path and creates it. In a
// container the directory is made world writable so the browser user can
// write to it; failing to do so is returned as an advisory.
func PrepareDownloadDir(dir string, env Environment) (string, []Advisory, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolve download dir %q: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", nil, fmt.Errorf("create download dir %q: %w", abs, err)
	}

	var advisories []Advisory
	if env.Container {
		if err := os.Chmod(abs, containerDownloadPerm); err != nil {
			advisories = append(advisories, Advisory{Step: "download-dir-permissions", Err: err})
		}
	}
	return abs, advisories, nil
}
