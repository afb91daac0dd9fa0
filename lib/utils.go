package lib

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// LocalFileExists reports whether path exists on the local filesystem.
func LocalFileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || os.IsExist(err)
}

// SetupCloseHandler runs cleanup and exits when the process is interrupted.
// The returned function stops listening.
func SetupCloseHandler(cleanup func()) (stop func()) {
	c := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-c:
			fmt.Println("\r- Ctrl+C pressed in Terminal")
			if cleanup != nil {
				cleanup()
			}
			os.Exit(0)
		case <-done:
		}
	}()
	return func() {
		signal.Stop(c)
		close(done)
	}
}
