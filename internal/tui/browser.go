package tui

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener launches a URL in an external viewer.
type Opener func(url string) error

// OpenBrowser opens url in the system default browser without waiting for it.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	go cmd.Wait() //nolint:errcheck // reap the child; the browser outlives it
	return nil
}
