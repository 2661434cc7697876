package folder

import (
	"os/exec"
	"runtime"
)

// Opener hands a path to the desktop file manager.
type Opener interface {
	Open(path string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(path string) error

// Open calls f(path).
func (f OpenerFunc) Open(path string) error {
	return f(path)
}

// SystemOpener returns the platform's launcher: explorer on Windows,
// open on macOS and xdg-open elsewhere.
func SystemOpener() Opener {
	var name string
	switch runtime.GOOS {
	case "windows":
		name = "explorer"
	case "darwin":
		name = "open"
	default:
		name = "xdg-open"
	}
	return OpenerFunc(func(path string) error {
		return launch(name, path)
	})
}

// launch starts the launcher without waiting for the file manager to exit.
func launch(name, path string) error {
	cmd := exec.Command(name, path)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
