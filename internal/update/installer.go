package update

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ProcessInstaller runs the install step bundled inside an extracted release
// archive. The install binary itself is opaque: it places binaries and
// completion scripts into their final locations, and platform-specific
// behavior stays inside it.
type ProcessInstaller struct {
	// Stdout and Stderr receive the installer's output.
	Stdout io.Writer
	Stderr io.Writer
}

// NewInstaller creates an installer that passes output through.
func NewInstaller() *ProcessInstaller {
	return &ProcessInstaller{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Install locates the bundled install binary inside extractDir, makes it
// executable, and runs it from within that directory. A non-zero exit or
// spawn failure is a hard error.
func (i *ProcessInstaller) Install(extractDir string) error {
	name := "install"
	if runtime.GOOS == "windows" {
		name = "install.exe"
	}

	path := filepath.Join(extractDir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("install binary not found: %s", path)
	}

	if err := os.Chmod(path, 0o755); err != nil {
		return fmt.Errorf("failed to make installer executable: %w", err)
	}

	log.Debug("running installer", "path", path)

	cmd := exec.Command(path)
	cmd.Dir = extractDir
	cmd.Stdout = i.Stdout
	cmd.Stderr = i.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("installer failed: %w", err)
	}
	return nil
}
