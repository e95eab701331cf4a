// Package paths centralizes every filesystem location the updater touches:
// the binary install directory, the completion script directory, and the
// settings file.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// CommandNames returns the logical names of every binary this tool installs.
func CommandNames() []string {
	return []string{"workflow"}
}

// BinaryInstallDir returns the directory binaries are installed into.
func BinaryInstallDir() string {
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
		return filepath.Join(localAppData, "Programs", "workflow", "bin")
	}
	return "/usr/local/bin"
}

// BinaryName returns the platform file name for a logical command name.
func BinaryName(name string) string {
	return BinaryNameFor(name, runtime.GOOS == "windows")
}

// BinaryNameFor returns the file name for a logical command name on the
// given platform family.
func BinaryNameFor(name string, windows bool) string {
	if windows {
		return name + ".exe"
	}
	return name
}

// BinaryPath returns the full installed path for a logical command name.
func BinaryPath(name string) string {
	return filepath.Join(BinaryInstallDir(), BinaryName(name))
}

// BaseDir returns the tool's home directory (~/.workflow), creating it if
// needed.
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	dir := filepath.Join(home, ".workflow")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return dir, nil
}

// CompletionDir returns the directory completion scripts are installed into.
func CompletionDir() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "completions"), nil
}

// SettingsFile returns the path of the settings file.
func SettingsFile() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "config")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return filepath.Join(dir, "settings.toml"), nil
}
