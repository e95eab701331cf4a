// Package shell detects the user's shell and knows where its configuration
// and completion files live.
package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Shell identifies a supported login shell.
type Shell string

const (
	Zsh  Shell = "zsh"
	Bash Shell = "bash"
	Fish Shell = "fish"
)

// Detect determines the user's shell from the SHELL environment variable.
func Detect() (Shell, error) {
	env := os.Getenv("SHELL")
	if env == "" {
		return "", fmt.Errorf("SHELL environment variable is not set")
	}
	switch filepath.Base(env) {
	case "zsh":
		return Zsh, nil
	case "bash":
		return Bash, nil
	case "fish":
		return Fish, nil
	default:
		return "", fmt.Errorf("unsupported shell: %s", filepath.Base(env))
	}
}

// ConfigFile returns the shell's user configuration file path.
func (s Shell) ConfigFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch s {
	case Zsh:
		return filepath.Join(home, ".zshrc"), nil
	case Bash:
		return filepath.Join(home, ".bashrc"), nil
	case Fish:
		return filepath.Join(home, ".config", "fish", "config.fish"), nil
	default:
		return "", fmt.Errorf("unsupported shell: %s", s)
	}
}

// CompletionFiles returns the completion script file names the given shell
// expects for the given commands.
func CompletionFiles(s Shell, commands []string) []string {
	files := make([]string, 0, len(commands))
	for _, cmd := range commands {
		switch s {
		case Zsh:
			files = append(files, "_"+cmd)
		case Bash:
			files = append(files, cmd+".bash")
		case Fish:
			files = append(files, cmd+".fish")
		}
	}
	return files
}

// AllCompletionFiles returns the completion file names across every supported
// shell. Backups capture all of them regardless of the active shell.
func AllCompletionFiles(commands []string) []string {
	var files []string
	for _, s := range []Shell{Zsh, Bash, Fish} {
		files = append(files, CompletionFiles(s, commands)...)
	}
	return files
}

// String returns the shell name.
func (s Shell) String() string {
	return strings.ToLower(string(s))
}
