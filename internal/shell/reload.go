package shell

import (
	"fmt"
	"os/exec"
)

// Reload sources the shell's configuration file in a subprocess. The parent
// shell is unaffected, so this only confirms the configuration still loads;
// callers treat failure as non-fatal.
func Reload(s Shell) error {
	cfg, err := s.ConfigFile()
	if err != nil {
		return err
	}

	cmd := exec.Command(string(s), "-c", fmt.Sprintf("source %q", cfg))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to reload %s: %w (%s)", cfg, err, string(out))
	}
	return nil
}
