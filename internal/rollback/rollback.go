// Package rollback snapshots the installed binaries and completion scripts
// before an update and restores them when the update fails. Binary
// replacement is not atomic on any mainstream filesystem, so the updater
// relies on this package to guarantee the previous working installation can
// come back whenever the new one cannot be verified.
package rollback

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/zevwings/workflow/internal/logging"
	"github.com/zevwings/workflow/internal/paths"
	"github.com/zevwings/workflow/internal/shell"
)

var log = logging.L("rollback")

// Manager creates, restores, and disposes of backup snapshots. The zero
// value is not usable; call NewManager, then override fields in tests.
type Manager struct {
	InstallDir    string
	CompletionDir string
	BackupRoot    string
	Commands      []string

	DetectShell func() (shell.Shell, error)
	ReloadShell func(shell.Shell) error
}

// NewManager returns a Manager wired to the real install locations.
func NewManager() *Manager {
	completionDir, err := paths.CompletionDir()
	if err != nil {
		// Fall back to a path that simply will not exist; backup then
		// captures binaries only.
		completionDir = filepath.Join(os.TempDir(), "workflow-completions-unavailable")
	}
	return &Manager{
		InstallDir:    paths.BinaryInstallDir(),
		CompletionDir: completionDir,
		BackupRoot:    os.TempDir(),
		Commands:      paths.CommandNames(),
		DetectShell:   shell.Detect,
		ReloadShell:   shell.Reload,
	}
}

// CreateBackup copies every currently installed binary and completion script
// into a fresh backup directory. Files that do not exist are skipped; only
// successfully captured files are recorded in the snapshot.
func (m *Manager) CreateBackup(version string) (*Snapshot, error) {
	now := time.Now()
	dir := filepath.Join(m.BackupRoot, fmt.Sprintf("workflow-backup-%d", now.Unix()))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory %s: %w", dir, err)
	}
	log.Debug("created backup directory", "dir", dir)

	snap := &Snapshot{
		Version:   version,
		Dir:       dir,
		CreatedAt: now,
	}

	for _, name := range m.Commands {
		src := filepath.Join(m.InstallDir, paths.BinaryName(name))
		if _, err := os.Stat(src); os.IsNotExist(err) {
			log.Debug("binary not installed, skipping backup", "path", src)
			continue
		}
		dst := filepath.Join(dir, paths.BinaryName(name))
		if err := copyFile(src, dst); err != nil {
			return nil, fmt.Errorf("failed to back up binary %s: %w", name, err)
		}
		log.Debug("backed up binary", "from", src, "to", dst)
		snap.Entries = append(snap.Entries, Entry{
			Name:         name,
			OriginalPath: src,
			BackupPath:   dst,
			Kind:         KindBinary,
		})
	}

	if _, err := os.Stat(m.CompletionDir); os.IsNotExist(err) {
		log.Debug("completion directory does not exist, skipping", "dir", m.CompletionDir)
		return snap, nil
	}

	// Capture completion scripts for every shell, not just the detected one:
	// rollback must not depend on shell detection succeeding.
	for _, file := range shell.AllCompletionFiles(m.Commands) {
		src := filepath.Join(m.CompletionDir, file)
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		dst := filepath.Join(dir, file)
		if err := copyFile(src, dst); err != nil {
			return nil, fmt.Errorf("failed to back up completion script %s: %w", file, err)
		}
		log.Debug("backed up completion script", "from", src, "to", dst)
		snap.Entries = append(snap.Entries, Entry{
			Name:         file,
			OriginalPath: src,
			BackupPath:   dst,
			Kind:         KindCompletion,
		})
	}

	return snap, nil
}

// Rollback restores every captured file from the snapshot. Each entry is
// attempted independently; failures are recorded in the Outcome rather than
// stopping the restore. A missing backup directory fails the whole rollback.
func (m *Manager) Rollback(snap *Snapshot) (*Outcome, error) {
	if _, err := os.Stat(snap.Dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("backup directory missing: %s", snap.Dir)
	}

	outcome := &Outcome{}

	for _, e := range snap.Binaries() {
		if err := m.restoreBinary(e); err != nil {
			outcome.FailedBinaries = append(outcome.FailedBinaries, FailedRestore{Name: e.Name, Err: err.Error()})
			continue
		}
		outcome.RestoredBinaries = append(outcome.RestoredBinaries, e.Name)
	}

	completions := snap.Completions()
	if len(completions) > 0 {
		if err := os.MkdirAll(m.CompletionDir, 0o755); err != nil {
			for _, e := range completions {
				outcome.FailedCompletions = append(outcome.FailedCompletions, FailedRestore{Name: e.Name, Err: err.Error()})
			}
		} else {
			for _, e := range completions {
				if err := restoreFile(e); err != nil {
					outcome.FailedCompletions = append(outcome.FailedCompletions, FailedRestore{Name: e.Name, Err: err.Error()})
					continue
				}
				outcome.RestoredCompletions = append(outcome.RestoredCompletions, e.Name)
			}
		}
	}

	m.reloadShell(outcome)

	return outcome, nil
}

// reloadShell best-effort re-sources the user's shell configuration after
// completion scripts were restored. Never fatal.
func (m *Manager) reloadShell(outcome *Outcome) {
	sh, err := m.DetectShell()
	if err != nil {
		log.Debug("shell detection failed, skipping reload", "error", err)
		return
	}

	if cfg, err := sh.ConfigFile(); err == nil {
		outcome.ConfigFile = cfg
	}

	reloaded := m.ReloadShell(sh) == nil
	outcome.ShellReloaded = &reloaded
	if !reloaded {
		log.Debug("shell reload failed", "shell", sh)
	}
}

func (m *Manager) restoreBinary(e Entry) error {
	if err := restoreFile(e); err != nil {
		return err
	}
	// The executable bit must survive the round trip.
	if err := os.Chmod(e.OriginalPath, 0o755); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	return nil
}

func restoreFile(e Entry) error {
	if _, err := os.Stat(e.BackupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup copy missing: %s", e.BackupPath)
	}
	if err := copyFile(e.BackupPath, e.OriginalPath); err != nil {
		return err
	}
	log.Debug("restored file", "from", e.BackupPath, "to", e.OriginalPath)
	return nil
}

// Cleanup deletes the backup directory. Called exactly once, after a
// verified success or after a successful rollback has been reported.
func (m *Manager) Cleanup(snap *Snapshot) error {
	if _, err := os.Stat(snap.Dir); os.IsNotExist(err) {
		return nil
	}
	log.Debug("removing backup directory", "dir", snap.Dir)
	if err := os.RemoveAll(snap.Dir); err != nil {
		return fmt.Errorf("failed to remove backup directory %s: %w", snap.Dir, err)
	}
	return nil
}

// copyFile copies src to dst preserving the source file mode.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return nil
}
