package rollback

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/zevwings/workflow/internal/shell"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return &Manager{
		InstallDir:    t.TempDir(),
		CompletionDir: t.TempDir(),
		BackupRoot:    t.TempDir(),
		Commands:      []string{"workflow"},
		DetectShell:   func() (shell.Shell, error) { return "", errors.New("no shell") },
		ReloadShell:   func(shell.Shell) error { return nil },
	}
}

func installBinaries(t *testing.T, m *Manager) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(m.InstallDir, "workflow"), []byte("old binary"), 0o755); err != nil {
		t.Fatal(err)
	}
}

func installCompletions(t *testing.T, m *Manager) {
	t.Helper()
	for _, f := range []string{"_workflow", "workflow.bash"} {
		if err := os.WriteFile(filepath.Join(m.CompletionDir, f), []byte("old completion"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func installFiles(t *testing.T, m *Manager) {
	t.Helper()
	installBinaries(t, m)
	installCompletions(t, m)
}

func TestCreateBackup(t *testing.T) {
	m := newTestManager(t)
	installFiles(t, m)

	snap, err := m.CreateBackup("1.0.0")
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	if !strings.Contains(filepath.Base(snap.Dir), "workflow-backup-") {
		t.Errorf("backup dir = %q, want workflow-backup-<ts>", snap.Dir)
	}
	if got := len(snap.Binaries()); got != 1 {
		t.Errorf("captured %d binaries, want 1", got)
	}
	if got := len(snap.Completions()); got != 2 {
		t.Errorf("captured %d completion scripts, want 2", got)
	}

	for _, e := range snap.Entries {
		data, err := os.ReadFile(e.BackupPath)
		if err != nil {
			t.Errorf("backup copy for %s missing: %v", e.Name, err)
			continue
		}
		if !strings.HasPrefix(string(data), "old") {
			t.Errorf("backup copy for %s = %q", e.Name, data)
		}
	}
}

func TestCreateBackupSkipsMissingFiles(t *testing.T) {
	m := newTestManager(t)
	// Nothing installed at all.

	snap, err := m.CreateBackup("1.0.0")
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if len(snap.Entries) != 0 {
		t.Errorf("captured %d entries, want 0", len(snap.Entries))
	}
}

func TestCreateBackupWithoutCompletionDir(t *testing.T) {
	m := newTestManager(t)
	m.CompletionDir = filepath.Join(t.TempDir(), "does-not-exist")
	installBinaries(t, m)

	snap, err := m.CreateBackup("1.0.0")
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if got := len(snap.Binaries()); got != 1 {
		t.Errorf("captured %d binaries, want 1", got)
	}
	if got := len(snap.Completions()); got != 0 {
		t.Errorf("captured %d completion scripts, want 0", got)
	}
}

func TestRollback(t *testing.T) {
	m := newTestManager(t)
	installFiles(t, m)

	snap, err := m.CreateBackup("1.0.0")
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	// Simulate a botched install: binary replaced, completion deleted.
	binPath := filepath.Join(m.InstallDir, "workflow")
	if err := os.WriteFile(binPath, []byte("broken new binary"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(m.CompletionDir, "_workflow")); err != nil {
		t.Fatal(err)
	}

	outcome, err := m.Rollback(snap)
	if err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}
	if !outcome.Clean() {
		t.Errorf("Clean() = false, failures: %+v %+v", outcome.FailedBinaries, outcome.FailedCompletions)
	}
	if got := len(outcome.RestoredBinaries); got != 1 {
		t.Errorf("restored %d binaries, want 1", got)
	}
	if got := len(outcome.RestoredCompletions); got != 2 {
		t.Errorf("restored %d completion scripts, want 2", got)
	}

	data, err := os.ReadFile(binPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "old binary" {
		t.Errorf("binary content = %q, want %q", data, "old binary")
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(binPath)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm()&0o111 == 0 {
			t.Errorf("restored binary mode = %v, want executable", info.Mode())
		}
	}

	if _, err := os.Stat(filepath.Join(m.CompletionDir, "_workflow")); err != nil {
		t.Errorf("completion script not restored: %v", err)
	}

	// Shell detection was configured to fail, so no reload is reported.
	if outcome.ShellReloaded != nil {
		t.Errorf("ShellReloaded = %v, want nil", *outcome.ShellReloaded)
	}
}

func TestRollbackPartialFailure(t *testing.T) {
	m := newTestManager(t)
	m.Commands = []string{"workflow", "wf"}
	installFiles(t, m)
	if err := os.WriteFile(filepath.Join(m.InstallDir, "wf"), []byte("old wf"), 0o755); err != nil {
		t.Fatal(err)
	}

	snap, err := m.CreateBackup("1.0.0")
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	// Destroy one backup copy so its restore must fail.
	if err := os.Remove(filepath.Join(snap.Dir, "wf")); err != nil {
		t.Fatal(err)
	}

	outcome, err := m.Rollback(snap)
	if err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}
	if outcome.Clean() {
		t.Error("Clean() = true, want false")
	}
	if got := len(outcome.RestoredBinaries); got != 1 {
		t.Errorf("restored %d binaries, want 1", got)
	}
	if got := len(outcome.FailedBinaries); got != 1 {
		t.Fatalf("failed %d binaries, want 1", got)
	}
	if outcome.FailedBinaries[0].Name != "wf" {
		t.Errorf("failed binary = %q, want wf", outcome.FailedBinaries[0].Name)
	}
	// One entry failing must not block the others.
	if got := len(outcome.RestoredCompletions); got != 2 {
		t.Errorf("restored %d completion scripts, want 2", got)
	}
}

func TestRollbackMissingBackupDir(t *testing.T) {
	m := newTestManager(t)
	snap := &Snapshot{Dir: filepath.Join(t.TempDir(), "gone")}

	if _, err := m.Rollback(snap); err == nil {
		t.Error("Rollback() error = nil, want error for missing backup dir")
	}
}

func TestRollbackReportsShellReload(t *testing.T) {
	m := newTestManager(t)
	m.DetectShell = func() (shell.Shell, error) { return shell.Bash, nil }
	reloadCalled := false
	m.ReloadShell = func(s shell.Shell) error {
		reloadCalled = true
		return nil
	}
	installFiles(t, m)

	snap, err := m.CreateBackup("1.0.0")
	if err != nil {
		t.Fatal(err)
	}
	outcome, err := m.Rollback(snap)
	if err != nil {
		t.Fatal(err)
	}

	if !reloadCalled {
		t.Error("ReloadShell was not called")
	}
	if outcome.ShellReloaded == nil || !*outcome.ShellReloaded {
		t.Errorf("ShellReloaded = %v, want true", outcome.ShellReloaded)
	}
	if outcome.ConfigFile == "" {
		t.Error("ConfigFile is empty")
	}
}

func TestCleanup(t *testing.T) {
	m := newTestManager(t)
	installFiles(t, m)

	snap, err := m.CreateBackup("1.0.0")
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Cleanup(snap); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if _, err := os.Stat(snap.Dir); !os.IsNotExist(err) {
		t.Error("backup directory still exists after Cleanup")
	}

	// A second cleanup of the same snapshot is a no-op.
	if err := m.Cleanup(snap); err != nil {
		t.Errorf("Cleanup() on missing dir error = %v", err)
	}
}
