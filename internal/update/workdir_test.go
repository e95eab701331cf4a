package update

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewWorkingSet(t *testing.T) {
	base := t.TempDir()
	target := testTarget("1.1.0")

	ws, err := NewWorkingSet(base, target)
	if err != nil {
		t.Fatalf("NewWorkingSet() error = %v", err)
	}

	if filepath.Base(ws.Root) != "workflow-update-1.1.0" {
		t.Errorf("Root = %q", ws.Root)
	}
	if filepath.Base(ws.ArchivePath) != "workflow-1.1.0-Linux-x86_64.tar.gz" {
		t.Errorf("ArchivePath = %q", ws.ArchivePath)
	}
	if _, err := os.Stat(ws.Root); err != nil {
		t.Errorf("working directory was not created: %v", err)
	}
}

func TestNewWorkingSetReplacesStaleDir(t *testing.T) {
	base := t.TempDir()
	target := testTarget("1.1.0")

	stale := filepath.Join(base, "workflow-update-1.1.0")
	if err := os.MkdirAll(stale, 0o755); err != nil {
		t.Fatal(err)
	}
	leftover := filepath.Join(stale, "partial-download")
	if err := os.WriteFile(leftover, []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}

	ws, err := NewWorkingSet(base, target)
	if err != nil {
		t.Fatalf("NewWorkingSet() error = %v", err)
	}
	if _, err := os.Stat(leftover); !os.IsNotExist(err) {
		t.Error("stale file survived working set creation")
	}
	if _, err := os.Stat(ws.Root); err != nil {
		t.Errorf("working directory was not recreated: %v", err)
	}
}

func TestWorkingSetCleanup(t *testing.T) {
	ws, err := NewWorkingSet(t.TempDir(), testTarget("1.1.0"))
	if err != nil {
		t.Fatal(err)
	}

	ws.Cleanup()
	if _, err := os.Stat(ws.Root); !os.IsNotExist(err) {
		t.Error("working directory still exists after Cleanup")
	}
}

func TestArchiveName(t *testing.T) {
	target := &Target{Version: "2.0.0", Platform: "Windows-x86_64", Ext: ".zip"}
	if got := target.ArchiveName(); got != "workflow-2.0.0-Windows-x86_64.zip" {
		t.Errorf("ArchiveName() = %q", got)
	}
}
