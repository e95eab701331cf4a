package update

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeInstallScript(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "install"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestInstall(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script installer")
	}

	dir := t.TempDir()
	marker := filepath.Join(dir, "ran")
	writeInstallScript(t, dir, "#!/bin/sh\ntouch ran\n")

	inst := &ProcessInstaller{Stdout: io.Discard, Stderr: io.Discard}
	if err := inst.Install(dir); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	// The installer runs with the extract dir as its working directory.
	if _, err := os.Stat(marker); err != nil {
		t.Errorf("installer did not run in extract dir: %v", err)
	}
}

func TestInstallMakesScriptExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits")
	}

	dir := t.TempDir()
	// Archive extraction may lose the executable bit; Install must restore it.
	writeInstallScript(t, dir, "#!/bin/sh\nexit 0\n")

	inst := &ProcessInstaller{Stdout: io.Discard, Stderr: io.Discard}
	if err := inst.Install(dir); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "install"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o111 == 0 {
		t.Errorf("install script mode = %v, want executable", info.Mode())
	}
}

func TestInstallNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script installer")
	}

	dir := t.TempDir()
	writeInstallScript(t, dir, "#!/bin/sh\nexit 3\n")

	inst := &ProcessInstaller{Stdout: io.Discard, Stderr: io.Discard}
	err := inst.Install(dir)
	if err == nil {
		t.Fatal("Install() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "installer failed") {
		t.Errorf("Install() error = %q", err)
	}
}

func TestInstallMissingBinary(t *testing.T) {
	inst := &ProcessInstaller{Stdout: io.Discard, Stderr: io.Discard}
	err := inst.Install(t.TempDir())
	if err == nil {
		t.Fatal("Install() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "install binary not found") {
		t.Errorf("Install() error = %q", err)
	}
}
