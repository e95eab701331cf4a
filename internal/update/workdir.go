package update

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/zevwings/workflow/internal/logging"
)

var log = logging.L("update")

func isWindows() bool {
	return runtime.GOOS == "windows"
}

// WorkingSet is the process-private staging area for one update attempt: the
// downloaded archive and its extraction directory. It is recreated at the
// start of an attempt and removed unconditionally at the end, success or
// failure, independent of backup cleanup.
type WorkingSet struct {
	Root        string
	ArchivePath string
	ExtractDir  string
}

// NewWorkingSet creates the staging directory for the given target under
// baseTmp, replacing any leftovers from a previous attempt.
func NewWorkingSet(baseTmp string, target *Target) (*WorkingSet, error) {
	root := filepath.Join(baseTmp, "workflow-update-"+target.Version)

	if _, err := os.Stat(root); err == nil {
		if err := os.RemoveAll(root); err != nil {
			return nil, fmt.Errorf("failed to remove stale working directory %s: %w", root, err)
		}
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create working directory %s: %w", root, err)
	}

	return &WorkingSet{
		Root:        root,
		ArchivePath: filepath.Join(root, target.ArchiveName()),
		ExtractDir:  filepath.Join(root, "extracted"),
	}, nil
}

// Cleanup removes the staging directory. Failures only warn; a leftover
// temp directory never blocks reporting the attempt's real outcome.
func (ws *WorkingSet) Cleanup() {
	log.Debug("cleaning up working directory", "dir", ws.Root)
	if err := os.RemoveAll(ws.Root); err != nil {
		log.Warn("failed to clean up working directory", "dir", ws.Root, "error", err)
	}
}
