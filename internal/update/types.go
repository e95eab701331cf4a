package update

import "github.com/zevwings/workflow/internal/rollback"

// Target describes the release an update attempt installs. Created once per
// attempt, never mutated.
type Target struct {
	Version     string
	Platform    string
	Ext         string
	DownloadURL string
	ChecksumURL string
}

// ArchiveName returns the file name of the release archive.
func (t *Target) ArchiveName() string {
	return "workflow-" + t.Version + "-" + t.Platform + t.Ext
}

// Resolver determines the target version and its download location.
type Resolver interface {
	Resolve(explicitVersion, platform string) (*Target, error)
}

// Acquirer downloads release archives and verifies their integrity.
type Acquirer interface {
	Download(url, dest string) error
	VerifyArchive(archivePath, checksumURL string) error
}

// Installer runs the install step bundled inside an extracted archive.
type Installer interface {
	Install(extractDir string) error
}

// Verifier confirms the installation after the installer ran.
type Verifier interface {
	Verify(targetVersion string) (*VerificationResult, error)
}

// BackupManager snapshots and restores the installed files around the
// destructive part of an update.
type BackupManager interface {
	CreateBackup(version string) (*rollback.Snapshot, error)
	Rollback(snap *rollback.Snapshot) (*rollback.Outcome, error)
	Cleanup(snap *rollback.Snapshot) error
}
