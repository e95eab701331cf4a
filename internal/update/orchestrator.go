package update

import (
	"fmt"
	"os"

	"github.com/zevwings/workflow/internal/archive"
	"github.com/zevwings/workflow/internal/interactive"
	"github.com/zevwings/workflow/internal/output"
	"github.com/zevwings/workflow/internal/rollback"
	"github.com/zevwings/workflow/internal/settings"
)

// Orchestrator sequences a full update attempt: resolve, confirm, back up,
// download, verify, extract, install, verify installation. On any failure
// after the backup checkpoint it rolls back and reports exactly what was
// and was not recovered.
//
// Concurrent updater invocations are not supported; nothing guards the
// install directory against a second writer.
type Orchestrator struct {
	CurrentVersion string

	Resolver  Resolver
	Acquirer  Acquirer
	Installer Installer
	Verifier  Verifier
	Backups   BackupManager

	// Extract unpacks the downloaded archive; selected by file extension.
	Extract func(src, destDir string) error
	// Confirm asks the user to proceed. Replaced in tests.
	Confirm func(message string, defaultYes bool) bool
	// Platform overrides platform detection when non-empty (tests).
	Platform string

	TempDir   string
	AssumeYes bool
}

// NewOrchestrator wires an orchestrator to the real collaborators.
func NewOrchestrator(currentVersion string, st *settings.Settings) *Orchestrator {
	resolver := NewGitHubResolver(st.GitHub.Owner, st.GitHub.Repo)
	if st.GitHub.Token != "" {
		resolver.WithToken(st.GitHub.Token)
	}
	prompter := interactive.NewPrompter()
	return &Orchestrator{
		CurrentVersion: currentVersion,
		Resolver:       resolver,
		Acquirer:       NewAcquirer(),
		Installer:      NewInstaller(),
		Verifier:       NewVerifier(),
		Backups:        rollback.NewManager(),
		Extract:        archive.Extract,
		Confirm:        prompter.Confirm,
		TempDir:        os.TempDir(),
	}
}

// Run executes the update attempt. It returns nil when the tool is already
// up to date, when the user declines, or when the update succeeds and
// verifies; any other outcome is an error and the process should exit
// non-zero.
func (o *Orchestrator) Run(explicitVersion string) error {
	output.Info("Starting workflow update...")
	output.Break()

	platform := o.Platform
	if platform == "" {
		detected, err := DetectPlatform()
		if err != nil {
			return err
		}
		platform = detected
	}
	output.Info("Detected platform: %s", platform)

	target, err := o.Resolver.Resolve(explicitVersion, platform)
	if err != nil {
		return fmt.Errorf("failed to resolve target version: %w", err)
	}
	output.Info("Target version: v%s", target.Version)
	output.Break()

	if !o.confirmUpdate(target) {
		return nil
	}
	output.Break()

	// Checkpoint before risk: everything after this point has something to
	// roll back to, unless backup creation itself fails, in which case the
	// update proceeds without a safety net.
	snap := o.createBackup()

	ws, err := NewWorkingSet(o.TempDir, target)
	if err != nil {
		return o.fail(err, false, snap)
	}
	defer ws.Cleanup()

	destructive := false

	if err := o.Acquirer.Download(target.DownloadURL, ws.ArchivePath); err != nil {
		return o.fail(fmt.Errorf("download failed: %w", err), destructive, snap)
	}
	output.Success("Download complete")
	output.Break()

	if err := o.Acquirer.VerifyArchive(ws.ArchivePath, target.ChecksumURL); err != nil {
		return o.fail(err, destructive, snap)
	}
	output.Break()

	output.Info("Extracting update package...")
	if err := o.Extract(ws.ArchivePath, ws.ExtractDir); err != nil {
		return o.fail(fmt.Errorf("extraction failed: %w", err), destructive, snap)
	}
	output.Success("Extraction complete")
	output.Break()

	// Point of no return: the installer mutates the installed binaries.
	destructive = true

	output.Info("Installing binaries and completion scripts...")
	if err := o.Installer.Install(ws.ExtractDir); err != nil {
		return o.fail(err, destructive, snap)
	}
	output.Success("Installation complete")
	output.Break()

	result, err := o.Verifier.Verify(target.Version)
	if err != nil {
		return o.fail(fmt.Errorf("verification failed: %w", err), destructive, snap)
	}
	if !result.AllPassed {
		return o.fail(fmt.Errorf("installation verification failed"), destructive, snap)
	}
	output.Break()

	if snap != nil {
		if err := o.Backups.Cleanup(snap); err != nil {
			log.Warn("failed to clean up backup", "error", err)
		}
	}

	output.Success("workflow updated to v%s", target.Version)
	return nil
}

// confirmUpdate compares versions and prompts the user. It returns false
// when the attempt should stop cleanly: already up to date, or declined.
func (o *Orchestrator) confirmUpdate(target *Target) bool {
	current := Normalize(o.CurrentVersion)
	known := current != "" && current != "dev"

	message := fmt.Sprintf("Update workflow to v%s?", target.Version)
	if known {
		switch Compare(current, target.Version) {
		case UpToDate:
			output.Success("Already at latest version (v%s), no update needed", current)
			return false
		case NeedsUpdate:
			output.Info("New version found: v%s -> v%s", current, target.Version)
			message = fmt.Sprintf("Update workflow from v%s to v%s?", current, target.Version)
		case Downgrade:
			output.Warning("Target version (v%s) is lower than current version (v%s)", target.Version, current)
			output.Warning("  This will perform a downgrade")
			message = fmt.Sprintf("Downgrade workflow from v%s to v%s?", current, target.Version)
		}
	} else {
		output.Warning("Unable to determine current version, continuing anyway")
	}

	if o.AssumeYes {
		return true
	}
	if !o.Confirm(message, true) {
		output.Info("Update cancelled")
		return false
	}
	return true
}

// createBackup takes the pre-update snapshot. Failure is a warning, not an
// abort: the update continues, but later failures become unrecoverable.
func (o *Orchestrator) createBackup() *rollback.Snapshot {
	output.Info("Creating backup...")
	snap, err := o.Backups.CreateBackup(Normalize(o.CurrentVersion))
	if err != nil {
		output.Warning("Failed to create backup: %v", err)
		output.Warning("  Continuing without a safety net: rollback will be unavailable")
		output.Warning("  If the update fails, manual recovery may be required")
		output.Break()
		return nil
	}
	output.Success("Backup created (%d file(s))", len(snap.Entries))
	output.Break()
	return snap
}

// fail handles every failure after the backup checkpoint. Failures before
// the point of no return need no rollback since nothing was installed.
// Failures after it trigger restoration when a snapshot exists.
func (o *Orchestrator) fail(cause error, destructive bool, snap *rollback.Snapshot) error {
	output.Error("Update failed: %v", cause)
	output.Break()

	if !destructive {
		// Nothing was installed; the backup is preserved for inspection and
		// the OS temp cleaner reclaims it eventually.
		if snap != nil {
			output.Info("No installed files were modified; backup preserved at %s", snap.Dir)
		}
		return cause
	}

	if snap == nil {
		output.Error("No rollback possible: backup creation failed earlier")
		output.Error("  Please manually inspect the install directory and reinstall if needed")
		return cause
	}

	output.Warning("Rolling back to the previous version...")
	outcome, err := o.Backups.Rollback(snap)
	if err != nil {
		output.Error("Rollback failed: %v", err)
		output.Error("  The system may be in an inconsistent state")
		output.Error("  Please manually check and restore files")
		output.Error("  Backup location: %s", snap.Dir)
		return cause
	}

	o.reportRollback(outcome)

	if err := o.Backups.Cleanup(snap); err != nil {
		log.Warn("failed to clean up backup", "error", err)
	}
	return cause
}

// reportRollback enumerates every restored and unrestored file. Partial
// failures are listed individually: the remedy for a missing binary differs
// from the remedy for a completion script or a stale shell config.
func (o *Orchestrator) reportRollback(outcome *rollback.Outcome) {
	for _, name := range outcome.RestoredBinaries {
		output.Success("Restored binary: %s", name)
	}
	for _, f := range outcome.FailedBinaries {
		output.Error("Failed to restore binary %s: %s", f.Name, f.Err)
	}
	for _, name := range outcome.RestoredCompletions {
		output.Success("Restored completion script: %s", name)
	}
	for _, f := range outcome.FailedCompletions {
		output.Error("Failed to restore completion script %s: %s", f.Name, f.Err)
	}

	if outcome.ShellReloaded != nil && !*outcome.ShellReloaded && outcome.ConfigFile != "" {
		output.Warning("Shell configuration was not reloaded; run: source %s", outcome.ConfigFile)
	}

	if outcome.Clean() {
		output.Success("Rollback completed")
	} else {
		output.Warning("Rollback completed with failures (see above)")
	}
}
