package update

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/zevwings/workflow/internal/output"
	"github.com/zevwings/workflow/internal/paths"
	"github.com/zevwings/workflow/internal/shell"
)

// BinaryStatus is the verification state of one installed binary. Produced
// fresh on every verification, never cached.
type BinaryStatus struct {
	Name       string
	Path       string
	Exists     bool
	Executable bool
}

// VerificationResult is the outcome of post-install verification.
type VerificationResult struct {
	Binaries             []BinaryStatus
	CompletionsInstalled bool
	// ShellDetected is false when the user's shell could not be determined;
	// completion verification is then skipped rather than failed.
	ShellDetected bool
	AllPassed     bool
}

// windowsExecutableExts is the extension set that marks a file executable on
// Windows, where permission bits carry no meaning.
var windowsExecutableExts = map[string]bool{
	".exe": true,
	".bat": true,
	".cmd": true,
	".com": true,
	".ps1": true,
}

// InstallVerifier checks that every expected binary exists and is executable
// and that completion scripts are in place. Binaries are never executed:
// running a freshly extracted binary can trip OS gatekeeper prompts and
// report false failures.
type InstallVerifier struct {
	InstallDir    string
	CompletionDir string
	Commands      []string
	DetectShell   func() (shell.Shell, error)

	// windows switches executability detection to the extension set.
	windows bool
}

// NewVerifier returns a verifier wired to the real install locations.
func NewVerifier() *InstallVerifier {
	completionDir, err := paths.CompletionDir()
	if err != nil {
		completionDir = ""
	}
	return &InstallVerifier{
		InstallDir:    paths.BinaryInstallDir(),
		CompletionDir: completionDir,
		Commands:      paths.CommandNames(),
		DetectShell:   shell.Detect,
		windows:       isWindows(),
	}
}

// Verify checks the installation that should now contain targetVersion.
func (v *InstallVerifier) Verify(targetVersion string) (*VerificationResult, error) {
	log.Debug("verifying installation", "targetVersion", targetVersion)

	result := &VerificationResult{}

	binariesOK := true
	for _, name := range v.Commands {
		status := v.verifyBinary(name)
		result.Binaries = append(result.Binaries, status)

		switch {
		case !status.Exists:
			output.Warning("Binary missing: %s", status.Path)
			binariesOK = false
		case !status.Executable:
			output.Warning("Binary not executable: %s", status.Path)
			binariesOK = false
		default:
			output.Success("%s verified", status.Name)
		}
	}

	result.ShellDetected, result.CompletionsInstalled = v.verifyCompletions()

	// Undetectable shells soft-fail completion verification instead of
	// blocking the update.
	result.AllPassed = binariesOK && (result.CompletionsInstalled || !result.ShellDetected)
	return result, nil
}

func (v *InstallVerifier) verifyBinary(name string) BinaryStatus {
	path := filepath.Join(v.InstallDir, paths.BinaryNameFor(name, v.windows))

	status := BinaryStatus{Name: name, Path: path}

	info, err := os.Stat(path)
	if err != nil {
		return status
	}
	status.Exists = true

	if v.windows {
		status.Executable = windowsExecutableExts[strings.ToLower(filepath.Ext(path))]
	} else {
		status.Executable = info.Mode().Perm()&0o111 != 0
	}
	return status
}

// verifyCompletions returns (shellDetected, completionsInstalled).
func (v *InstallVerifier) verifyCompletions() (bool, bool) {
	sh, err := v.DetectShell()
	if err != nil {
		output.Warning("Unable to detect shell, skipping completion verification")
		return false, false
	}

	ok := true
	for _, file := range shell.CompletionFiles(sh, v.Commands) {
		path := filepath.Join(v.CompletionDir, file)
		info, err := os.Stat(path)
		if err != nil {
			output.Warning("Completion script missing: %s", path)
			ok = false
			continue
		}
		if info.Size() == 0 {
			output.Warning("Completion script is empty: %s", path)
			ok = false
			continue
		}
	}
	if ok {
		output.Success("Completion scripts verified (%s)", sh)
	}
	return true, ok
}
