package rollback

import "time"

// Kind distinguishes what a backup entry captured.
type Kind string

const (
	KindBinary     Kind = "binary"
	KindCompletion Kind = "completion"
)

// Entry records one captured file: where it came from and where its backup
// copy lives. Restoration is per-entry so one failure never blocks the rest.
type Entry struct {
	Name         string
	OriginalPath string
	BackupPath   string
	Kind         Kind
}

// Snapshot describes one backup of the installed binaries and completion
// scripts. It is created immediately before the first destructive update
// step and consumed by exactly one rollback or one cleanup.
type Snapshot struct {
	Version   string
	Dir       string
	Entries   []Entry
	CreatedAt time.Time
}

// Binaries returns the captured binary entries.
func (s *Snapshot) Binaries() []Entry {
	return s.byKind(KindBinary)
}

// Completions returns the captured completion script entries.
func (s *Snapshot) Completions() []Entry {
	return s.byKind(KindCompletion)
}

func (s *Snapshot) byKind(kind Kind) []Entry {
	var entries []Entry
	for _, e := range s.Entries {
		if e.Kind == kind {
			entries = append(entries, e)
		}
	}
	return entries
}

// FailedRestore names a file that could not be restored and why.
type FailedRestore struct {
	Name string
	Err  string
}

// Outcome reports exactly what a rollback recovered and what it did not.
// It is informational only; the per-file split exists because the user's
// remedy differs for each failure kind.
type Outcome struct {
	RestoredBinaries    []string
	FailedBinaries      []FailedRestore
	RestoredCompletions []string
	FailedCompletions   []FailedRestore

	// ShellReloaded is nil when the shell could not be detected.
	ShellReloaded *bool
	// ConfigFile is the shell configuration the user should re-source when
	// the automatic reload did not succeed.
	ConfigFile string
}

// Clean reports whether every captured file was restored.
func (o *Outcome) Clean() bool {
	return len(o.FailedBinaries) == 0 && len(o.FailedCompletions) == 0
}
