package domain

import "context"

// ProjectScanner scans a project directory and returns file metadata.
type ProjectScanner interface {
	Scan(projectPath string, cfg ProjectConfig) (*ScanResult, error)
}

// ImportExtractor derives import edges from a single file record. It is a
// pure function of file content: unparseable import syntax is returned as a
// parse-error Violation, never as a Go error, so one bad file cannot abort
// the run.
type ImportExtractor interface {
	Extract(rec FileRecord, fileSet map[string]bool, cfg ProjectConfig) ([]ImportEdge, []Violation)
}

// ConfigLoader loads project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// LintRunner reports unused local bindings. The default adapter is a
// text-pattern scan; a real lint engine can be swapped in behind this port.
type LintRunner interface {
	UnusedBindings(ctx context.Context, records []FileRecord) []Violation
}

// SpecRunner performs a dry run over behavior-specification files: scenario
// coverage plus detection of steps referenced without a matching definition.
type SpecRunner interface {
	DryRun(ctx context.Context, features, steps []FileRecord, featuresDir string) []Violation
}

// GitInfo provides version-control metadata for reports.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
}

// RunHistory persists one summary entry per audit run.
type RunHistory interface {
	Save(projectPath string, entry HistoryEntry) error
	Load(projectPath string) ([]HistoryEntry, error)
}
