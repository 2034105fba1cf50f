package domain

import "time"

// Layer is a named partition of the audited codebase with a declared
// allowed-dependency set.
type Layer string

const (
	LayerDomain         Layer = "domain"
	LayerApplication    Layer = "application"
	LayerInfrastructure Layer = "infrastructure"
	LayerMCP            Layer = "mcp"
	LayerDI             Layer = "di"
	LayerEntry          Layer = "entry"
	LayerUnclassified   Layer = "unclassified"
)

// Layers enumerates all classified layers in lattice order.
var Layers = []Layer{
	LayerDomain,
	LayerApplication,
	LayerInfrastructure,
	LayerMCP,
	LayerDI,
	LayerEntry,
}

// FileRecord is one scanned source file. Records are built once per run and
// never mutated afterwards.
type FileRecord struct {
	Path    string `json:"path"`
	Layer   Layer  `json:"layer"`
	Content string `json:"-"`
}

// TargetKind distinguishes project-internal import targets from external
// package imports.
type TargetKind string

const (
	TargetInternal TargetKind = "internal"
	TargetExternal TargetKind = "external"
)

// ImportEdge is a single import declared by a source file. For internal
// targets, Target is a project-relative path so the destination can be
// classified; for external targets it is the bare package specifier.
type ImportEdge struct {
	FromFile string     `json:"from_file"`
	Target   string     `json:"target"`
	Kind     TargetKind `json:"kind"`
	Line     int        `json:"line"`
}

// Rule identifiers. Every check reports under exactly one of these, and all
// of them are commit-blocking errors; no warning tier exists.
const (
	RuleParseError          = "parse-error"
	RuleBoundaryViolation   = "boundary-violation"
	RuleExternalDependency  = "external-dependency-violation"
	RuleMissingBarrel       = "missing-barrel"
	RuleDirectImport        = "direct-import-violation"
	RuleErrorShape          = "error-shape-violation"
	RuleMissingValidation   = "missing-validation"
	RuleMissingErrorHandler = "missing-error-handling"
	RuleUnregisteredHandler = "unregistered-handler"
	RuleUnreachableUseCase  = "unreachable-use-case"
	RuleMissingSpecCoverage = "missing-spec-coverage"
	RuleUndefinedStep       = "undefined-step"
	RuleDeadCode            = "dead-code"
	RuleNaming              = "naming-violation"
)

// RuleOrder fixes the display order of rule groups so report output is
// stable across runs.
var RuleOrder = []string{
	RuleParseError,
	RuleBoundaryViolation,
	RuleExternalDependency,
	RuleMissingBarrel,
	RuleDirectImport,
	RuleErrorShape,
	RuleMissingValidation,
	RuleMissingErrorHandler,
	RuleUnregisteredHandler,
	RuleUnreachableUseCase,
	RuleMissingSpecCoverage,
	RuleUndefinedStep,
	RuleDeadCode,
	RuleNaming,
}

const SeverityError = "error"

// Violation is a single rule failure attributed to a file.
type Violation struct {
	RuleID   string `json:"rule_id"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// NewViolation builds a Violation with the fixed error severity.
func NewViolation(ruleID, file string, line int, message string) Violation {
	return Violation{
		RuleID:   ruleID,
		File:     file,
		Line:     line,
		Message:  message,
		Severity: SeverityError,
	}
}

// RuleGroup is the per-rule slice of a RunReport: a bounded sample of
// violations plus the count that the sample omits.
type RuleGroup struct {
	RuleID     string      `json:"rule_id"`
	Total      int         `json:"total"`
	Sample     []Violation `json:"sample"`
	Overflow   int         `json:"overflow"`
	SampleSize int         `json:"sample_size"`
}

// RunReport is the aggregate result of one audit run. It is request-scoped;
// only a HistoryEntry summary of it is ever persisted.
type RunReport struct {
	ProjectPath  string      `json:"project_path"`
	Timestamp    time.Time   `json:"timestamp"`
	CommitHash   string      `json:"commit_hash,omitempty"`
	FilesScanned int         `json:"files_scanned"`
	EdgeCount    int         `json:"edge_count"`
	Total        int         `json:"total_violations"`
	Passed       bool        `json:"passed"`
	Groups       []RuleGroup `json:"groups"`
}

// HistoryEntry is the persisted one-line summary of a past audit run.
type HistoryEntry struct {
	Timestamp  string `json:"timestamp"`
	CommitHash string `json:"commit_hash,omitempty"`
	Total      int    `json:"total_violations"`
	Passed     bool   `json:"passed"`
}

// ScanResult holds the file inventory of one project walk.
type ScanResult struct {
	RootPath       string   `json:"root_path"`
	SourceFiles    []string `json:"source_files"`
	FeatureFiles   []string `json:"feature_files"`
	StepFiles      []string `json:"step_files"`
	AllFiles       []string `json:"all_files"`
	HasPackageJSON bool     `json:"has_package_json"`
	HasFeaturesDir bool     `json:"has_features_dir"`
}

// LayerEdge is one aggregated layer-to-layer dependency, used by the graph
// surfaces.
type LayerEdge struct {
	From    Layer `json:"from"`
	To      Layer `json:"to"`
	Count   int   `json:"count"`
	Allowed bool  `json:"allowed"`
}
