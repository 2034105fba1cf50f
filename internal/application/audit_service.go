package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/archgate/archgate/internal/domain"
	"github.com/archgate/archgate/internal/domain/report"
	"github.com/archgate/archgate/internal/domain/rules"
)

// AuditService orchestrates the audit pipeline:
// scan -> classify + extract (parallel) -> boundary rules -> conformance
// checks -> aggregate.
type AuditService struct {
	scanner      domain.ProjectScanner
	extractor    domain.ImportExtractor
	configLoader domain.ConfigLoader
	lintRunner   domain.LintRunner
	specRunner   domain.SpecRunner
	gitInfo      domain.GitInfo
	history      domain.RunHistory
}

func NewAuditService(
	scanner domain.ProjectScanner,
	extractor domain.ImportExtractor,
	configLoader domain.ConfigLoader,
	lintRunner domain.LintRunner,
	specRunner domain.SpecRunner,
	gitInfo domain.GitInfo,
	history domain.RunHistory,
) *AuditService {
	return &AuditService{
		scanner:      scanner,
		extractor:    extractor,
		configLoader: configLoader,
		lintRunner:   lintRunner,
		specRunner:   specRunner,
		gitInfo:      gitInfo,
		history:      history,
	}
}

// ProjectData is the joined result of the scan/classify/extract phase,
// shared by the audit and graph surfaces.
type ProjectData struct {
	Config   domain.ProjectConfig
	Lattice  *domain.BoundaryLattice
	Scan     *domain.ScanResult
	Records  []domain.FileRecord
	Features []domain.FileRecord
	Steps    []domain.FileRecord
	Layers   map[string]domain.Layer
	Edges    []domain.ImportEdge
	// Violations carries read and parse failures surfaced during the scan
	// phase; they join the rule violations in the final report.
	Violations []domain.Violation
}

// Audit runs the full gate against a project and returns its report. The
// report is binary: Passed is false as soon as a single violation exists.
func (s *AuditService) Audit(ctx context.Context, projectPath string) (*domain.RunReport, error) {
	return s.AuditWithSamples(ctx, projectPath, 0)
}

// AuditWithSamples is Audit with an explicit per-rule sample bound. A bound
// of 0 keeps the configured value.
func (s *AuditService) AuditWithSamples(ctx context.Context, projectPath string, samples int) (*domain.RunReport, error) {
	data, err := s.Analyze(ctx, projectPath)
	if err != nil {
		return nil, err
	}

	violations := s.CollectViolations(ctx, data)

	sampleSize := data.Config.SampleSize()
	if samples > 0 {
		sampleSize = samples
	}
	rep := report.Aggregate(projectPath, violations, len(data.Records), len(data.Edges), sampleSize)

	if s.gitInfo != nil && s.gitInfo.IsGitRepo(projectPath) {
		if hash, err := s.gitInfo.CommitHash(projectPath); err == nil {
			rep.CommitHash = hash
		}
	}

	if s.history != nil {
		_ = s.history.Save(projectPath, domain.HistoryEntry{
			Timestamp:  rep.Timestamp.Format(time.RFC3339),
			CommitHash: rep.CommitHash,
			Total:      rep.Total,
			Passed:     rep.Passed,
		})
	}

	return rep, nil
}

// CollectViolations runs every rule against analyzed project data and
// returns the full, unsampled violation list.
func (s *AuditService) CollectViolations(ctx context.Context, data *ProjectData) []domain.Violation {
	violations := append([]domain.Violation(nil), data.Violations...)
	violations = append(violations, rules.CheckBoundaries(data.Lattice, data.Layers, data.Edges, data.Config)...)
	violations = append(violations, rules.CheckBarrels(data.Records, data.Edges, data.Config)...)
	violations = append(violations, rules.CheckErrorShapes(data.Records)...)
	violations = append(violations, rules.CheckValidationEntry(data.Records)...)
	violations = append(violations, rules.CheckHandlerGuards(data.Records)...)
	violations = append(violations, rules.CheckRegistration(data.Records)...)
	violations = append(violations, rules.CheckOrphans(data.Records, data.Edges, data.Config)...)
	violations = append(violations, rules.CheckFileNaming(data.Records)...)
	violations = append(violations, s.lintRunner.UnusedBindings(ctx, data.Records)...)
	violations = append(violations, s.specRunner.DryRun(ctx, data.Features, data.Steps, data.Config.FeaturesDir)...)
	return violations
}

// Analyze runs the scan/classify/extract phase only.
func (s *AuditService) Analyze(ctx context.Context, projectPath string) (*ProjectData, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	scan, err := s.scanner.Scan(projectPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	fileSet := make(map[string]bool, len(scan.AllFiles))
	for _, f := range scan.AllFiles {
		fileSet[f] = true
	}

	records, features, steps, readViolations := s.loadRecords(ctx, scan, cfg)

	layers := make(map[string]domain.Layer, len(records))
	for _, rec := range records {
		layers[rec.Path] = rec.Layer
	}

	edges, parseViolations := s.extractAll(ctx, records, fileSet, cfg)

	return &ProjectData{
		Config:     cfg,
		Lattice:    cfg.BuildLattice(),
		Scan:       scan,
		Records:    records,
		Features:   features,
		Steps:      steps,
		Layers:     layers,
		Edges:      edges,
		Violations: append(readViolations, parseViolations...),
	}, nil
}

// loadRecords reads and classifies every scanned file in parallel. Each
// file is an independent pure computation; the only synchronization point
// is the join. A read failure becomes a parse-error violation for that file
// and the run continues.
func (s *AuditService) loadRecords(
	ctx context.Context,
	scan *domain.ScanResult,
	cfg domain.ProjectConfig,
) (records, features, steps []domain.FileRecord, violations []domain.Violation) {
	type loaded struct {
		rec domain.FileRecord
		v   *domain.Violation
	}

	load := func(paths []string, classify bool) []loaded {
		results := make([]loaded, len(paths))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.NumCPU())
		for i, relPath := range paths {
			g.Go(func() error {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				content, err := os.ReadFile(filepath.Join(scan.RootPath, relPath))
				if err != nil {
					v := domain.NewViolation(domain.RuleParseError, relPath, 0,
						fmt.Sprintf("reading file: %v", err))
					results[i] = loaded{v: &v}
					return nil
				}
				layer := domain.LayerUnclassified
				if classify {
					layer = domain.ClassifyPath(relPath, cfg.SourceRoot)
				}
				results[i] = loaded{rec: domain.FileRecord{
					Path:    relPath,
					Layer:   layer,
					Content: string(content),
				}}
				return nil
			})
		}
		_ = g.Wait()
		return results
	}

	for _, l := range load(scan.SourceFiles, true) {
		if l.v != nil {
			violations = append(violations, *l.v)
			continue
		}
		if l.rec.Path != "" {
			records = append(records, l.rec)
		}
	}
	for _, l := range load(scan.FeatureFiles, false) {
		if l.v == nil && l.rec.Path != "" {
			features = append(features, l.rec)
		}
	}
	for _, l := range load(scan.StepFiles, false) {
		if l.v == nil && l.rec.Path != "" {
			steps = append(steps, l.rec)
		}
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Path < records[j].Path })
	sort.Slice(features, func(i, j int) bool { return features[i].Path < features[j].Path })
	sort.Slice(steps, func(i, j int) bool { return steps[i].Path < steps[j].Path })
	return records, features, steps, violations
}

// extractAll runs the import extractor across records in parallel and joins
// the per-file edge and violation slices in deterministic order.
func (s *AuditService) extractAll(
	ctx context.Context,
	records []domain.FileRecord,
	fileSet map[string]bool,
	cfg domain.ProjectConfig,
) ([]domain.ImportEdge, []domain.Violation) {
	perFileEdges := make([][]domain.ImportEdge, len(records))
	perFileViolations := make([][]domain.Violation, len(records))

	// Each goroutine writes a disjoint index; the only synchronization
	// point is the join below.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, rec := range records {
		if !domain.IsSourceFile(rec.Path) {
			continue
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			perFileEdges[i], perFileViolations[i] = s.extractor.Extract(rec, fileSet, cfg)
			return nil
		})
	}
	_ = g.Wait()

	var edges []domain.ImportEdge
	var violations []domain.Violation
	for i := range records {
		edges = append(edges, perFileEdges[i]...)
		violations = append(violations, perFileViolations[i]...)
	}
	return edges, violations
}
