package rules

import (
	"sort"
	"strings"

	"github.com/archgate/archgate/internal/domain"
)

// CheckOrphans reports source files never reachable via import edges from
// any entry-point file. Reachability is a breadth-first walk over internal
// edges starting at the entry layer (plus any configured extra entry
// points). Files matching an orphan allow-pattern are exempt even when
// unreachable; barrels are only reachable through being imported like any
// other file.
func CheckOrphans(
	records []domain.FileRecord,
	edges []domain.ImportEdge,
	cfg domain.ProjectConfig,
) []domain.Violation {
	outgoing := make(map[string][]string)
	for _, edge := range edges {
		if edge.Kind == domain.TargetInternal {
			outgoing[edge.FromFile] = append(outgoing[edge.FromFile], edge.Target)
		}
	}

	queue := entryPoints(records, cfg)
	reached := make(map[string]bool, len(records))
	for _, p := range queue {
		reached[p] = true
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range outgoing[cur] {
			if !reached[next] {
				reached[next] = true
				queue = append(queue, next)
			}
		}
	}

	var violations []domain.Violation
	paths := make([]string, 0, len(records))
	byPath := make(map[string]domain.FileRecord, len(records))
	for _, rec := range records {
		paths = append(paths, rec.Path)
		byPath[rec.Path] = rec
	}
	sort.Strings(paths)

	for _, p := range paths {
		rec := byPath[p]
		if !domain.IsSourceFile(p) || rec.Layer == domain.LayerEntry {
			continue
		}
		if rec.Layer == domain.LayerUnclassified && !strings.HasPrefix(p, strings.Trim(cfg.SourceRoot, "/")+"/") {
			// Only files under the source root participate in the orphan scan.
			continue
		}
		if reached[p] || matchesAllowPattern(p, cfg.OrphanAllow) {
			continue
		}
		violations = append(violations, domain.NewViolation(
			domain.RuleDeadCode, p, 0,
			"file is never imported from any reachable entry point",
		))
	}

	return violations
}

func entryPoints(records []domain.FileRecord, cfg domain.ProjectConfig) []string {
	var entries []string
	for _, rec := range records {
		if rec.Layer == domain.LayerEntry {
			entries = append(entries, rec.Path)
		}
	}
	for _, extra := range cfg.EntryPoints {
		entries = append(entries, strings.TrimPrefix(extra, "./"))
	}
	sort.Strings(entries)
	return entries
}

// matchesAllowPattern reports whether the path matches any configured
// exclusion. Patterns are plain substrings (a trailing slash anchors a
// directory segment, a leading dot anchors a suffix), which keeps the
// configuration predictable without a glob engine.
func matchesAllowPattern(p string, patterns []string) bool {
	for _, pat := range patterns {
		if pat == "" {
			continue
		}
		if strings.HasPrefix(pat, ".") && strings.HasSuffix(p, pat) {
			return true
		}
		if strings.Contains(p, pat) {
			return true
		}
	}
	return false
}
