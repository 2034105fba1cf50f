package rules

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/archgate/archgate/internal/domain"
)

// CheckBarrels enforces the barrel convention over the source tree:
//
//   - presence: every layer directory and every direct subdirectory holding
//     non-index source files must contain an index barrel;
//   - usage: internal imports that reach past a subdirectory's barrel into an
//     individual file are violations, except from within the same
//     subdirectory.
func CheckBarrels(
	records []domain.FileRecord,
	edges []domain.ImportEdge,
	cfg domain.ProjectConfig,
) []domain.Violation {
	violations := checkBarrelPresence(records, cfg)
	violations = append(violations, checkBarrelUsage(edges, cfg)...)
	return violations
}

func checkBarrelPresence(records []domain.FileRecord, cfg domain.ProjectConfig) []domain.Violation {
	root := strings.Trim(cfg.SourceRoot, "/")

	// Directories that need a barrel: src/<layer> and src/<layer>/<sub>,
	// keyed by directory path. A directory qualifies once it holds at least
	// one non-index source file (directly or, for layer roots, anywhere
	// below).
	needsBarrel := make(map[string]bool)
	hasBarrel := make(map[string]bool)

	for _, rec := range records {
		if rec.Layer == domain.LayerUnclassified || rec.Layer == domain.LayerEntry {
			continue
		}
		dir := path.Dir(rec.Path)

		if domain.IsBarrelFile(rec.Path) {
			hasBarrel[dir] = true
			continue
		}
		if !domain.IsSourceFile(rec.Path) {
			continue
		}

		layerDir := root + "/" + string(rec.Layer)
		needsBarrel[layerDir] = true
		if sub := directSubdir(layerDir, rec.Path); sub != "" {
			needsBarrel[sub] = true
		}
	}

	dirs := make([]string, 0, len(needsBarrel))
	for dir := range needsBarrel {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	var violations []domain.Violation
	for _, dir := range dirs {
		if !hasBarrel[dir] {
			violations = append(violations, domain.NewViolation(
				domain.RuleMissingBarrel, dir+"/index.ts", 0,
				fmt.Sprintf("directory %s has source files but no index barrel", dir),
			))
		}
	}
	return violations
}

// directSubdir returns the direct subdirectory of layerDir that contains
// filePath, or "" when the file sits directly in layerDir or deeper nesting
// does not apply.
func directSubdir(layerDir, filePath string) string {
	prefix := layerDir + "/"
	if !strings.HasPrefix(filePath, prefix) {
		return ""
	}
	rest := strings.TrimPrefix(filePath, prefix)
	idx := strings.Index(rest, "/")
	if idx < 0 {
		return ""
	}
	return layerDir + "/" + rest[:idx]
}

func checkBarrelUsage(edges []domain.ImportEdge, cfg domain.ProjectConfig) []domain.Violation {
	root := strings.Trim(cfg.SourceRoot, "/")
	var violations []domain.Violation

	for _, edge := range edges {
		if edge.Kind != domain.TargetInternal {
			continue
		}
		if domain.IsBarrelFile(edge.Target) || !domain.IsSourceFile(edge.Target) {
			continue
		}

		_, targetSub := splitLayerSubdir(root, edge.Target)
		if targetSub == "" {
			// File directly under a layer root; barrels only gate
			// subdirectory internals.
			continue
		}

		// Deeper than the subdirectory's own files still counts: anything
		// inside targetSub must be imported via targetSub's barrel.
		fromDir := path.Dir(edge.FromFile)
		if fromDir == targetSub || strings.HasPrefix(fromDir+"/", targetSub+"/") {
			continue
		}

		violations = append(violations, domain.NewViolation(
			domain.RuleDirectImport, edge.FromFile, edge.Line,
			fmt.Sprintf("import of %s bypasses the %s barrel", edge.Target, targetSub),
		))
	}
	return violations
}

// splitLayerSubdir decomposes src/<layer>/<sub>/... into the layer dir and
// the subdirectory path. Returns ("", "") for paths outside the source root
// and (layerDir, "") for files directly under the layer root.
func splitLayerSubdir(root, target string) (layerDir, subDir string) {
	prefix := root + "/"
	if !strings.HasPrefix(target, prefix) {
		return "", ""
	}
	rest := strings.TrimPrefix(target, prefix)
	parts := strings.Split(rest, "/")
	if len(parts) < 2 {
		return "", ""
	}
	layerDir = root + "/" + parts[0]
	if len(parts) == 2 {
		return layerDir, ""
	}
	return layerDir, layerDir + "/" + parts[1]
}
