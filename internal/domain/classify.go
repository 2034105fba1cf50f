package domain

import (
	"path"
	"strings"
)

// entryBasenames are root source files treated as the entry layer.
var entryBasenames = map[string]bool{
	"index.ts":  true,
	"main.ts":   true,
	"server.ts": true,
}

// layerDirs maps top-level source directories to layers.
var layerDirs = map[string]Layer{
	"domain":         LayerDomain,
	"application":    LayerApplication,
	"infrastructure": LayerInfrastructure,
	"mcp":            LayerMCP,
	"di":             LayerDI,
}

// ClassifyPath maps a project-relative path to its layer. Classification is
// prefix-based, deterministic, and total: paths outside the known layer
// directories return LayerUnclassified, never an error. Unclassified files
// are excluded from boundary checks but still participate in the dead-code
// scan.
func ClassifyPath(relPath, sourceRoot string) Layer {
	p := strings.TrimPrefix(path.Clean(strings.ReplaceAll(relPath, "\\", "/")), "./")
	root := strings.Trim(sourceRoot, "/")

	if root != "" {
		if !strings.HasPrefix(p, root+"/") {
			return LayerUnclassified
		}
		p = strings.TrimPrefix(p, root+"/")
	}

	if !strings.Contains(p, "/") {
		if entryBasenames[p] {
			return LayerEntry
		}
		return LayerUnclassified
	}

	top := p[:strings.Index(p, "/")]
	if layer, ok := layerDirs[top]; ok {
		return layer
	}
	return LayerUnclassified
}

// IsSourceFile reports whether a path is a TypeScript source file (the only
// kind the boundary checks parse).
func IsSourceFile(relPath string) bool {
	return (strings.HasSuffix(relPath, ".ts") || strings.HasSuffix(relPath, ".tsx")) &&
		!strings.HasSuffix(relPath, ".d.ts")
}

// IsBarrelFile reports whether a path is a directory barrel.
func IsBarrelFile(relPath string) bool {
	base := path.Base(strings.ReplaceAll(relPath, "\\", "/"))
	return base == "index.ts" || base == "index.tsx"
}

// IsNonCodeArtifact reports whether an unclassified import destination is a
// recognized non-code artifact and therefore exempt from the default-deny
// boundary rule.
func IsNonCodeArtifact(target string) bool {
	return strings.HasSuffix(target, ".d.ts") ||
		strings.HasSuffix(target, ".json") ||
		strings.HasSuffix(target, ".css")
}
