package rules

import (
	"path"
	"regexp"
	"strings"

	"github.com/archgate/archgate/internal/domain"
)

var (
	tryRe      = regexp.MustCompile(`\btry\s*{`)
	catchRe    = regexp.MustCompile(`\bcatch\s*[({]`)
	errPayload = regexp.MustCompile(`isError\s*:\s*true|['"]?error['"]?\s*:`)
	rethrowRe  = regexp.MustCompile(`catch\s*\(\s*(\w+)\s*\)\s*{\s*throw\b`)
)

// CheckHandlerGuards verifies that every externally-invocable MCP tool wraps
// its body in try/catch and returns a structured error payload on failure
// instead of throwing across the protocol boundary. An isolated failure in
// one tool must not crash the adapter process or other in-flight calls.
func CheckHandlerGuards(records []domain.FileRecord) []domain.Violation {
	var violations []domain.Violation

	for _, rec := range records {
		if !isToolFile(rec) {
			continue
		}

		hasTry := tryRe.MatchString(rec.Content)
		hasCatch := catchRe.MatchString(rec.Content)

		if !hasTry || !hasCatch {
			violations = append(violations, domain.NewViolation(
				domain.RuleMissingErrorHandler, rec.Path, 0,
				"tool handler body is not guarded by try/catch",
			))
			continue
		}

		if loc := rethrowRe.FindStringIndex(rec.Content); loc != nil {
			violations = append(violations, domain.NewViolation(
				domain.RuleMissingErrorHandler, rec.Path, lineAt(rec.Content, loc[0]),
				"tool handler rethrows across the protocol boundary instead of returning a structured error",
			))
			continue
		}

		if !errPayload.MatchString(rec.Content) {
			violations = append(violations, domain.NewViolation(
				domain.RuleMissingErrorHandler, rec.Path, 0,
				"tool handler catch block does not return a structured error payload",
			))
		}
	}

	return violations
}

// isToolFile reports whether a record is an externally-invocable tool
// definition: a non-barrel source file under the mcp layer's tools
// directory.
func isToolFile(rec domain.FileRecord) bool {
	if rec.Layer != domain.LayerMCP || !domain.IsSourceFile(rec.Path) {
		return false
	}
	if domain.IsBarrelFile(rec.Path) {
		return false
	}
	dir := path.Dir(rec.Path)
	return strings.HasSuffix(dir, "/tools") || strings.Contains(dir, "/tools/")
}
