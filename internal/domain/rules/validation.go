package rules

import (
	"path"
	"regexp"
	"strings"

	"github.com/archgate/archgate/internal/domain"
)

var (
	parseCallRe = regexp.MustCompile(`\.\s*(?:parse|safeParse)\s*\(`)
	awaitRe     = regexp.MustCompile(`\bawait\b`)
	executeRe   = regexp.MustCompile(`(?m)^\s*(?:public\s+)?(?:async\s+)?execute\s*\(|export\s+(?:async\s+)?function\s+\w+\s*\(`)
)

// CheckValidationEntry verifies that every use-case entry point invokes a
// schema validation call on its input before doing any other work. The
// "before" test is a heuristic over text order: the first parse/safeParse
// call must precede the first await in the file's execute body. Absence of
// any parse call is always a violation.
func CheckValidationEntry(records []domain.FileRecord) []domain.Violation {
	var violations []domain.Violation

	for _, rec := range records {
		if !isUseCaseFile(rec) {
			continue
		}

		body := rec.Content
		if loc := executeRe.FindStringIndex(body); loc != nil {
			body = body[loc[1]:]
		}

		parseLoc := parseCallRe.FindStringIndex(body)
		if parseLoc == nil {
			violations = append(violations, domain.NewViolation(
				domain.RuleMissingValidation, rec.Path, 0,
				"use case does not validate its input with a schema parse call",
			))
			continue
		}

		if awaitLoc := awaitRe.FindStringIndex(body); awaitLoc != nil && awaitLoc[0] < parseLoc[0] {
			violations = append(violations, domain.NewViolation(
				domain.RuleMissingValidation, rec.Path, lineAt(rec.Content, len(rec.Content)-len(body)+awaitLoc[0]),
				"use case performs work before validating its input",
			))
		}
	}

	return violations
}

// isUseCaseFile reports whether a record is a use-case entry point: a
// non-barrel, non-test source file under the application layer's use-cases
// directory.
func isUseCaseFile(rec domain.FileRecord) bool {
	if rec.Layer != domain.LayerApplication || !domain.IsSourceFile(rec.Path) {
		return false
	}
	if domain.IsBarrelFile(rec.Path) || strings.Contains(rec.Path, ".test.") || strings.Contains(rec.Path, ".spec.") {
		return false
	}
	dir := path.Dir(rec.Path)
	return strings.HasSuffix(dir, "/use-cases") || strings.Contains(dir, "/use-cases/")
}
