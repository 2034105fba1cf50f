package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/archgate/archgate/internal/domain"
)

// ErrorCategories is the closed set of allowed structured-error categories.
var ErrorCategories = map[string]bool{
	"validation": true,
	"not_found":  true,
	"conflict":   true,
	"external":   true,
	"auth":       true,
}

// requiredErrorFields are the four fields every domain error must declare:
// a machine-readable code, a human-readable remedy, a retryability flag, and
// a category from the closed set.
var requiredErrorFields = []string{"code", "remedy", "retryable", "category"}

var (
	errorClassRe   = regexp.MustCompile(`(?m)^\s*export\s+(?:abstract\s+)?class\s+(\w*Error)\b`)
	genericThrowRe = regexp.MustCompile(`throw\s+new\s+Error\s*\(`)
	categoryLitRe  = regexp.MustCompile(`category\s*[:=]\s*['"]([a-z_]+)['"]`)
)

// CheckErrorShapes verifies structured-error conformance in the domain and
// application layers. This is a text-pattern scan, not a parse: results are
// best-effort (see the dead-code and validation checks for the same caveat).
func CheckErrorShapes(records []domain.FileRecord) []domain.Violation {
	var violations []domain.Violation

	for _, rec := range records {
		if rec.Layer != domain.LayerDomain && rec.Layer != domain.LayerApplication {
			continue
		}
		if !domain.IsSourceFile(rec.Path) {
			continue
		}

		// Generic, unstructured errors thrown from domain or application
		// code are violations regardless of any declared error classes.
		if loc := genericThrowRe.FindStringIndex(rec.Content); loc != nil {
			violations = append(violations, domain.NewViolation(
				domain.RuleErrorShape, rec.Path, lineAt(rec.Content, loc[0]),
				"generic Error thrown; use a structured domain error with code, remedy, retryable, category",
			))
		}

		for _, m := range errorClassRe.FindAllStringSubmatchIndex(rec.Content, -1) {
			name := rec.Content[m[2]:m[3]]
			if name == "Error" {
				continue
			}
			body := classBody(rec.Content, m[1])
			line := lineAt(rec.Content, m[0])

			for _, field := range requiredErrorFields {
				if !declaresField(body, field) {
					violations = append(violations, domain.NewViolation(
						domain.RuleErrorShape, rec.Path, line,
						fmt.Sprintf("error class %s does not declare required field %q", name, field),
					))
				}
			}

			for _, cm := range categoryLitRe.FindAllStringSubmatch(body, -1) {
				if !ErrorCategories[cm[1]] {
					violations = append(violations, domain.NewViolation(
						domain.RuleErrorShape, rec.Path, line,
						fmt.Sprintf("error class %s uses category %q outside the closed set (validation, not_found, conflict, external, auth)", name, cm[1]),
					))
				}
			}
		}
	}

	return violations
}

// classBody returns the brace-balanced body of the class starting at or
// after offset. Falls back to the rest of the file when braces are
// unbalanced.
func classBody(content string, offset int) string {
	start := strings.Index(content[offset:], "{")
	if start < 0 {
		return ""
	}
	start += offset
	depth := 0
	for i := start; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[start+1 : i]
			}
		}
	}
	return content[start+1:]
}

// declaresField reports whether the class body declares the named field, as
// a property declaration, constructor parameter property, or assignment.
func declaresField(body, field string) bool {
	re := regexp.MustCompile(`(?m)(^|[\s(,])(?:readonly\s+|public\s+readonly\s+|public\s+|private\s+)?` +
		regexp.QuoteMeta(field) + `\s*[:=?]`)
	return re.MatchString(body)
}

// lineAt returns the 1-based line number of a byte offset.
func lineAt(content string, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	return strings.Count(content[:offset], "\n") + 1
}
