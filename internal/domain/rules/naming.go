package rules

import (
	"fmt"
	"path"
	"strings"

	"github.com/fatih/camelcase"

	"github.com/archgate/archgate/internal/domain"
)

// CheckFileNaming enforces kebab-case file names for classified source
// files. The violation message carries the kebab-case rename suggestion.
func CheckFileNaming(records []domain.FileRecord) []domain.Violation {
	var violations []domain.Violation

	for _, rec := range records {
		if rec.Layer == domain.LayerUnclassified || !domain.IsSourceFile(rec.Path) {
			continue
		}
		base := path.Base(rec.Path)
		stem := strings.TrimSuffix(strings.TrimSuffix(base, ".tsx"), ".ts")
		// Multi-dot stems like foo.test keep their qualifier.
		stem = strings.SplitN(stem, ".", 2)[0]

		if !hasUpperOrUnderscore(stem) {
			continue
		}

		suggestion := toKebab(stem)
		violations = append(violations, domain.NewViolation(
			domain.RuleNaming, rec.Path, 0,
			fmt.Sprintf("file name %q is not kebab-case (suggest %q)", base, suggestion),
		))
	}

	return violations
}

func hasUpperOrUnderscore(s string) bool {
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || r == '_' {
			return true
		}
	}
	return false
}

func toKebab(stem string) string {
	stem = strings.ReplaceAll(stem, "_", "-")
	var words []string
	for _, part := range strings.Split(stem, "-") {
		for _, w := range camelcase.Split(part) {
			if w != "" {
				words = append(words, strings.ToLower(w))
			}
		}
	}
	return strings.Join(words, "-")
}
