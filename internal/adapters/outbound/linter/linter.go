// Package linter is the default LintRunner adapter: a text-pattern scan for
// unused local bindings. It is deliberately conservative: only bindings it
// can be certain about are reported, since the gate treats every finding as
// a hard failure.
package linter

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/archgate/archgate/internal/domain"
)

// TextLinter implements domain.LintRunner over file contents.
type TextLinter struct{}

func New() *TextLinter {
	return &TextLinter{}
}

var declRe = regexp.MustCompile(`^\s*(const|let)\s+([A-Za-z_$][\w$]*)\s*[=:]`)

// UnusedBindings reports local const/let bindings that never appear again in
// their file. Exported bindings and destructuring declarations are skipped:
// their use sites are outside what a single-file scan can see.
func (l *TextLinter) UnusedBindings(ctx context.Context, records []domain.FileRecord) []domain.Violation {
	var violations []domain.Violation

	for _, rec := range records {
		if ctx.Err() != nil {
			return violations
		}
		if !domain.IsSourceFile(rec.Path) || rec.Layer == domain.LayerUnclassified {
			continue
		}

		lines := strings.Split(rec.Content, "\n")
		for i, line := range lines {
			if strings.Contains(line, "export ") {
				continue
			}
			m := declRe.FindStringSubmatchIndex(line)
			if m == nil {
				continue
			}
			name := line[m[4]:m[5]]
			nameRe := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)

			rest := strings.Join(append(append([]string{}, lines[:i]...), lines[i+1:]...), "\n")
			if nameRe.MatchString(rest) {
				continue
			}
			// Also used later on the same line (e.g. chained expressions).
			if nameRe.MatchString(line[m[5]:]) {
				continue
			}

			violations = append(violations, domain.NewViolation(
				domain.RuleDeadCode, rec.Path, i+1,
				fmt.Sprintf("local binding %q is declared but never used", name),
			))
		}
	}

	return violations
}
