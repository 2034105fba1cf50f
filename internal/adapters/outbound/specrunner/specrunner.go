// Package specrunner is the default SpecRunner adapter: a dry run over
// Gherkin feature files that checks scenario coverage and step-definition
// completeness without executing anything.
package specrunner

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/archgate/archgate/internal/domain"
)

// DryRunner implements domain.SpecRunner over scanned file records.
type DryRunner struct{}

func New() *DryRunner {
	return &DryRunner{}
}

var (
	scenarioRe = regexp.MustCompile(`(?m)^\s*Scenario(?: Outline)?:`)
	stepRe     = regexp.MustCompile(`(?m)^\s*(Given|When|Then|And|But)\s+(.+?)\s*$`)
	// Given('...'), When("..."), Then(`...`) and the regex-literal form.
	defStringRe = regexp.MustCompile(`\b(?:Given|When|Then)\s*\(\s*(?:'([^']+)'|"([^"]+)"|` + "`([^`]+)`" + `)`)
	defRegexRe  = regexp.MustCompile(`\b(?:Given|When|Then)\s*\(\s*/((?:[^/\\]|\\.)+)/`)
)

// DryRun checks that the behavior-spec directory is populated, that every
// feature file declares at least one scenario, and that every referenced
// step has a matching definition. A step referenced without an
// implementation is a hard failure.
func (r *DryRunner) DryRun(ctx context.Context, features, steps []domain.FileRecord, featuresDir string) []domain.Violation {
	if len(features) == 0 {
		return []domain.Violation{domain.NewViolation(
			domain.RuleMissingSpecCoverage, featuresDir, 0,
			fmt.Sprintf("behavior-specification directory %q has no feature files", featuresDir),
		)}
	}

	matchers := collectDefinitions(steps)

	var violations []domain.Violation
	for _, feature := range features {
		if ctx.Err() != nil {
			return violations
		}

		if !scenarioRe.MatchString(feature.Content) {
			violations = append(violations, domain.NewViolation(
				domain.RuleMissingSpecCoverage, feature.Path, 0,
				"feature file declares no scenarios",
			))
			continue
		}

		for _, m := range stepRe.FindAllStringSubmatchIndex(feature.Content, -1) {
			text := feature.Content[m[4]:m[5]]
			if matchesAny(matchers, text) {
				continue
			}
			line := strings.Count(feature.Content[:m[0]], "\n") + 1
			violations = append(violations, domain.NewViolation(
				domain.RuleUndefinedStep, feature.Path, line,
				fmt.Sprintf("step %q has no matching step definition", text),
			))
		}
	}

	return violations
}

// collectDefinitions extracts step matchers from step-definition files.
// String patterns support cucumber-expression placeholders; regex literals
// are compiled as-is (anchored).
func collectDefinitions(steps []domain.FileRecord) []*regexp.Regexp {
	var matchers []*regexp.Regexp
	for _, rec := range steps {
		for _, m := range defStringRe.FindAllStringSubmatch(rec.Content, -1) {
			pattern := m[1] + m[2] + m[3]
			if re := cucumberExpression(pattern); re != nil {
				matchers = append(matchers, re)
			}
		}
		for _, m := range defRegexRe.FindAllStringSubmatch(rec.Content, -1) {
			if re, err := regexp.Compile("^(?:" + m[1] + ")$"); err == nil {
				matchers = append(matchers, re)
			}
		}
	}
	return matchers
}

// cucumberExpression converts a cucumber expression into an anchored regexp:
// {int} -> digits, {float} -> number, {word} -> one word, {string} -> quoted.
func cucumberExpression(pattern string) *regexp.Regexp {
	escaped := regexp.QuoteMeta(pattern)
	replacer := strings.NewReplacer(
		`\{int\}`, `-?\d+`,
		`\{float\}`, `-?\d+(?:\.\d+)?`,
		`\{word\}`, `[^\s]+`,
		`\{string\}`, `"[^"]*"`,
	)
	re, err := regexp.Compile("^" + replacer.Replace(escaped) + "$")
	if err != nil {
		return nil
	}
	return re
}

func matchesAny(matchers []*regexp.Regexp, text string) bool {
	for _, re := range matchers {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
