// Package parser extracts import edges from TypeScript sources.
//
// Extraction is regex-based, matching the checker's best-effort heuristic
// design; a syntax-tree parser would eliminate the false negatives a text
// scan cannot avoid by construction.
package parser

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/archgate/archgate/internal/domain"
)

// ImportParser implements domain.ImportExtractor over TypeScript content.
type ImportParser struct{}

func New() *ImportParser {
	return &ImportParser{}
}

// maxStatementLines bounds how far a formatted import statement is joined
// before giving up on finding its specifier.
const maxStatementLines = 16

var (
	// import x from '...'; export { x } from '...'
	fromRe = regexp.MustCompile(`^\s*(?:import|export)\b[^'"]*?from\s*['"]([^'"]+)['"]`)
	// import '...' (side-effect import)
	bareRe = regexp.MustCompile(`^\s*import\s*['"]([^'"]+)['"]`)
	// require('...') and dynamic import('...') can appear mid-line.
	callRe = regexp.MustCompile(`(?:\brequire|\bimport)\s*\(\s*['"]([^'"]+)['"]\s*\)`)
	// Start of an import or export statement.
	stmtStartRe = regexp.MustCompile(`^\s*(?:import|export)\b`)
	// A from keyword before any string literal marks an import statement;
	// one that never reaches a quoted specifier is unparseable.
	suspectRe = regexp.MustCompile(`^\s*(?:import|export)\b[^'"]*\bfrom\b`)
)

// Extract is a pure function of the record's content. A file with
// unparseable import syntax contributes a parse-error violation and the run
// continues; no single bad file aborts the scan.
//
// Formatters break import clauses with several names across lines, so a
// statement is joined with its continuation lines until the quoted
// specifier appears. Edges are reported on the statement's first line.
func (p *ImportParser) Extract(
	rec domain.FileRecord,
	fileSet map[string]bool,
	cfg domain.ProjectConfig,
) ([]domain.ImportEdge, []domain.Violation) {
	var edges []domain.ImportEdge
	var violations []domain.Violation

	lines := strings.Split(rec.Content, "\n")
	for i, line := range lines {
		lineNo := i + 1

		for _, m := range callRe.FindAllStringSubmatch(line, -1) {
			edges = append(edges, p.resolve(rec.Path, m[1], lineNo, fileSet, cfg))
		}

		if !stmtStartRe.MatchString(line) {
			continue
		}

		stmt := line
		for j := i + 1; j < len(lines) && j-i < maxStatementLines; j++ {
			if statementComplete(stmt) || stmtStartRe.MatchString(lines[j]) {
				break
			}
			stmt += " " + strings.TrimSpace(lines[j])
		}

		switch {
		case fromRe.MatchString(stmt):
			edges = append(edges, p.resolve(rec.Path, fromRe.FindStringSubmatch(stmt)[1], lineNo, fileSet, cfg))
		case bareRe.MatchString(stmt):
			edges = append(edges, p.resolve(rec.Path, bareRe.FindStringSubmatch(stmt)[1], lineNo, fileSet, cfg))
		case suspectRe.MatchString(stmt):
			violations = append(violations, domain.NewViolation(
				domain.RuleParseError, rec.Path, lineNo,
				fmt.Sprintf("unparseable import syntax: %s", strings.TrimSpace(line)),
			))
		}
	}

	return edges, violations
}

// statementComplete reports whether a joined statement already carries its
// specifier or has reached a statement terminator.
func statementComplete(stmt string) bool {
	return fromRe.MatchString(stmt) || bareRe.MatchString(stmt) || strings.Contains(stmt, ";")
}

// resolve turns a specifier into an ImportEdge. Relative and alias targets
// become project-relative paths so the destination layer can be classified;
// bare specifiers are external packages.
func (p *ImportParser) resolve(
	fromFile, spec string,
	line int,
	fileSet map[string]bool,
	cfg domain.ProjectConfig,
) domain.ImportEdge {
	root := strings.Trim(cfg.SourceRoot, "/")

	var target string
	switch {
	case strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../"):
		target = path.Clean(path.Join(path.Dir(fromFile), spec))
	case strings.HasPrefix(spec, "@/"):
		target = path.Clean(root + "/" + strings.TrimPrefix(spec, "@/"))
	default:
		return domain.ImportEdge{
			FromFile: fromFile,
			Target:   spec,
			Kind:     domain.TargetExternal,
			Line:     line,
		}
	}

	return domain.ImportEdge{
		FromFile: fromFile,
		Target:   resolveFile(target, fileSet),
		Kind:     domain.TargetInternal,
		Line:     line,
	}
}

// resolveFile applies TypeScript module resolution against the scanned file
// set: exact path, then .ts/.tsx extensions, then the directory barrel.
// When nothing matches, the .ts candidate is returned so classification and
// reporting still name a concrete path.
func resolveFile(target string, fileSet map[string]bool) string {
	candidates := []string{
		target,
		target + ".ts",
		target + ".tsx",
		target + "/index.ts",
		target + "/index.tsx",
	}
	for _, c := range candidates {
		if fileSet[c] {
			return c
		}
	}
	if path.Ext(target) != "" {
		return target
	}
	return target + ".ts"
}
