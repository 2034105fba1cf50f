package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/archgate/archgate/internal/domain"
)

var (
	toolExportRe    = regexp.MustCompile(`export\s+(?:const|class|function)\s+(\w+(?:Tool|Handler))\b`)
	useCaseExportRe = regexp.MustCompile(`export\s+(?:const|class|function)\s+(\w+)\b`)
)

// CheckRegistration enforces wiring completeness in both directions:
//
//   - every defined tool/handler must be referenced from the di (wiring)
//     layer used at startup, otherwise it is dead code behind the adapter;
//   - every use case must be referenced from at least one tool, otherwise it
//     is unreachable from the outside. Both are commit-blocking under the
//     zero-warning policy.
func CheckRegistration(records []domain.FileRecord) []domain.Violation {
	var diContent, mcpContent strings.Builder
	type export struct {
		name string
		file string
	}
	var tools, useCases []export

	for _, rec := range records {
		switch rec.Layer {
		case domain.LayerDI:
			diContent.WriteString(rec.Content)
			diContent.WriteByte('\n')
		case domain.LayerMCP:
			mcpContent.WriteString(rec.Content)
			mcpContent.WriteByte('\n')
			if isToolFile(rec) {
				for _, m := range toolExportRe.FindAllStringSubmatch(rec.Content, -1) {
					tools = append(tools, export{name: m[1], file: rec.Path})
				}
			}
		case domain.LayerApplication:
			if isUseCaseFile(rec) {
				for _, m := range useCaseExportRe.FindAllStringSubmatch(rec.Content, -1) {
					useCases = append(useCases, export{name: m[1], file: rec.Path})
				}
			}
		}
	}

	sort.Slice(tools, func(i, j int) bool { return tools[i].name < tools[j].name })
	sort.Slice(useCases, func(i, j int) bool { return useCases[i].name < useCases[j].name })

	var violations []domain.Violation

	di := diContent.String()
	for _, tool := range tools {
		if !referencesName(di, tool.name) {
			violations = append(violations, domain.NewViolation(
				domain.RuleUnregisteredHandler, tool.file, 0,
				fmt.Sprintf("tool %s is defined but never registered in the wiring layer", tool.name),
			))
		}
	}

	mcp := mcpContent.String()
	for _, uc := range useCases {
		if !referencesName(mcp, uc.name) {
			violations = append(violations, domain.NewViolation(
				domain.RuleUnreachableUseCase, uc.file, 0,
				fmt.Sprintf("use case %s is not reachable from any protocol-adapter handler", uc.name),
			))
		}
	}

	return violations
}

// referencesName reports whether content mentions name as a whole
// identifier.
func referencesName(content, name string) bool {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	return re.MatchString(content)
}
