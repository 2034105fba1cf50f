package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archgate/archgate/internal/domain"
	"github.com/archgate/archgate/internal/domain/rules"
)

func TestCheckRegistration_UnregisteredTool(t *testing.T) {
	records := []domain.FileRecord{
		srcRec("src/mcp/tools/list.tool.ts", domain.LayerMCP,
			`export class ListTasksTool { async handle() { try { return {}; } catch (e) { return { isError: true }; } } }`),
		srcRec("src/di/container.ts", domain.LayerDI,
			`export function buildContainer() { return {}; }`),
	}

	violations := rules.CheckRegistration(records)
	require.Len(t, violations, 1)
	assert.Equal(t, domain.RuleUnregisteredHandler, violations[0].RuleID)
	assert.Contains(t, violations[0].Message, "ListTasksTool")
}

func TestCheckRegistration_RegisteredToolPasses(t *testing.T) {
	records := []domain.FileRecord{
		srcRec("src/mcp/tools/create.tool.ts", domain.LayerMCP,
			`export class CreateTaskTool {}`),
		srcRec("src/di/container.ts", domain.LayerDI,
			`import { CreateTaskTool } from '../mcp'; export const tool = new CreateTaskTool();`),
	}

	assert.Empty(t, rules.CheckRegistration(records))
}

func TestCheckRegistration_UnreachableUseCase(t *testing.T) {
	records := []domain.FileRecord{
		srcRec("src/application/use-cases/delete-task.use-case.ts", domain.LayerApplication,
			`export class DeleteTaskUseCase { async execute() {} }`),
		srcRec("src/mcp/tools/create.tool.ts", domain.LayerMCP,
			`export class CreateTaskTool {}`),
		srcRec("src/di/container.ts", domain.LayerDI,
			`CreateTaskTool;`),
	}

	violations := rules.CheckRegistration(records)
	require.Len(t, violations, 1)
	assert.Equal(t, domain.RuleUnreachableUseCase, violations[0].RuleID)
	assert.Contains(t, violations[0].Message, "DeleteTaskUseCase")
}

func TestCheckRegistration_ReachableUseCasePasses(t *testing.T) {
	records := []domain.FileRecord{
		srcRec("src/application/use-cases/create-task.use-case.ts", domain.LayerApplication,
			`export class CreateTaskUseCase { async execute() {} }`),
		srcRec("src/mcp/tools/create.tool.ts", domain.LayerMCP,
			`import { CreateTaskUseCase } from '../../application'; export class CreateTaskTool {}`),
		srcRec("src/di/container.ts", domain.LayerDI,
			`CreateTaskTool;`),
	}

	assert.Empty(t, rules.CheckRegistration(records))
}

func TestCheckRegistration_NameMatchIsWholeWord(t *testing.T) {
	// CreateTaskToolkit must not satisfy a reference to CreateTaskTool.
	records := []domain.FileRecord{
		srcRec("src/mcp/tools/create.tool.ts", domain.LayerMCP,
			`export class CreateTaskTool {}`),
		srcRec("src/di/container.ts", domain.LayerDI,
			`const x = new CreateTaskToolkit();`),
	}

	violations := rules.CheckRegistration(records)
	require.Len(t, violations, 1)
	assert.Equal(t, domain.RuleUnregisteredHandler, violations[0].RuleID)
}
