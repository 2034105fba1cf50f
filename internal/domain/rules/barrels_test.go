package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archgate/archgate/internal/domain"
	"github.com/archgate/archgate/internal/domain/rules"
)

func rec(path string, layer domain.Layer) domain.FileRecord {
	return domain.FileRecord{Path: path, Layer: layer}
}

func TestCheckBarrels_MissingLayerBarrel(t *testing.T) {
	records := []domain.FileRecord{
		rec("src/domain/task.ts", domain.LayerDomain),
	}

	violations := rules.CheckBarrels(records, nil, domain.DefaultConfig())
	require.Len(t, violations, 1)
	assert.Equal(t, domain.RuleMissingBarrel, violations[0].RuleID)
	assert.Equal(t, "src/domain/index.ts", violations[0].File)
}

func TestCheckBarrels_MissingSubdirBarrel(t *testing.T) {
	records := []domain.FileRecord{
		rec("src/application/index.ts", domain.LayerApplication),
		rec("src/application/use-cases/create.use-case.ts", domain.LayerApplication),
	}

	violations := rules.CheckBarrels(records, nil, domain.DefaultConfig())
	require.Len(t, violations, 1)
	assert.Equal(t, "src/application/use-cases/index.ts", violations[0].File)
}

func TestCheckBarrels_AllBarrelsPresent(t *testing.T) {
	records := []domain.FileRecord{
		rec("src/domain/index.ts", domain.LayerDomain),
		rec("src/domain/task.ts", domain.LayerDomain),
		rec("src/application/index.ts", domain.LayerApplication),
		rec("src/application/use-cases/index.ts", domain.LayerApplication),
		rec("src/application/use-cases/create.use-case.ts", domain.LayerApplication),
	}

	assert.Empty(t, rules.CheckBarrels(records, nil, domain.DefaultConfig()))
}

func TestCheckBarrels_EntryAndUnclassifiedExempt(t *testing.T) {
	records := []domain.FileRecord{
		rec("src/index.ts", domain.LayerEntry),
		rec("scripts/tool.ts", domain.LayerUnclassified),
	}

	assert.Empty(t, rules.CheckBarrels(records, nil, domain.DefaultConfig()))
}

func TestCheckBarrels_DirectImportBypassesBarrel(t *testing.T) {
	edges := []domain.ImportEdge{{
		FromFile: "src/mcp/tools/create.tool.ts",
		Target:   "src/application/use-cases/create.use-case.ts",
		Kind:     domain.TargetInternal,
		Line:     2,
	}}

	violations := rules.CheckBarrels(nil, edges, domain.DefaultConfig())
	require.Len(t, violations, 1)
	assert.Equal(t, domain.RuleDirectImport, violations[0].RuleID)
	assert.Equal(t, "src/mcp/tools/create.tool.ts", violations[0].File)
	assert.Equal(t, 2, violations[0].Line)
}

func TestCheckBarrels_BarrelImportAllowed(t *testing.T) {
	edges := []domain.ImportEdge{{
		FromFile: "src/mcp/tools/create.tool.ts",
		Target:   "src/application/use-cases/index.ts",
		Kind:     domain.TargetInternal,
	}}

	assert.Empty(t, rules.CheckBarrels(nil, edges, domain.DefaultConfig()))
}

func TestCheckBarrels_SameSubdirImportAllowed(t *testing.T) {
	edges := []domain.ImportEdge{{
		FromFile: "src/application/use-cases/index.ts",
		Target:   "src/application/use-cases/create.use-case.ts",
		Kind:     domain.TargetInternal,
	}}

	assert.Empty(t, rules.CheckBarrels(nil, edges, domain.DefaultConfig()))
}

func TestCheckBarrels_LayerRootFileExempt(t *testing.T) {
	// Files directly under a layer root have no subdirectory barrel to bypass.
	edges := []domain.ImportEdge{{
		FromFile: "src/di/container.ts",
		Target:   "src/infrastructure/repo.ts",
		Kind:     domain.TargetInternal,
	}}

	assert.Empty(t, rules.CheckBarrels(nil, edges, domain.DefaultConfig()))
}
