package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archgate/archgate/internal/domain"
	"github.com/archgate/archgate/internal/domain/rules"
)

func TestCheckBoundaries_DeniedLayerEdge(t *testing.T) {
	cfg := domain.DefaultConfig()
	layers := map[string]domain.Layer{
		"src/application/use-cases/create.use-case.ts": domain.LayerApplication,
		"src/infrastructure/repo.ts":                   domain.LayerInfrastructure,
	}
	edges := []domain.ImportEdge{{
		FromFile: "src/application/use-cases/create.use-case.ts",
		Target:   "src/infrastructure/repo.ts",
		Kind:     domain.TargetInternal,
		Line:     1,
	}}

	violations := rules.CheckBoundaries(domain.DefaultLattice(), layers, edges, cfg)
	require.Len(t, violations, 1)
	assert.Equal(t, domain.RuleBoundaryViolation, violations[0].RuleID)
	assert.Equal(t, 1, violations[0].Line)
}

func TestCheckBoundaries_AllowedLayerEdge(t *testing.T) {
	cfg := domain.DefaultConfig()
	layers := map[string]domain.Layer{
		"src/application/svc.ts": domain.LayerApplication,
		"src/domain/task.ts":     domain.LayerDomain,
	}
	edges := []domain.ImportEdge{{
		FromFile: "src/application/svc.ts",
		Target:   "src/domain/task.ts",
		Kind:     domain.TargetInternal,
	}}

	assert.Empty(t, rules.CheckBoundaries(domain.DefaultLattice(), layers, edges, cfg))
}

func TestCheckBoundaries_DomainExternalImport(t *testing.T) {
	cfg := domain.DefaultConfig()
	layers := map[string]domain.Layer{"src/domain/task.ts": domain.LayerDomain}
	edges := []domain.ImportEdge{{
		FromFile: "src/domain/task.ts",
		Target:   "zod",
		Kind:     domain.TargetExternal,
		Line:     1,
	}}

	violations := rules.CheckBoundaries(domain.DefaultLattice(), layers, edges, cfg)
	require.Len(t, violations, 1)
	assert.Equal(t, domain.RuleExternalDependency, violations[0].RuleID)
}

func TestCheckBoundaries_ApplicationExternalAllowed(t *testing.T) {
	cfg := domain.DefaultConfig()
	layers := map[string]domain.Layer{"src/application/use-cases/create.ts": domain.LayerApplication}
	edges := []domain.ImportEdge{{
		FromFile: "src/application/use-cases/create.ts",
		Target:   "zod",
		Kind:     domain.TargetExternal,
	}}

	assert.Empty(t, rules.CheckBoundaries(domain.DefaultLattice(), layers, edges, cfg))
}

func TestCheckBoundaries_ConfiguredDenylist(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.DenyExternal = map[string][]string{"infrastructure": {"lodash"}}
	layers := map[string]domain.Layer{"src/infrastructure/repo.ts": domain.LayerInfrastructure}
	edges := []domain.ImportEdge{{
		FromFile: "src/infrastructure/repo.ts",
		Target:   "lodash/merge",
		Kind:     domain.TargetExternal,
	}}

	violations := rules.CheckBoundaries(cfg.BuildLattice(), layers, edges, cfg)
	require.Len(t, violations, 1)
	assert.Equal(t, domain.RuleExternalDependency, violations[0].RuleID)
}

func TestCheckBoundaries_UnclassifiedSourceSkipped(t *testing.T) {
	cfg := domain.DefaultConfig()
	layers := map[string]domain.Layer{"scripts/tool.ts": domain.LayerUnclassified}
	edges := []domain.ImportEdge{{
		FromFile: "scripts/tool.ts",
		Target:   "src/domain/task.ts",
		Kind:     domain.TargetInternal,
	}}

	assert.Empty(t, rules.CheckBoundaries(domain.DefaultLattice(), layers, edges, cfg))
}

func TestCheckBoundaries_UnclassifiedTargetDefaultDeny(t *testing.T) {
	cfg := domain.DefaultConfig()
	layers := map[string]domain.Layer{"src/application/svc.ts": domain.LayerApplication}
	edges := []domain.ImportEdge{{
		FromFile: "src/application/svc.ts",
		Target:   "src/utils/helper.ts",
		Kind:     domain.TargetInternal,
	}}

	violations := rules.CheckBoundaries(domain.DefaultLattice(), layers, edges, cfg)
	require.Len(t, violations, 1)
	assert.Equal(t, domain.RuleBoundaryViolation, violations[0].RuleID)
	assert.Contains(t, violations[0].Message, "default deny")
}

func TestCheckBoundaries_NonCodeArtifactExempt(t *testing.T) {
	cfg := domain.DefaultConfig()
	layers := map[string]domain.Layer{"src/application/svc.ts": domain.LayerApplication}
	edges := []domain.ImportEdge{
		{FromFile: "src/application/svc.ts", Target: "src/config/settings.json", Kind: domain.TargetInternal},
		{FromFile: "src/application/svc.ts", Target: "src/types/global.d.ts", Kind: domain.TargetInternal},
	}

	assert.Empty(t, rules.CheckBoundaries(domain.DefaultLattice(), layers, edges, cfg))
}

func TestCheckBoundaries_ConfiguredAllowOpensEdge(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Allow = map[string][]string{"application": {"infrastructure"}}
	layers := map[string]domain.Layer{
		"src/application/svc.ts":     domain.LayerApplication,
		"src/infrastructure/repo.ts": domain.LayerInfrastructure,
	}
	edges := []domain.ImportEdge{{
		FromFile: "src/application/svc.ts",
		Target:   "src/infrastructure/repo.ts",
		Kind:     domain.TargetInternal,
	}}

	assert.Empty(t, rules.CheckBoundaries(cfg.BuildLattice(), layers, edges, cfg))
}

func TestLayerEdges_AggregatesAndMarks(t *testing.T) {
	cfg := domain.DefaultConfig()
	layers := map[string]domain.Layer{
		"src/application/a.ts":       domain.LayerApplication,
		"src/application/b.ts":       domain.LayerApplication,
		"src/domain/task.ts":         domain.LayerDomain,
		"src/infrastructure/repo.ts": domain.LayerInfrastructure,
	}
	edges := []domain.ImportEdge{
		{FromFile: "src/application/a.ts", Target: "src/domain/task.ts", Kind: domain.TargetInternal},
		{FromFile: "src/application/b.ts", Target: "src/domain/task.ts", Kind: domain.TargetInternal},
		{FromFile: "src/application/a.ts", Target: "src/infrastructure/repo.ts", Kind: domain.TargetInternal},
		{FromFile: "src/application/a.ts", Target: "zod", Kind: domain.TargetExternal},
	}

	layerEdges := rules.LayerEdges(domain.DefaultLattice(), layers, edges, cfg)
	require.Len(t, layerEdges, 2)

	assert.Equal(t, domain.LayerApplication, layerEdges[0].From)
	assert.Equal(t, domain.LayerDomain, layerEdges[0].To)
	assert.Equal(t, 2, layerEdges[0].Count)
	assert.True(t, layerEdges[0].Allowed)

	assert.Equal(t, domain.LayerInfrastructure, layerEdges[1].To)
	assert.Equal(t, 1, layerEdges[1].Count)
	assert.False(t, layerEdges[1].Allowed)
}
